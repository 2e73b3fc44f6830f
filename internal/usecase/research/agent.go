// Package research answers free-text queries by planning a handful of web
// searches, executing them, and synthesizing a structured answer from the
// collected context.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/transcriptlab/insights/errors"
	"github.com/transcriptlab/insights/internal/domain/entities"
	"github.com/transcriptlab/insights/internal/usecase/analyze"
	"github.com/transcriptlab/insights/pkg/llm"
)

// Capabilities are the fixed tools available to the agent, injected at
// construction: one search function and one clock.
type Capabilities struct {
	Search func(ctx context.Context, query string) (string, error)
	Now    func() time.Time
}

// Agent plans, searches, and synthesizes. The backend decides how many
// queries to issue within the configured bounds; the agent only executes the
// plan.
type Agent struct {
	client analyze.Completer
	parser *analyze.Parser
	caps   Capabilities
	logger *zap.Logger
}

// NewAgent constructs a research agent.
func NewAgent(client analyze.Completer, parser *analyze.Parser, caps Capabilities, logger *zap.Logger) *Agent {
	if caps.Now == nil {
		caps.Now = time.Now
	}
	return &Agent{
		client: client,
		parser: parser,
		caps:   caps,
		logger: logger,
	}
}

const planSystemPrompt = `You're a helpful research assistant. You are an expert in research. ` +
	`If you are given a question, you write strong keywords to perform 3-5 searches in total. ` +
	`If you need today's date, it is %s. ` +
	`Respond with a JSON object of the form {"queries": ["...", "..."]} containing 3 to 5 search queries.`

const synthesizeSystemPrompt = `You're a helpful research assistant. You are an expert in research. ` +
	`Combine the provided search results into a structured answer. ` +
	`If you need today's date, it is %s. ` +
	`Respond with a JSON object of the form ` +
	`{"research_title": "...", "research_main": "...", "research_bullets": "..."} where ` +
	`research_title covers the topic of the query, research_main provides detailed answers, ` +
	`and research_bullets is a set of bullet points summarizing the answers.`

// searchPlan is the backend's reply to the planning call.
type searchPlan struct {
	Queries []string `json:"queries"`
}

// Run answers one query. Any backend or tool failure aborts the query; the
// caller decides whether to retry.
func (a *Agent) Run(ctx context.Context, query string) (*entities.ResearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.ErrEmptyInput("research query")
	}

	today := a.caps.Now().Format("2006-01-02")

	queries, err := a.plan(ctx, query, today)
	if err != nil {
		return nil, err
	}
	a.logger.Info("search plan ready", zap.Int("queries", len(queries)))

	contexts := make([]string, 0, len(queries))
	for i, q := range queries {
		a.logger.Info("executing search", zap.Int("query_number", i+1), zap.String("query", q))
		result, err := a.caps.Search(ctx, q)
		if err != nil {
			return nil, apperrors.ErrBackend(fmt.Errorf("search %d (%q): %w", i+1, q, err))
		}
		contexts = append(contexts, fmt.Sprintf("Search %d (%s):\n%s", i+1, q, result))
	}

	return a.synthesize(ctx, query, today, contexts)
}

// plan asks the backend for 3-5 keyword queries.
func (a *Agent) plan(ctx context.Context, query, today string) ([]string, error) {
	messages := []llm.Message{
		{Role: "system", Content: fmt.Sprintf(planSystemPrompt, today)},
		{Role: "user", Content: query},
	}

	content, err := a.client.Complete(ctx, messages, llm.Options{JSONObject: true})
	if err != nil {
		return nil, apperrors.ErrBackend(err)
	}

	var plan searchPlan
	if err := json.Unmarshal([]byte(extractPlanJSON(content)), &plan); err != nil {
		return nil, apperrors.ErrParse(fmt.Errorf("unmarshal search plan: %w", err))
	}
	if len(plan.Queries) == 0 {
		return nil, apperrors.ErrParse(fmt.Errorf("search plan has no queries"))
	}
	// The model occasionally over-plans; cap at five searches.
	if len(plan.Queries) > 5 {
		plan.Queries = plan.Queries[:5]
	}
	return plan.Queries, nil
}

// synthesize combines the search context into the final structured answer.
func (a *Agent) synthesize(ctx context.Context, query, today string, contexts []string) (*entities.ResearchResult, error) {
	user := fmt.Sprintf("Research question:\n%s\n\nSearch results:\n%s", query, strings.Join(contexts, "\n\n"))

	messages := []llm.Message{
		{Role: "system", Content: fmt.Sprintf(synthesizeSystemPrompt, today)},
		{Role: "user", Content: user},
	}

	content, err := a.client.Complete(ctx, messages, llm.Options{JSONObject: true})
	if err != nil {
		return nil, apperrors.ErrBackend(err)
	}

	return a.parser.ParseResearchResponse(content)
}

func extractPlanJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx != -1 {
			content = content[idx+1:]
		}
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}
	return strings.TrimSpace(content)
}
