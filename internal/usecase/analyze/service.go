// Package analyze turns raw transcript text into validated meeting insights
// through a completion backend, and refines prior results from human
// feedback.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/transcriptlab/insights/errors"
	"github.com/transcriptlab/insights/internal/domain/entities"
	"github.com/transcriptlab/insights/pkg/llm"
)

// Completer is the completion backend dependency of the analyzer.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error)
}

// Service extracts and refines meeting insights.
type Service struct {
	client Completer
	parser *Parser
	logger *zap.Logger
	// strict propagates analysis failures instead of reporting them with an
	// empty result.
	strict bool
}

// NewService constructs an analyze service.
func NewService(client Completer, parser *Parser, strict bool, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		parser: parser,
		logger: logger,
		strict: strict,
	}
}

// AnalyzeTranscript sends the transcript to the backend and returns extracted
// insights. A blank transcript short-circuits to an empty insight with no
// backend call. In lenient mode a backend or parse failure is returned
// together with an empty insight so the caller can report it and continue;
// in strict mode the insight is nil.
func (s *Service) AnalyzeTranscript(ctx context.Context, transcript string) (*entities.MeetingInsight, error) {
	if strings.TrimSpace(transcript) == "" {
		return entities.NewMeetingInsight(), nil
	}

	transcript = PreprocessTranscript(transcript)

	messages := []llm.Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(analysisUserPrompt, transcript)},
	}

	s.logger.Info("starting transcript analysis", zap.Int("transcript_chars", len(transcript)))

	content, err := s.client.Complete(ctx, messages, llm.Options{JSONObject: true})
	if err != nil {
		return s.analysisFailure(apperrors.ErrBackend(err))
	}

	insight, err := s.parser.ParseInsightResponse(content)
	if err != nil {
		return s.analysisFailure(err)
	}

	s.logger.Info("transcript analysis complete", zap.Bool("empty", insight.IsEmpty()))
	return insight, nil
}

func (s *Service) analysisFailure(err error) (*entities.MeetingInsight, error) {
	s.logger.Error("transcript analysis failed", zap.Error(err))
	if s.strict {
		return nil, err
	}
	return entities.NewMeetingInsight(), err
}

// ImproveInsights requests a replacement insight addressing the feedback.
// Refinement is best-effort and never destructive: on any failure the
// previous insight is returned unchanged alongside the error. Empty feedback
// is rejected without a backend call.
func (s *Service) ImproveInsights(ctx context.Context, previous *entities.MeetingInsight, feedback, transcript string) (*entities.MeetingInsight, error) {
	if strings.TrimSpace(feedback) == "" {
		return previous, apperrors.ErrInvalidArgument("feedback is empty")
	}

	prevJSON, err := json.MarshalIndent(previous, "", "  ")
	if err != nil {
		return previous, apperrors.ErrInternal(err)
	}

	messages := []llm.Message{
		{Role: "system", Content: improveSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(improveUserPrompt, prevJSON, feedback, transcript)},
	}

	s.logger.Info("improving insights from feedback", zap.Int("feedback_chars", len(feedback)))

	content, err := s.client.Complete(ctx, messages, llm.Options{JSONObject: true})
	if err != nil {
		s.logger.Error("insight refinement failed", zap.Error(err))
		return previous, apperrors.ErrBackend(err)
	}

	improved, err := s.parser.ParseInsightResponse(content)
	if err != nil {
		s.logger.Error("insight refinement returned malformed reply", zap.Error(err))
		return previous, err
	}

	s.logger.Info("insight refinement complete")
	return improved, nil
}

// PreprocessTranscript normalizes raw transcript text before analysis:
// timestamp-only lines are dropped and whitespace is collapsed.
func PreprocessTranscript(transcript string) string {
	lines := strings.Split(transcript, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isTimestampLine(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}

	return strings.Join(strings.Fields(strings.Join(kept, " ")), " ")
}

// isTimestampLine reports whether a short line looks like a bare timestamp
// marker ("10:30 AM", "09:15").
func isTimestampLine(line string) bool {
	if len(line) >= 20 {
		return false
	}
	lower := strings.ToLower(line)
	return strings.Contains(lower, "am") || strings.Contains(lower, "pm") || strings.Contains(lower, ":")
}
