// Package review drives the interactive loop between extraction and
// persistence: the human approves the current insights, supplies feedback
// for another refinement pass, or enters items manually when the model
// found nothing.
package review

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/transcriptlab/insights/internal/adapter/markdown"
	"github.com/transcriptlab/insights/internal/domain/entities"
	"github.com/transcriptlab/insights/internal/infrastructure/output"
	"github.com/transcriptlab/insights/pkg/taxonomy"
)

// State labels a point in the review workflow.
type State string

const (
	StateAnalyzed    State = "ANALYZED"
	StateReview      State = "REVIEW"
	StateEmpty       State = "EMPTY"
	StateFeedback    State = "FEEDBACK"
	StateManual      State = "MANUAL"
	StateApproved    State = "APPROVED"
	StateAcceptEmpty State = "ACCEPT_EMPTY"
)

// Refiner produces a replacement insight from human feedback.
type Refiner interface {
	ImproveInsights(ctx context.Context, previous *entities.MeetingInsight, feedback, transcript string) (*entities.MeetingInsight, error)
}

// ArtifactSaver persists one stage artifact and returns its path.
type ArtifactSaver interface {
	SaveStage(content, stage string) (string, error)
}

// Loop runs the human review workflow over line-oriented console IO.
type Loop struct {
	refiner Refiner
	saver   ArtifactSaver
	tax     *taxonomy.Taxonomy
	in      *bufio.Reader
	out     io.Writer
	logger  *zap.Logger
	eof     bool
}

// NewLoop constructs a review loop reading prompts from in and writing to
// out.
func NewLoop(refiner Refiner, saver ArtifactSaver, tax *taxonomy.Taxonomy, in io.Reader, out io.Writer, logger *zap.Logger) *Loop {
	return &Loop{
		refiner: refiner,
		saver:   saver,
		tax:     tax,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger,
	}
}

// Run drives the state machine until a terminal state and returns the
// insight to persist. The terminal states are APPROVED, ACCEPT_EMPTY, and
// the outcome of manual entry; in every case the returned insight is the one
// the human last saw.
func (l *Loop) Run(ctx context.Context, insight *entities.MeetingInsight, transcript string) (*entities.MeetingInsight, State, error) {
	state := StateAnalyzed

	for {
		// Exhausted input means nobody is left to answer prompts; keep the
		// current insight rather than spin on empty reads.
		if l.eof {
			l.logger.Warn("console input exhausted, accepting current insights")
			return insight, StateApproved, nil
		}

		switch state {
		case StateAnalyzed:
			l.printInsights(insight)
			if insight.IsEmpty() {
				state = StateEmpty
			} else {
				state = StateReview
			}

		case StateReview:
			answer := l.prompt("\nApprove these insights? (y/n): ")
			if strings.EqualFold(answer, "y") {
				return insight, StateApproved, nil
			}
			state = StateFeedback

		case StateEmpty:
			choice := l.emptyMenu()
			switch choice {
			case "1":
				state = StateFeedback
			case "2":
				return l.manualEntry(), StateManual, nil
			default:
				return insight, StateAcceptEmpty, nil
			}

		case StateFeedback:
			feedback := l.promptNonEmpty("Please provide feedback for improvement:\n")
			if feedback == "" {
				state = StateAnalyzed
				continue
			}
			improved, err := l.iterate(ctx, insight, feedback, transcript)
			if err != nil {
				// Refinement is non-destructive: keep what we had and let
				// the human decide again.
				fmt.Fprintf(l.out, "Error during iteration: %v\n", err)
			}
			insight = improved
			state = StateAnalyzed
		}
	}
}

// iterate runs one refinement pass and saves the iteration artifact when the
// pass succeeds.
func (l *Loop) iterate(ctx context.Context, insight *entities.MeetingInsight, feedback, transcript string) (*entities.MeetingInsight, error) {
	fmt.Fprintln(l.out, "\n--- Iteration Based on Feedback ---")

	improved, err := l.refiner.ImproveInsights(ctx, insight, feedback, transcript)
	if err != nil {
		return improved, err
	}

	path, err := l.saver.SaveStage(markdown.RenderInsight(improved), output.StageIteration)
	if err != nil {
		l.logger.Error("failed to save iteration artifact", zap.Error(err))
	} else {
		fmt.Fprintf(l.out, "Iteration saved to: %s\n", path)
	}
	return improved, nil
}

// emptyMenu offers the escape hatches for an empty analysis.
func (l *Loop) emptyMenu() string {
	fmt.Fprintln(l.out, "\nNo insights extracted. Options:")
	fmt.Fprintln(l.out, "1. Provide feedback for another attempt")
	fmt.Fprintln(l.out, "2. Enter insights manually")
	fmt.Fprintln(l.out, "3. Accept empty insights")
	return l.prompt("\nEnter choice (1-3): ")
}

// manualEntry reads free-text lines per category, one item per line, until a
// blank line ends the category. Items carry placeholder quote/speaker and
// the category's default sub-tag.
func (l *Loop) manualEntry() *entities.MeetingInsight {
	fmt.Fprintln(l.out, "Enter insights manually (one per line, empty line to move to next category):")
	insight := entities.NewMeetingInsight()

	for _, c := range entities.Categories() {
		fmt.Fprintf(l.out, "\nEnter %s (Press Enter on empty line to skip):\n", c)
		items := []entities.InsightItem{}
		for {
			line := l.readLine()
			if line == "" {
				break
			}
			items = append(items, entities.InsightItem{
				Point:       line,
				Quote:       entities.ManualEntryQuote,
				Speaker:     entities.ManualEntrySpeaker,
				SubCategory: l.tax.DefaultTag(c),
			})
		}
		insight.SetItems(c, items)
	}

	return insight
}

func (l *Loop) printInsights(insight *entities.MeetingInsight) {
	fmt.Fprintln(l.out, "\n--- Human Review ---")
	fmt.Fprintln(l.out, "\nCurrent Insights:")
	b, err := json.MarshalIndent(insight, "", "  ")
	if err != nil {
		fmt.Fprintf(l.out, "(unrenderable: %v)\n", err)
		return
	}
	fmt.Fprintln(l.out, string(b))
}

func (l *Loop) prompt(msg string) string {
	fmt.Fprint(l.out, msg)
	return l.readLine()
}

func (l *Loop) promptNonEmpty(msg string) string {
	for !l.eof {
		if answer := l.prompt(msg); answer != "" {
			return answer
		}
	}
	return ""
}

func (l *Loop) readLine() string {
	line, err := l.in.ReadString('\n')
	if err != nil {
		l.eof = true
	}
	return strings.TrimSpace(line)
}
