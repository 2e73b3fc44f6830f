// Package transcript orchestrates the end-to-end analysis of one transcript
// file: read, analyze, review, persist stage artifacts.
package transcript

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/transcriptlab/insights/internal/adapter/markdown"
	"github.com/transcriptlab/insights/internal/domain/entities"
	"github.com/transcriptlab/insights/internal/infrastructure/history"
	"github.com/transcriptlab/insights/internal/infrastructure/output"
	"github.com/transcriptlab/insights/internal/usecase/analyze"
	"github.com/transcriptlab/insights/internal/usecase/review"
	"github.com/transcriptlab/insights/pkg/taxonomy"
)

// Processor runs the analysis workflow for transcript files.
type Processor struct {
	analyzer *analyze.Service
	tax      *taxonomy.Taxonomy
	ledger   *history.Store
	outDir   string
	in       io.Reader
	out      io.Writer
	logger   *zap.Logger
	// auto skips the human review loop.
	auto bool
}

// NewProcessor constructs a Processor. ledger may be nil; run recording is
// best-effort either way.
func NewProcessor(
	analyzer *analyze.Service,
	tax *taxonomy.Taxonomy,
	ledger *history.Store,
	outDir string,
	in io.Reader,
	out io.Writer,
	auto bool,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		analyzer: analyzer,
		tax:      tax,
		ledger:   ledger,
		outDir:   outDir,
		in:       in,
		out:      out,
		auto:     auto,
		logger:   logger,
	}
}

// ProcessFile analyzes one transcript file and writes its stage artifacts.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*entities.MeetingInsight, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	transcriptText := strings.TrimSpace(string(raw))
	if transcriptText == "" {
		fmt.Fprintln(p.out, "Error: Transcript is empty!")
		return entities.NewMeetingInsight(), nil
	}

	saver := &recordingSaver{
		manager:    output.NewManager(p.outDir, name),
		ledger:     p.ledger,
		transcript: name,
		logger:     p.logger,
	}

	fmt.Fprintln(p.out, "--- Stage 1: Analysis ---")

	insight, err := p.analyzer.AnalyzeTranscript(ctx, transcriptText)
	if err != nil {
		if insight == nil {
			return nil, err
		}
		// Lenient variant: report and continue with the empty result.
		fmt.Fprintf(p.out, "Error in analysis: %v\n", err)
	}

	artifact, err := saver.SaveStage(markdown.RenderInsight(insight), output.StageAnalysis)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "Analysis saved to: %s\n", artifact)

	if !p.auto {
		loop := review.NewLoop(p.analyzer, saver, p.tax, p.in, p.out, p.logger)
		reviewed, state, err := loop.Run(ctx, insight, transcriptText)
		if err != nil {
			return nil, err
		}
		p.logger.Info("review finished", zap.String("state", string(state)))
		insight = reviewed
	}

	artifact, err = saver.SaveStage(markdown.RenderInsight(insight), output.StageFinal)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "Final output saved to: %s\n", artifact)

	return insight, nil
}

// FindFirstTranscript returns the first *.md file in dir, creating dir when
// missing. An empty path with nil error means nothing to process.
func FindFirstTranscript(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcripts dir: %w", err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}

// recordingSaver persists stage artifacts and records them in the ledger.
// Ledger failures are logged, never fatal.
type recordingSaver struct {
	manager    *output.Manager
	ledger     *history.Store
	transcript string
	logger     *zap.Logger
}

func (r *recordingSaver) SaveStage(content, stage string) (string, error) {
	path, err := r.manager.SaveStage(content, stage)
	if err != nil {
		return "", err
	}
	if r.ledger != nil {
		run := entities.NewAnalysisRun(r.transcript, stage, path)
		if err := r.ledger.Record(context.Background(), run); err != nil {
			r.logger.Warn("failed to record run in history", zap.Error(err))
		}
	}
	return path, nil
}
