package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/transcriptlab/insights/internal/infrastructure/watcher"
	"github.com/transcriptlab/insights/internal/usecase/transcript"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the transcripts directory and auto-analyze new files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.cfg.Paths.TranscriptsDir, 0o755); err != nil {
				return err
			}

			proc := transcript.NewProcessor(
				a.analyzer, a.tax, a.ledger, a.cfg.Paths.OutputDir,
				os.Stdin, cmd.OutOrStdout(), true, a.logger,
			)

			handler := func(ctx context.Context, path string) error {
				_, err := proc.ProcessFile(ctx, path)
				return err
			}

			w, err := watcher.New(a.cfg.Paths.TranscriptsDir, handler, a.logger)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
