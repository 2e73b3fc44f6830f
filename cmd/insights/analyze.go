package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/transcriptlab/insights/internal/usecase/transcript"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "analyze [transcript.md]",
		Short: "Extract categorized insights from a meeting transcript",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				found, err := transcript.FindFirstTranscript(a.cfg.Paths.TranscriptsDir)
				if err != nil {
					return err
				}
				if found == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "No transcripts found in %s/ directory. Please add a .md file.\n", a.cfg.Paths.TranscriptsDir)
					return nil
				}
				path = found
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Processing: %s\n", path)

			proc := transcript.NewProcessor(
				a.analyzer, a.tax, a.ledger, a.cfg.Paths.OutputDir,
				os.Stdin, cmd.OutOrStdout(), auto, a.logger,
			)
			if _, err := proc.ProcessFile(cmd.Context(), path); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "\nTranscript processed successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "skip human review")
	return cmd
}
