package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/transcriptlab/insights/internal/infrastructure/history"
	"github.com/transcriptlab/insights/internal/usecase/analyze"
	"github.com/transcriptlab/insights/pkg/config"
	"github.com/transcriptlab/insights/pkg/llm"
	"github.com/transcriptlab/insights/pkg/taxonomy"
	"github.com/transcriptlab/insights/pkg/validator"
)

// app holds the explicitly constructed dependencies shared by subcommands.
// Everything is built in setup; no package-level clients.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	tax      *taxonomy.Taxonomy
	analyzer *analyze.Service
	parser   *analyze.Parser
	llm      *llm.Client
	ledger   *history.Store
}

func newRootCmd() *cobra.Command {
	var a app

	root := &cobra.Command{
		Use:           "insights",
		Short:         "Analyze meeting transcripts and research topics with an LLM backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	root.PersistentFlags().Bool("strict", false, "abort on malformed backend replies instead of repairing them")

	root.AddCommand(newAnalyzeCmd(&a))
	root.AddCommand(newResearchCmd(&a))
	root.AddCommand(newWatchCmd(&a))
	root.AddCommand(newHistoryCmd(&a))
	return root
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	a.cfg = cfg

	if strict, err := cmd.Flags().GetBool("strict"); err == nil && strict {
		a.cfg.LLM.StrictParse = true
	}

	if a.cfg.Log.Environment == "production" {
		a.logger, err = zap.NewProduction()
	} else {
		a.logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.tax, err = taxonomy.Load(a.cfg.Paths.TaxonomyFile)
	if err != nil {
		return fmt.Errorf("load taxonomy: %w", err)
	}

	v := validator.New()
	a.llm = llm.NewClient(a.cfg.LLM)
	a.parser = analyze.NewParser(a.tax, v, a.cfg.LLM.StrictParse)
	a.analyzer = analyze.NewService(a.llm, a.parser, a.cfg.LLM.StrictParse, a.logger)

	// The ledger is a convenience; a broken database never blocks analysis.
	a.ledger, err = history.Open(a.cfg.Paths.HistoryDB)
	if err != nil {
		a.logger.Warn("history ledger unavailable", zap.Error(err))
		a.ledger = nil
	}

	return nil
}

func (a *app) teardown() {
	if a.ledger != nil {
		a.ledger.Close()
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}
