package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/transcriptlab/insights/internal/usecase/research"
	"github.com/transcriptlab/insights/pkg/search"
)

func newResearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "research",
		Short: "Answer research queries via web search and synthesis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			searchClient := search.NewClient(a.cfg.Search)

			agent := research.NewAgent(a.llm, a.parser, research.Capabilities{
				Search: searchClient.SearchContext,
				Now:    time.Now,
			}, a.logger)

			repl := research.NewREPL(agent, a.cfg.Paths.ResearchDir, os.Stdin, cmd.OutOrStdout(), a.logger)
			return repl.Run(cmd.Context())
		},
	}
}
