package research

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/transcriptlab/insights/internal/adapter/markdown"
	"github.com/transcriptlab/insights/internal/infrastructure/output"
)

// REPL is the interactive research console: query in, structured answer out,
// optional markdown save.
type REPL struct {
	agent       *Agent
	researchDir string
	in          *bufio.Reader
	out         io.Writer
	logger      *zap.Logger
	eof         bool
}

// NewREPL constructs the research console over the given IO streams.
func NewREPL(agent *Agent, researchDir string, in io.Reader, out io.Writer, logger *zap.Logger) *REPL {
	return &REPL{
		agent:       agent,
		researchDir: researchDir,
		in:          bufio.NewReader(in),
		out:         out,
		logger:      logger,
	}
}

// Run processes queries until the user quits or input is exhausted.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "--- Research Assistant ---")

	for !r.eof {
		query := r.prompt("\nEnter your research query (or 'q' to quit): ")
		if strings.EqualFold(query, "q") {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
		if strings.TrimSpace(query) == "" {
			if !r.eof {
				fmt.Fprintln(r.out, "Please enter a valid query.")
			}
			continue
		}

		fmt.Fprintf(r.out, "\nResearching: %s\n", query)
		r.logger.Info("running research query", zap.String("query", query))
		result, err := r.agent.Run(ctx, query)
		if err != nil {
			fmt.Fprintf(r.out, "Error during research: %v\n", err)
			if !strings.EqualFold(r.prompt("Would you like to try again? (y/n): "), "y") {
				return nil
			}
			continue
		}

		fmt.Fprintln(r.out, "\nResearch Results:")
		fmt.Fprintln(r.out, "# "+result.Title)
		fmt.Fprintln(r.out, "\n"+result.Main)
		fmt.Fprintln(r.out, "\nKey Points:")
		fmt.Fprintln(r.out, result.Bullets)

		if strings.EqualFold(r.prompt("\nSave results to file? (y/n): "), "y") {
			path, err := output.SaveResearch(r.researchDir, result.Title, markdown.RenderResearch(result))
			if err != nil {
				fmt.Fprintf(r.out, "Error saving results: %v\n", err)
			} else {
				fmt.Fprintf(r.out, "Results saved to: %s\n", path)
			}
		}

		if !strings.EqualFold(r.prompt("\nResearch another topic? (y/n): "), "y") {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
	return nil
}

func (r *REPL) prompt(msg string) string {
	fmt.Fprint(r.out, msg)
	line, err := r.in.ReadString('\n')
	if err != nil {
		r.eof = true
	}
	return strings.TrimSpace(line)
}
