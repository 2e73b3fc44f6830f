package research

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestREPL(t *testing.T, fc *fakeCompleter, search func(context.Context, string) (string, error), dir, input string) (*REPL, *bytes.Buffer) {
	t.Helper()
	agent := newTestAgent(t, fc, search)
	out := &bytes.Buffer{}
	return NewREPL(agent, dir, strings.NewReader(input), out, zaptest.NewLogger(t)), out
}

func okSearch(ctx context.Context, query string) (string, error) {
	return "context for " + query, nil
}

func TestREPL_QueryAndSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "research_output")
	fc := &fakeCompleter{replies: []string{planReply, synthReply}}

	// Query, save, don't continue.
	repl, out := newTestREPL(t, fc, okSearch, dir, "what are go generics?\ny\nn\n")
	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "# Go Generics")
	assert.Contains(t, out.String(), "Results saved to:")
	assert.Contains(t, out.String(), "Goodbye!")

	content, err := os.ReadFile(filepath.Join(dir, "go_generics.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Go Generics")
	assert.Contains(t, string(content), "## Key Points")
}

func TestREPL_Quit(t *testing.T) {
	fc := &fakeCompleter{}
	repl, out := newTestREPL(t, fc, okSearch, t.TempDir(), "q\n")
	require.NoError(t, repl.Run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye!")
	assert.Zero(t, fc.calls)
}

func TestREPL_BlankQueryReprompted(t *testing.T) {
	fc := &fakeCompleter{}
	repl, out := newTestREPL(t, fc, okSearch, t.TempDir(), "   \nq\n")
	require.NoError(t, repl.Run(context.Background()))
	assert.Contains(t, out.String(), "Please enter a valid query.")
	assert.Zero(t, fc.calls)
}

func TestREPL_ErrorOffersRetry(t *testing.T) {
	fc := &fakeCompleter{
		errs:    []error{errors.New("backend down"), nil, nil},
		replies: []string{"", planReply, synthReply},
	}

	// First attempt fails, retry succeeds, skip save, quit.
	repl, out := newTestREPL(t, fc, okSearch, t.TempDir(), "go generics\ny\ngo generics\nn\nn\n")
	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "Error during research")
	assert.Contains(t, out.String(), "# Go Generics")
	assert.Equal(t, 3, fc.calls)
}

func TestREPL_ErrorDeclineRetryExits(t *testing.T) {
	fc := &fakeCompleter{errs: []error{errors.New("backend down")}}
	repl, out := newTestREPL(t, fc, okSearch, t.TempDir(), "go generics\nn\n")
	require.NoError(t, repl.Run(context.Background()))
	assert.Contains(t, out.String(), "Error during research")
	assert.Equal(t, 1, fc.calls)
}
