package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transcriptlab/insights/internal/domain/entities"
)

func TestDefault(t *testing.T) {
	tax := Default()

	defaults := map[entities.Category]string{
		entities.CategoryTasks:     "proposed",
		entities.CategoryDecisions: "approved",
		entities.CategoryQuestions: "asked",
		entities.CategoryAttendees: "named",
		entities.CategoryDeadlines: "immediate",
		entities.CategoryFollowUps: "meetings",
		entities.CategoryRisks:     "technical",
	}

	for c, want := range defaults {
		assert.Equal(t, want, tax.DefaultTag(c), "default for %s", c)
		assert.True(t, tax.ValidTag(c, want), "default must be in the %s tag set", c)
		assert.NotEmpty(t, tax.AllowedTags(c))
	}

	// Tags from both historical analyzer variants are present.
	assert.True(t, tax.ValidTag(entities.CategoryDecisions, "confirmed"))
	assert.True(t, tax.ValidTag(entities.CategoryDecisions, "approved"))
	assert.True(t, tax.ValidTag(entities.CategoryTasks, "assigned"))

	assert.False(t, tax.ValidTag(entities.CategoryTasks, "confirmed"))
	assert.False(t, tax.ValidTag(entities.CategoryRisks, ""))
}

func TestLoadFile_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	override := `
tasks:
  tags: [todo, doing, done]
  default: todo
decisions:
  tags: [confirmed]
  default: confirmed
questions:
  tags: [asked]
  default: asked
attendees:
  tags: [named]
  default: named
deadlines:
  tags: [soon]
  default: soon
follow_ups:
  tags: [meetings]
  default: meetings
risks:
  tags: [technical]
  default: technical
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	tax, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "todo", tax.DefaultTag(entities.CategoryTasks))
	assert.True(t, tax.ValidTag(entities.CategoryDeadlines, "soon"))
	assert.False(t, tax.ValidTag(entities.CategoryTasks, "proposed"))
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	tax, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "proposed", tax.DefaultTag(entities.CategoryTasks))
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unknown category", "bogus:\n  tags: [x]\n  default: x\n"},
		{"default outside tag set", "tasks:\n  tags: [a]\n  default: b\n"},
		{"missing categories", "tasks:\n  tags: [a]\n  default: a\n"},
		{"not yaml", "{unclosed: [flow"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}
