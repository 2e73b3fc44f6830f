package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/transcriptlab/insights/errors"
	"github.com/transcriptlab/insights/pkg/taxonomy"
	"github.com/transcriptlab/insights/pkg/validator"
)

func newTestParser(t *testing.T, strict bool) *Parser {
	t.Helper()
	return NewParser(taxonomy.Default(), validator.New(), strict)
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"tasks": []}`, `{"tasks": []}`},
		{"json fence", "```json\n{\"tasks\": []}\n```", `{"tasks": []}`},
		{"bare fence", "```\n{\"tasks\": []}\n```", `{"tasks": []}`},
		{"surrounding whitespace", "  \n{\"tasks\": []}\n ", `{"tasks": []}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.in))
		})
	}
}

func TestParseInsightResponse_Valid(t *testing.T) {
	p := newTestParser(t, false)

	insight, err := p.ParseInsightResponse(`{
		"tasks": [{"point": "Finish API", "quote": "I will finish the API by Friday.", "speaker": "Alice", "subcategory": "assigned"}]
	}`)
	require.NoError(t, err)
	require.Len(t, insight.Tasks, 1)
	assert.Equal(t, "Finish API", insight.Tasks[0].Point)
	assert.Equal(t, "assigned", insight.Tasks[0].SubCategory)
	// Absent sections come back initialized, not nil.
	assert.NotNil(t, insight.Risks)
	assert.Empty(t, insight.Risks)
}

func TestParseInsightResponse_RepairsMissingSubTag(t *testing.T) {
	p := newTestParser(t, false)

	insight, err := p.ParseInsightResponse(`{
		"decisions": [{"point": "Ship v2", "quote": "Let's ship v2.", "speaker": "Bob"}],
		"risks": [{"point": "Flaky CI", "quote": "CI keeps failing.", "speaker": "Carol", "subcategory": "not-a-tag"}]
	}`)
	require.NoError(t, err)
	assert.Equal(t, "approved", insight.Decisions[0].SubCategory)
	assert.Equal(t, "technical", insight.Risks[0].SubCategory)
}

func TestParseInsightResponse_StrictRejectsMissingSubTag(t *testing.T) {
	p := newTestParser(t, true)

	_, err := p.ParseInsightResponse(`{
		"decisions": [{"point": "Ship v2", "quote": "Let's ship v2.", "speaker": "Bob"}]
	}`)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_PARSE, apperrors.CodeOf(err))
}

func TestParseInsightResponse_MalformedJSON(t *testing.T) {
	for _, strict := range []bool{true, false} {
		p := newTestParser(t, strict)
		_, err := p.ParseInsightResponse(`not json at all`)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorCode_PARSE, apperrors.CodeOf(err))
	}
}

func TestParseInsightResponse_MissingRequiredFieldNotRepairable(t *testing.T) {
	p := newTestParser(t, false)

	// A missing point is a content defect, not a tag defect; repair must not
	// paper over it.
	_, err := p.ParseInsightResponse(`{
		"tasks": [{"quote": "do it", "speaker": "Alice", "subcategory": "assigned"}]
	}`)
	require.Error(t, err)
}

func TestParseResearchResponse(t *testing.T) {
	p := newTestParser(t, false)

	result, err := p.ParseResearchResponse("```json\n" + `{
		"research_title": "Go Generics",
		"research_main": "Generics landed in Go 1.18.",
		"research_bullets": "- type parameters"
	}` + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Go Generics", result.Title)

	_, err = p.ParseResearchResponse(`{"research_main": "no title"}`)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_PARSE, apperrors.CodeOf(err))
}
