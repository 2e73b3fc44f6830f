package analyze

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/transcriptlab/insights/errors"
	"github.com/transcriptlab/insights/internal/domain/entities"
	"github.com/transcriptlab/insights/pkg/taxonomy"
	"github.com/transcriptlab/insights/pkg/validator"
)

// Parser handles parsing and validation of completion backend responses.
type Parser struct {
	tax       *taxonomy.Taxonomy
	validator *validator.StructValidator
	// strict aborts on malformed replies instead of repairing sub-tags.
	strict bool
}

// NewParser creates a new Parser instance
func NewParser(tax *taxonomy.Taxonomy, v *validator.StructValidator, strict bool) *Parser {
	return &Parser{tax: tax, validator: v, strict: strict}
}

// ParseInsightResponse parses the backend JSON reply into a MeetingInsight.
// In lenient mode, items missing a sub-tag get the per-category default and
// validation is retried once; in strict mode any defect is fatal.
func (p *Parser) ParseInsightResponse(content string) (*entities.MeetingInsight, error) {
	content = extractJSON(content)

	var insight entities.MeetingInsight
	if err := json.Unmarshal([]byte(content), &insight); err != nil {
		return nil, apperrors.ErrParse(fmt.Errorf("unmarshal insight response: %w", err))
	}
	insight.Normalize()

	if err := p.validate(&insight); err != nil {
		if p.strict {
			return nil, apperrors.ErrParse(err)
		}
		p.repairSubTags(&insight)
		if err := p.validate(&insight); err != nil {
			return nil, apperrors.ErrParse(err)
		}
	}

	return &insight, nil
}

// ParseResearchResponse parses the backend JSON reply into a ResearchResult.
// The title is schema-required.
func (p *Parser) ParseResearchResponse(content string) (*entities.ResearchResult, error) {
	content = extractJSON(content)

	var result entities.ResearchResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, apperrors.ErrParse(fmt.Errorf("unmarshal research response: %w", err))
	}
	if err := p.validator.Validate(&result); err != nil {
		return nil, apperrors.ErrParse(fmt.Errorf("validate research response: %w", err))
	}
	return &result, nil
}

func (p *Parser) validate(insight *entities.MeetingInsight) error {
	for _, c := range entities.Categories() {
		for i, item := range insight.Items(c) {
			if err := p.validator.Validate(&item); err != nil {
				return fmt.Errorf("%s[%d]: %w", c, i, err)
			}
			if item.SubCategory == "" {
				return fmt.Errorf("%s[%d]: missing subcategory", c, i)
			}
			if !p.tax.ValidTag(c, item.SubCategory) {
				return fmt.Errorf("%s[%d]: subcategory %q not in %s tag set", c, i, item.SubCategory, c)
			}
		}
	}
	return nil
}

// repairSubTags substitutes the per-category default for missing or unknown
// sub-tags. Other field defects are left for validation to report.
func (p *Parser) repairSubTags(insight *entities.MeetingInsight) {
	for _, c := range entities.Categories() {
		items := insight.Items(c)
		for i := range items {
			if items[i].SubCategory == "" || !p.tax.ValidTag(c, items[i].SubCategory) {
				items[i].SubCategory = p.tax.DefaultTag(c)
			}
		}
		insight.SetItems(c, items)
	}
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
