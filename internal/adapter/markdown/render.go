// Package markdown renders analysis results for human reading. Markdown is
// a display format here, not a storage format; rendering is one-way.
package markdown

import (
	"fmt"
	"strings"

	"github.com/transcriptlab/insights/internal/domain/entities"
)

// RenderInsight converts a MeetingInsight into the stage-artifact markdown
// document.
func RenderInsight(insight *entities.MeetingInsight) string {
	md := []string{"# Meeting Analysis Results\n"}

	for _, c := range entities.Categories() {
		md = append(md, fmt.Sprintf("## %s", c.Title()))

		items := insight.Items(c)
		if len(items) == 0 {
			md = append(md, "No items found.\n")
		} else {
			for _, item := range items {
				md = append(md, fmt.Sprintf("- **%s**", item.Point))
				md = append(md, fmt.Sprintf("  - Quote: %q", item.Quote))
				md = append(md, fmt.Sprintf("  - Speaker: %s", item.Speaker))
				md = append(md, fmt.Sprintf("  - Category: %s\n", item.SubCategory))
			}
		}
		md = append(md, "")
	}

	return strings.Join(md, "\n")
}

// RenderResearch converts a ResearchResult into a standalone markdown
// document.
func RenderResearch(result *entities.ResearchResult) string {
	return strings.Join([]string{
		"# " + result.Title,
		result.Main,
		"## Key Points",
		result.Bullets,
	}, "\n\n")
}
