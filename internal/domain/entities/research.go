package entities

// ResearchResult is the structured answer produced by the research agent.
// Title is schema-required; correctness of the content is not guaranteed.
type ResearchResult struct {
	Title   string `json:"research_title" validate:"required"`
	Main    string `json:"research_main"`
	Bullets string `json:"research_bullets"`
}
