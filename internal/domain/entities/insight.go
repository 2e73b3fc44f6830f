package entities

// Category identifies one of the insight sections extracted from a transcript.
type Category string

const (
	CategoryTasks     Category = "tasks"
	CategoryDecisions Category = "decisions"
	CategoryQuestions Category = "questions"
	CategoryAttendees Category = "attendees"
	CategoryDeadlines Category = "deadlines"
	CategoryFollowUps Category = "follow_ups"
	CategoryRisks     Category = "risks"
)

// Categories returns all insight categories in their canonical render order.
func Categories() []Category {
	return []Category{
		CategoryTasks,
		CategoryDecisions,
		CategoryQuestions,
		CategoryAttendees,
		CategoryDeadlines,
		CategoryFollowUps,
		CategoryRisks,
	}
}

// Title returns the human-readable section heading for the category.
func (c Category) Title() string {
	switch c {
	case CategoryTasks:
		return "Tasks"
	case CategoryDecisions:
		return "Decisions"
	case CategoryQuestions:
		return "Questions"
	case CategoryAttendees:
		return "Attendees"
	case CategoryDeadlines:
		return "Deadlines"
	case CategoryFollowUps:
		return "Follow-ups"
	case CategoryRisks:
		return "Risks"
	}
	return string(c)
}

// InsightItem is a single categorized, quote-backed observation extracted
// from a transcript. The quote is expected to be a verbatim excerpt of the
// source transcript; that is a prompt-level policy, not enforced here.
type InsightItem struct {
	Point       string `json:"point" validate:"required"`
	Quote       string `json:"quote" validate:"required"`
	Speaker     string `json:"speaker" validate:"required"`
	SubCategory string `json:"subcategory"`
}

// MeetingInsight holds categorized insights extracted from a meeting
// transcript. Refinement replaces the whole value; items are never merged.
type MeetingInsight struct {
	Tasks     []InsightItem `json:"tasks"`
	Decisions []InsightItem `json:"decisions"`
	Questions []InsightItem `json:"questions"`
	Attendees []InsightItem `json:"attendees"`
	Deadlines []InsightItem `json:"deadlines"`
	FollowUps []InsightItem `json:"follow_ups"`
	Risks     []InsightItem `json:"risks"`
}

// NewMeetingInsight returns an insight with all seven sections initialized
// empty so JSON output always carries every section.
func NewMeetingInsight() *MeetingInsight {
	return &MeetingInsight{
		Tasks:     []InsightItem{},
		Decisions: []InsightItem{},
		Questions: []InsightItem{},
		Attendees: []InsightItem{},
		Deadlines: []InsightItem{},
		FollowUps: []InsightItem{},
		Risks:     []InsightItem{},
	}
}

// Items returns the item slice for the given category.
func (m *MeetingInsight) Items(c Category) []InsightItem {
	switch c {
	case CategoryTasks:
		return m.Tasks
	case CategoryDecisions:
		return m.Decisions
	case CategoryQuestions:
		return m.Questions
	case CategoryAttendees:
		return m.Attendees
	case CategoryDeadlines:
		return m.Deadlines
	case CategoryFollowUps:
		return m.FollowUps
	case CategoryRisks:
		return m.Risks
	}
	return nil
}

// SetItems replaces the item slice for the given category.
func (m *MeetingInsight) SetItems(c Category, items []InsightItem) {
	switch c {
	case CategoryTasks:
		m.Tasks = items
	case CategoryDecisions:
		m.Decisions = items
	case CategoryQuestions:
		m.Questions = items
	case CategoryAttendees:
		m.Attendees = items
	case CategoryDeadlines:
		m.Deadlines = items
	case CategoryFollowUps:
		m.FollowUps = items
	case CategoryRisks:
		m.Risks = items
	}
}

// IsEmpty reports whether every category has zero items.
func (m *MeetingInsight) IsEmpty() bool {
	for _, c := range Categories() {
		if len(m.Items(c)) > 0 {
			return false
		}
	}
	return true
}

// Normalize ensures every section slice is non-nil.
func (m *MeetingInsight) Normalize() {
	for _, c := range Categories() {
		if m.Items(c) == nil {
			m.SetItems(c, []InsightItem{})
		}
	}
}

// Placeholder values used by the manual entry escape hatch.
const (
	ManualEntryQuote   = "Manually entered"
	ManualEntrySpeaker = "Manual Entry"
)
