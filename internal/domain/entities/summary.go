package entities

// PlaceholderTBD is stored for an action item's assignee or deadline when
// the transcript does not name one.
const PlaceholderTBD = "TBD"

// ActionItem is a single follow-up task extracted from a meeting
type ActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	Deadline string `json:"deadline"`
}

// StructuredSummary is the structured analysis of one meeting transcript.
// It is embedded into MeetingRecord as a JSON document.
type StructuredSummary struct {
	Summary      string       `json:"summary"`
	KeyDecisions []string     `json:"key_decisions"`
	ActionItems  []ActionItem `json:"action_items"`
}

// NewStructuredSummary returns a summary with initialized slices so the
// serialized document always carries key_decisions and action_items arrays.
func NewStructuredSummary(summary string) StructuredSummary {
	return StructuredSummary{
		Summary:      summary,
		KeyDecisions: []string{},
		ActionItems:  []ActionItem{},
	}
}
