package summarization

import (
	"testing"

	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
)

const plainSummaryJSON = `{
	"summary": "Quarterly planning sync",
	"key_decisions": ["Ship v2 in March"],
	"action_items": [
		{"task": "Draft release notes", "assignee": "Dana", "deadline": "Friday"}
	]
}`

func TestParseSummaryResponse_PlainJSON(t *testing.T) {
	summary, err := ParseSummaryResponse(plainSummaryJSON)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if summary.Summary != "Quarterly planning sync" {
		t.Fatalf("unexpected summary %q", summary.Summary)
	}
	if len(summary.KeyDecisions) != 1 || summary.KeyDecisions[0] != "Ship v2 in March" {
		t.Fatalf("unexpected decisions %v", summary.KeyDecisions)
	}
	if len(summary.ActionItems) != 1 || summary.ActionItems[0].Assignee != "Dana" {
		t.Fatalf("unexpected action items %v", summary.ActionItems)
	}
}

func TestParseSummaryResponse_JSONFence(t *testing.T) {
	raw := "```json\n" + plainSummaryJSON + "\n```"
	summary, err := ParseSummaryResponse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if summary.Summary != "Quarterly planning sync" {
		t.Fatalf("unexpected summary %q", summary.Summary)
	}
}

func TestParseSummaryResponse_BareFence(t *testing.T) {
	raw := "```\n" + plainSummaryJSON + "\n```"
	summary, err := ParseSummaryResponse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if summary.Summary != "Quarterly planning sync" {
		t.Fatalf("unexpected summary %q", summary.Summary)
	}
}

func TestParseSummaryResponse_SurroundingWhitespace(t *testing.T) {
	raw := "\n\n  ```json\n" + plainSummaryJSON + "\n```  \n"
	if _, err := ParseSummaryResponse(raw); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
}

func TestParseSummaryResponse_NotJSON(t *testing.T) {
	if _, err := ParseSummaryResponse("I could not analyze this meeting."); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestParseSummaryResponse_NilSlicesBecomeEmpty(t *testing.T) {
	summary, err := ParseSummaryResponse(`{"summary": "short call"}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if summary.KeyDecisions == nil {
		t.Fatal("key decisions should be an empty slice, not nil")
	}
	if summary.ActionItems == nil {
		t.Fatal("action items should be an empty slice, not nil")
	}
}

func TestParseSummaryResponse_MissingFieldsGetTBD(t *testing.T) {
	raw := `{
		"summary": "standup",
		"key_decisions": [],
		"action_items": [
			{"task": "Fix login bug"},
			{"task": "Update docs", "assignee": "  ", "deadline": ""},
			{"task": "", "assignee": "Sam"}
		]
	}`
	summary, err := ParseSummaryResponse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(summary.ActionItems) != 2 {
		t.Fatalf("expected taskless item dropped, got %v", summary.ActionItems)
	}
	for _, item := range summary.ActionItems {
		if item.Assignee != entities.PlaceholderTBD {
			t.Fatalf("expected TBD assignee, got %q", item.Assignee)
		}
		if item.Deadline != entities.PlaceholderTBD {
			t.Fatalf("expected TBD deadline, got %q", item.Deadline)
		}
	}
}
