package summarization

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
)

// ParseSummaryResponse normalizes a raw model response into a
// StructuredSummary: known wrapper patterns (markdown code fences, optional
// language tag) are stripped, the remainder is parsed as JSON, and the
// result is repaired so slices are non-nil and incomplete action items carry
// the TBD placeholder.
func ParseSummaryResponse(raw string) (entities.StructuredSummary, error) {
	content := extractJSON(raw)

	var summary entities.StructuredSummary
	if err := json.Unmarshal([]byte(content), &summary); err != nil {
		return entities.StructuredSummary{}, fmt.Errorf("failed to parse summary response: %w", err)
	}

	normalize(&summary)
	return summary, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

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

// normalize repairs a parsed summary in place. Items without a task are
// dropped; blank assignee or deadline becomes the TBD placeholder.
func normalize(s *entities.StructuredSummary) {
	if s.KeyDecisions == nil {
		s.KeyDecisions = []string{}
	}

	items := make([]entities.ActionItem, 0, len(s.ActionItems))
	for _, item := range s.ActionItems {
		item.Task = strings.TrimSpace(item.Task)
		if item.Task == "" {
			continue
		}
		if strings.TrimSpace(item.Assignee) == "" {
			item.Assignee = entities.PlaceholderTBD
		}
		if strings.TrimSpace(item.Deadline) == "" {
			item.Deadline = entities.PlaceholderTBD
		}
		items = append(items, item)
	}
	s.ActionItems = items
}
