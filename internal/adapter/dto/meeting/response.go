package meeting

import "time"

// ActionItemResponse represents one action item in responses
type ActionItemResponse struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	Deadline string `json:"deadline"`
}

// SummaryResponse represents the structured summary in responses
type SummaryResponse struct {
	Summary      string               `json:"summary"`
	KeyDecisions []string             `json:"key_decisions"`
	ActionItems  []ActionItemResponse `json:"action_items"`
}

// MeetingResponse represents the result of a pipeline run
type MeetingResponse struct {
	ID                int64           `json:"id"`
	Filename          string          `json:"filename"`
	Message           string          `json:"message"`
	Summary           SummaryResponse `json:"summary"`
	TranscriptPreview string          `json:"transcript_preview"`
	CreatedAt         time.Time       `json:"created_at"`
}

// MeetingDetailResponse represents a stored meeting record, full transcript
// included
type MeetingDetailResponse struct {
	ID               int64           `json:"id"`
	Filename         string          `json:"filename"`
	Transcript       string          `json:"transcript"`
	Summary          SummaryResponse `json:"summary"`
	ASRService       string          `json:"asr_service"`
	LLMService       string          `json:"llm_service"`
	TranscriptLength int             `json:"transcript_length"`
	IsFallback       bool            `json:"is_fallback"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ChatResponse represents the assistant's answer
type ChatResponse struct {
	Answer    string `json:"answer"`
	MeetingID *int64 `json:"meeting_id,omitempty"`
}

// HealthResponse reports service liveness and gateway configuration
type HealthResponse struct {
	Status        string `json:"status"`
	ASRConfigured bool   `json:"asr_configured"`
	LLMConfigured bool   `json:"llm_configured"`
}
