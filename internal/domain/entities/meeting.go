package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// MeetingRecord is one persisted pipeline run. Records are written once and
// never updated; retrieval is read-only.
type MeetingRecord struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename         string         `gorm:"not null" json:"filename"`
	Transcript       string         `gorm:"not null" json:"transcript"`
	Summary          datatypes.JSON `gorm:"not null" json:"summary"`
	ASRService       string         `gorm:"column:asr_service;default:AssemblyAI" json:"asr_service"`
	LLMService       string         `gorm:"column:llm_service;default:Gemini" json:"llm_service"`
	TranscriptLength int            `gorm:"default:0" json:"transcript_length"`
	IsFallback       bool           `gorm:"default:false" json:"is_fallback"`
	CreatedAt        time.Time      `json:"created_at"`
}

// TableName pins the table name existing databases already use
func (MeetingRecord) TableName() string {
	return "meeting_summaries"
}

// StructuredSummary deserializes the stored summary document.
func (m *MeetingRecord) StructuredSummary() (StructuredSummary, error) {
	var s StructuredSummary
	if err := json.Unmarshal(m.Summary, &s); err != nil {
		return StructuredSummary{}, err
	}
	return s, nil
}

// MeetingResult is the pipeline's response contract: what a caller receives
// after one completed run, whether real or degraded.
type MeetingResult struct {
	ID                int64             `json:"id"`
	Filename          string            `json:"filename"`
	Message           string            `json:"message"`
	Summary           StructuredSummary `json:"summary"`
	TranscriptPreview string            `json:"transcript_preview"`
	CreatedAt         time.Time         `json:"created_at"`
}
