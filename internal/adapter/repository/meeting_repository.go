package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
	repo "github.com/meetinglabs/meeting-summarizer/internal/domain/repositories"
)

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repo.MeetingRepository {
	return &meetingRepository{db: db}
}

// Save performs a single atomic insert; the identifier is assigned by the
// store so concurrent saves never contend in-process.
func (r *meetingRepository) Save(ctx context.Context, filename string, transcript entities.TranscriptResult, summary entities.StructuredSummary) (*entities.MeetingRecord, error) {
	doc, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	record := entities.MeetingRecord{
		Filename:         filename,
		Transcript:       transcript.Text,
		Summary:          datatypes.JSON(doc),
		ASRService:       "AssemblyAI",
		LLMService:       "Gemini",
		TranscriptLength: transcript.Length(),
		IsFallback:       transcript.Fallback,
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("insert meeting summary: %w", err)
	}
	return &record, nil
}

// GetByID returns (nil, nil) for a missing id; absence is not an error.
func (r *meetingRepository) GetByID(ctx context.Context, id int64) (*entities.MeetingRecord, error) {
	var record entities.MeetingRecord
	err := r.db.WithContext(ctx).First(&record, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query meeting summary %d: %w", id, err)
	}
	return &record, nil
}
