package repositories

import (
	"context"

	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
)

// MeetingRepository persists completed pipeline runs.
type MeetingRepository interface {
	// Save derives is_fallback and transcript_length from the transcript,
	// serializes the summary and performs a single insert. Returns the
	// created record with its store-assigned identifier and timestamp.
	Save(ctx context.Context, filename string, transcript entities.TranscriptResult, summary entities.StructuredSummary) (*entities.MeetingRecord, error)

	// GetByID returns the stored record, or (nil, nil) when no record
	// exists for the id.
	GetByID(ctx context.Context, id int64) (*entities.MeetingRecord, error)
}
