package presenter

import (
	"github.com/meetinglabs/meeting-summarizer/internal/adapter/dto/meeting"
	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
)

// ToSummaryResponse converts a StructuredSummary to its DTO
func ToSummaryResponse(s entities.StructuredSummary) meeting.SummaryResponse {
	items := make([]meeting.ActionItemResponse, len(s.ActionItems))
	for i, item := range s.ActionItems {
		items[i] = meeting.ActionItemResponse{
			Task:     item.Task,
			Assignee: item.Assignee,
			Deadline: item.Deadline,
		}
	}

	return meeting.SummaryResponse{
		Summary:      s.Summary,
		KeyDecisions: s.KeyDecisions,
		ActionItems:  items,
	}
}

// ToMeetingResponse converts a pipeline result to MeetingResponse
func ToMeetingResponse(r *entities.MeetingResult) *meeting.MeetingResponse {
	if r == nil {
		return nil
	}

	return &meeting.MeetingResponse{
		ID:                r.ID,
		Filename:          r.Filename,
		Message:           r.Message,
		Summary:           ToSummaryResponse(r.Summary),
		TranscriptPreview: r.TranscriptPreview,
		CreatedAt:         r.CreatedAt,
	}
}

// ToMeetingDetailResponse converts a stored record to MeetingDetailResponse
func ToMeetingDetailResponse(r *entities.MeetingRecord) *meeting.MeetingDetailResponse {
	if r == nil {
		return nil
	}

	summary, err := r.StructuredSummary()
	if err != nil {
		summary = entities.NewStructuredSummary("")
	}

	return &meeting.MeetingDetailResponse{
		ID:               r.ID,
		Filename:         r.Filename,
		Transcript:       r.Transcript,
		Summary:          ToSummaryResponse(summary),
		ASRService:       r.ASRService,
		LLMService:       r.LLMService,
		TranscriptLength: r.TranscriptLength,
		IsFallback:       r.IsFallback,
		CreatedAt:        r.CreatedAt,
	}
}
