package meeting

// ChatRequest represents a question for the meeting assistant. MeetingID
// is optional; when present the answer is grounded in that meeting.
type ChatRequest struct {
	Question  string `json:"question" validate:"required,min=1,max=2000"`
	MeetingID *int64 `json:"meeting_id,omitempty" validate:"omitempty,min=1"`
}
