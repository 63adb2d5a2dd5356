package handler

import (
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/meetinglabs/meeting-summarizer/errors"
	meetingdto "github.com/meetinglabs/meeting-summarizer/internal/adapter/dto/meeting"
	"github.com/meetinglabs/meeting-summarizer/internal/adapter/presenter"
	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
	chatuc "github.com/meetinglabs/meeting-summarizer/internal/usecase/chat"
	meetinguc "github.com/meetinglabs/meeting-summarizer/internal/usecase/meeting"
)

// Meeting handles the meeting pipeline endpoints
type Meeting struct {
	meetingService meetinguc.Service
	chatService    chatuc.Service
	logger         *zap.Logger
}

// NewMeeting creates a meeting handler
func NewMeeting(meetingService meetinguc.Service, chatService chatuc.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		chatService:    chatService,
		logger:         logger,
	}
}

// Summarize accepts a multipart audio upload and runs the full pipeline
func (h *Meeting) Summarize(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrMissingAudioFile())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrProcessingFailed(err))
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrProcessingFailed(err))
	}

	result, err := h.meetingService.Run(c.Request().Context(), audio, fileHeader.Filename)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(result))
}

// GetByID returns one stored meeting record, full transcript included
func (h *Meeting) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("meeting id must be a positive integer"))
	}

	record, err := h.meetingService.GetByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if record == nil {
		return HandleError(h.logger, c, apperrors.ErrMeetingNotFound(id))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingDetailResponse(record))
}

// Chat answers a question, grounded in a stored meeting when meeting_id is
// supplied
func (h *Meeting) Chat(c echo.Context) error {
	var req meetingdto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload(err))
	}

	var context *entities.MeetingResult
	if req.MeetingID != nil {
		record, err := h.meetingService.GetByID(c.Request().Context(), *req.MeetingID)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		if record == nil {
			return HandleError(h.logger, c, apperrors.ErrMeetingNotFound(*req.MeetingID))
		}
		context = meetingContext(record)
	}

	answer := h.chatService.Ask(c.Request().Context(), req.Question, context)

	return HandleSuccess(h.logger, c, meetingdto.ChatResponse{
		Answer:    answer,
		MeetingID: req.MeetingID,
	})
}

// Test confirms the service and its features are reachable
func (h *Meeting) Test(c echo.Context) error {
	return HandleSuccess(h.logger, c, map[string]interface{}{
		"message":     "Meeting Summarizer API is working",
		"asr_service": "AssemblyAI",
		"llm_service": "Google Gemini",
		"status":      "operational",
		"features":    []string{"real_asr", "ai_summarization", "action_items"},
	})
}

// meetingContext rebuilds the chat context from a stored record
func meetingContext(record *entities.MeetingRecord) *entities.MeetingResult {
	summary, err := record.StructuredSummary()
	if err != nil {
		summary = entities.NewStructuredSummary("")
	}

	return &entities.MeetingResult{
		ID:                record.ID,
		Filename:          record.Filename,
		Summary:           summary,
		TranscriptPreview: meetinguc.Preview(record.Transcript),
		CreatedAt:         record.CreatedAt,
	}
}
