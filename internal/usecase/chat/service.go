package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
	"github.com/meetinglabs/meeting-summarizer/pkg/ai"
)

const meetingPromptTemplate = `Based on this meeting context, answer the user's question accurately and helpfully:

Meeting Summary: %s

Key Decisions: %s

Action Items: %s

Transcript Preview: %s

User Question: %s

Answer the question based only on the meeting information provided. If you don't have enough information from the meeting context, say so.`

const generalPromptTemplate = `You are a helpful AI assistant for a meeting summarization application.
The user is asking: %s

Provide a helpful response about meeting summarization, audio processing,
or general questions about the application.

If the user wants to analyze a meeting, guide them to use the file uploader.`

// Service answers user questions, grounded in a processed meeting when one
// is supplied and falling back to general assistant mode otherwise.
type Service interface {
	Ask(ctx context.Context, question string, meeting *entities.MeetingResult) string
}

type service struct {
	generator ai.TextGenerator
	logger    *zap.Logger
}

// NewService constructs the chat service
func NewService(generator ai.TextGenerator, logger *zap.Logger) Service {
	return &service{
		generator: generator,
		logger:    logger,
	}
}

// Ask never returns an error: a generation failure becomes an apologetic
// reply so the conversation can continue.
func (s *service) Ask(ctx context.Context, question string, meeting *entities.MeetingResult) string {
	prompt := buildPrompt(question, meeting)

	answer, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn("chat generation failed",
			zap.Bool("meeting_context", meeting != nil),
			zap.Error(err),
		)
		return fmt.Sprintf("Sorry, I encountered an error: %v", err)
	}

	return strings.TrimSpace(answer)
}

func buildPrompt(question string, meeting *entities.MeetingResult) string {
	if meeting == nil {
		return fmt.Sprintf(generalPromptTemplate, question)
	}

	tasks := make([]string, 0, len(meeting.Summary.ActionItems))
	for _, item := range meeting.Summary.ActionItems {
		tasks = append(tasks, item.Task)
	}

	return fmt.Sprintf(meetingPromptTemplate,
		meeting.Summary.Summary,
		strings.Join(meeting.Summary.KeyDecisions, ", "),
		strings.Join(tasks, ", "),
		meeting.TranscriptPreview,
		question,
	)
}
