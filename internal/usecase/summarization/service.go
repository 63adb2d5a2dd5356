package summarization

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
	pkgai "github.com/meetinglabs/meeting-summarizer/pkg/ai"
)

// summaryPromptTemplate instructs the model to return only the exact
// StructuredSummary JSON shape. The TBD rule keeps action items complete
// even when the transcript names no assignee or deadline.
const summaryPromptTemplate = `Analyze this meeting transcript and return ONLY a valid JSON object with this exact structure:
{
    "summary": "concise overall summary of the meeting",
    "key_decisions": ["decision1", "decision2", "decision3"],
    "action_items": [
        {
            "task": "specific task description",
            "assignee": "person responsible",
            "deadline": "timeline if mentioned"
        }
    ]
}

Transcript:
%s

Important:
- Return ONLY the JSON object, no other text
- Do not use markdown formatting
- Extract real action items and decisions from the conversation
- If no clear assignee or deadline, use "TBD"`

// Service is the summarization gateway. Summarize never returns an error:
// remote failures and malformed output degrade into explanatory summaries.
type Service interface {
	Summarize(ctx context.Context, transcript entities.TranscriptResult) entities.StructuredSummary
}

type service struct {
	gen    pkgai.TextGenerator
	logger *zap.Logger
}

// NewService constructs the summarization gateway
func NewService(gen pkgai.TextGenerator, logger *zap.Logger) Service {
	return &service{gen: gen, logger: logger}
}

// Summarize turns a transcript into a StructuredSummary. A fallback
// transcript short-circuits to a fixed service-unavailable summary without
// invoking the model.
func (s *service) Summarize(ctx context.Context, transcript entities.TranscriptResult) entities.StructuredSummary {
	if transcript.Fallback {
		s.logger.Warn("skipping summarization for fallback transcript",
			zap.String("reason", transcript.Reason),
		)
		return serviceUnavailableSummary()
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, transcript.Text)

	raw, err := s.gen.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error("summary generation failed", zap.Error(err))
		return processingErrorSummary(err)
	}

	summary, err := ParseSummaryResponse(raw)
	if err != nil {
		s.logger.Error("summary response was not valid JSON", zap.Error(err))
		return formattingIssueSummary()
	}

	s.logger.Info("summary generated",
		zap.Int("key_decisions", len(summary.KeyDecisions)),
		zap.Int("action_items", len(summary.ActionItems)),
	)
	return summary
}

// serviceUnavailableSummary is returned when transcription already fell
// back; there is nothing real to summarize.
func serviceUnavailableSummary() entities.StructuredSummary {
	return entities.StructuredSummary{
		Summary:      "AssemblyAI transcription service is currently unavailable. Please check your API key and internet connection.",
		KeyDecisions: []string{"Service temporarily unavailable"},
		ActionItems: []entities.ActionItem{
			{
				Task:     "Check AssemblyAI API configuration",
				Assignee: "System Administrator",
				Deadline: "ASAP",
			},
		},
	}
}

// formattingIssueSummary is returned when the model answered with something
// that could not be parsed as JSON even after fence-stripping.
func formattingIssueSummary() entities.StructuredSummary {
	return entities.NewStructuredSummary(
		"The language model returned a response with a formatting issue and no structured summary could be extracted. Please try again.",
	)
}

// processingErrorSummary embeds the remote failure so the degradation is
// visible in the stored record.
func processingErrorSummary(err error) entities.StructuredSummary {
	return entities.StructuredSummary{
		Summary:      fmt.Sprintf("Summary generation failed: %v", err),
		KeyDecisions: []string{"Processing error"},
		ActionItems:  []entities.ActionItem{},
	}
}
