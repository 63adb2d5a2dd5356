package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testMeeting() *entities.MeetingResult {
	return &entities.MeetingResult{
		ID:       7,
		Filename: "standup.mp3",
		Summary: entities.StructuredSummary{
			Summary:      "Sprint planning for the payments team",
			KeyDecisions: []string{"Freeze scope on Friday", "Cut the legacy exporter"},
			ActionItems: []entities.ActionItem{
				{Task: "Write migration runbook", Assignee: "Riley", Deadline: "Thursday"},
			},
		},
		TranscriptPreview: "ok everyone, quick recap of where we are...",
	}
}

func TestAsk_MeetingContext(t *testing.T) {
	gen := &fakeGenerator{response: "  Scope freezes on Friday.  "}
	svc := NewService(gen, zap.NewNop())

	answer := svc.Ask(context.Background(), "When does scope freeze?", testMeeting())

	if answer != "Scope freezes on Friday." {
		t.Fatalf("unexpected answer %q", answer)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 generation call, got %d", len(gen.prompts))
	}

	prompt := gen.prompts[0]
	for _, want := range []string{
		"Sprint planning for the payments team",
		"Freeze scope on Friday, Cut the legacy exporter",
		"Write migration runbook",
		"ok everyone, quick recap of where we are...",
		"When does scope freeze?",
		"based only on the meeting information provided",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestAsk_GeneralContext(t *testing.T) {
	gen := &fakeGenerator{response: "Upload an audio file to get started."}
	svc := NewService(gen, zap.NewNop())

	answer := svc.Ask(context.Background(), "What formats do you support?", nil)

	if answer != "Upload an audio file to get started." {
		t.Fatalf("unexpected answer %q", answer)
	}

	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "meeting summarization application") {
		t.Fatalf("expected general assistant prompt, got:\n%s", prompt)
	}
	if strings.Contains(prompt, "Meeting Summary:") {
		t.Fatal("general prompt must not carry meeting context")
	}
}

func TestAsk_GenerationError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("rate limited")}
	svc := NewService(gen, zap.NewNop())

	answer := svc.Ask(context.Background(), "anything", testMeeting())

	if !strings.HasPrefix(answer, "Sorry, I encountered an error:") {
		t.Fatalf("unexpected answer %q", answer)
	}
	if !strings.Contains(answer, "rate limited") {
		t.Fatalf("answer should carry the cause, got %q", answer)
	}
}
