package summarization

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
	calls    int
	prompts  []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestSummarize_Success(t *testing.T) {
	gen := &fakeGenerator{response: plainSummaryJSON}
	svc := NewService(gen, zap.NewNop())

	summary := svc.Summarize(context.Background(), entities.RealTranscript("we agreed to ship v2 in March"))

	if summary.Summary != "Quarterly planning sync" {
		t.Fatalf("unexpected summary %q", summary.Summary)
	}
	if gen.calls != 1 {
		t.Fatalf("expected 1 generation call, got %d", gen.calls)
	}
	if !strings.Contains(gen.prompts[0], "we agreed to ship v2 in March") {
		t.Fatal("prompt should embed the transcript")
	}
}

func TestSummarize_FallbackTranscriptSkipsModel(t *testing.T) {
	gen := &fakeGenerator{response: plainSummaryJSON}
	svc := NewService(gen, zap.NewNop())

	summary := svc.Summarize(context.Background(), entities.FallbackTranscript("upload failed"))

	if gen.calls != 0 {
		t.Fatalf("model must not be invoked for a fallback transcript, got %d calls", gen.calls)
	}
	if !strings.Contains(summary.Summary, "transcription service is currently unavailable") {
		t.Fatalf("unexpected summary %q", summary.Summary)
	}
	if len(summary.KeyDecisions) != 1 || summary.KeyDecisions[0] != "Service temporarily unavailable" {
		t.Fatalf("unexpected decisions %v", summary.KeyDecisions)
	}
	if len(summary.ActionItems) != 1 || summary.ActionItems[0].Assignee != "System Administrator" {
		t.Fatalf("unexpected action items %v", summary.ActionItems)
	}
}

func TestSummarize_GenerationError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewService(gen, zap.NewNop())

	summary := svc.Summarize(context.Background(), entities.RealTranscript("short call"))

	if !strings.Contains(summary.Summary, "Summary generation failed") {
		t.Fatalf("unexpected summary %q", summary.Summary)
	}
	if !strings.Contains(summary.Summary, "quota exceeded") {
		t.Fatalf("summary should embed the cause, got %q", summary.Summary)
	}
	if len(summary.KeyDecisions) != 1 || summary.KeyDecisions[0] != "Processing error" {
		t.Fatalf("unexpected decisions %v", summary.KeyDecisions)
	}
	if summary.ActionItems == nil || len(summary.ActionItems) != 0 {
		t.Fatalf("expected empty action items, got %v", summary.ActionItems)
	}
}

func TestSummarize_UnparseableResponse(t *testing.T) {
	gen := &fakeGenerator{response: "Sure! Here is your summary in plain prose."}
	svc := NewService(gen, zap.NewNop())

	summary := svc.Summarize(context.Background(), entities.RealTranscript("short call"))

	if !strings.Contains(summary.Summary, "formatting issue") {
		t.Fatalf("unexpected summary %q", summary.Summary)
	}
	if summary.KeyDecisions == nil || summary.ActionItems == nil {
		t.Fatal("degraded summary must carry initialized slices")
	}
}
