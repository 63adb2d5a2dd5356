package ai

import (
	"context"
	"io"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/meetinglabs/meeting-summarizer/pkg/config"
)

// TranscriptAPI is the slice of the AssemblyAI SDK the transcription
// gateway depends on, so tests can substitute a fake.
type TranscriptAPI interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
	Submit(ctx context.Context, audioURL string) (aai.Transcript, error)
	Get(ctx context.Context, transcriptID string) (aai.Transcript, error)
}

// AssemblyAIClient wraps the official AssemblyAI SDK
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	return &AssemblyAIClient{client: aai.NewClient(cfg.APIKey)}
}

// Upload streams local audio to AssemblyAI and returns the upload URL
func (c *AssemblyAIClient) Upload(ctx context.Context, r io.Reader) (string, error) {
	return c.client.Upload(ctx, r)
}

// Submit starts an asynchronous transcription job for an uploaded audio URL.
// Speaker labels, language detection, punctuation and text formatting are
// always requested; only the transcript text is consumed downstream.
func (c *AssemblyAIClient) Submit(ctx context.Context, audioURL string) (aai.Transcript, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels:     aai.Bool(true),
		LanguageDetection: aai.Bool(true),
		Punctuate:         aai.Bool(true),
		FormatText:        aai.Bool(true),
	}
	return c.client.Transcripts.SubmitFromURL(ctx, audioURL, params)
}

// Get fetches the current state of a transcription job
func (c *AssemblyAIClient) Get(ctx context.Context, transcriptID string) (aai.Transcript, error) {
	return c.client.Transcripts.Get(ctx, transcriptID)
}
