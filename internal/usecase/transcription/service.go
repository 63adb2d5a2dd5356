package transcription

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
	pkgai "github.com/meetinglabs/meeting-summarizer/pkg/ai"
	"github.com/meetinglabs/meeting-summarizer/pkg/config"
	"github.com/meetinglabs/meeting-summarizer/pkg/runmeta"
)

// Service is the transcription gateway. Transcribe never returns an error:
// every failure mode (configuration, remote error, timeout) is absorbed into
// a fallback TranscriptResult so the pipeline stays uniform.
type Service interface {
	Transcribe(ctx context.Context, audioFilePath string) entities.TranscriptResult
}

type service struct {
	api    pkgai.TranscriptAPI
	cfg    *config.AssemblyAIConfig
	logger *zap.Logger
}

// NewService constructs the transcription gateway
func NewService(api pkgai.TranscriptAPI, cfg *config.AssemblyAIConfig, logger *zap.Logger) Service {
	return &service{api: api, cfg: cfg, logger: logger}
}

// errStillProcessing signals the poll loop to keep waiting.
var errStillProcessing = stderrors.New("transcript still processing")

// Transcribe uploads the staged audio file, submits a transcription job and
// polls until it terminates or the attempt budget runs out.
func (s *service) Transcribe(ctx context.Context, audioFilePath string) entities.TranscriptResult {
	// Local preconditions checked before any remote call. A missing file or
	// blank credential is a setup problem, not a service outage, and is
	// logged as such.
	fi, err := os.Stat(audioFilePath)
	if err != nil {
		reason := fmt.Sprintf("configuration: audio file not found: %s", audioFilePath)
		s.logger.Error("transcription precondition failed", zap.String("reason", reason))
		return entities.FallbackTranscript(reason)
	}
	if fi.Size() == 0 {
		reason := fmt.Sprintf("configuration: audio file is empty: %s", audioFilePath)
		s.logger.Error("transcription precondition failed", zap.String("reason", reason))
		return entities.FallbackTranscript(reason)
	}
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		reason := "configuration: AssemblyAI API key not configured"
		s.logger.Error("transcription precondition failed", zap.String("reason", reason))
		return entities.FallbackTranscript(reason)
	}

	f, err := os.Open(audioFilePath)
	if err != nil {
		return s.fallback(fmt.Sprintf("open audio file: %v", err))
	}
	defer f.Close()

	s.logger.Info("uploading audio to AssemblyAI",
		zap.String("path", audioFilePath),
		zap.Int64("size_bytes", fi.Size()),
	)

	uploadURL, err := s.api.Upload(ctx, f)
	if err != nil {
		return s.fallback(fmt.Sprintf("upload to AssemblyAI: %v", err))
	}

	submitted, err := s.api.Submit(ctx, uploadURL)
	if err != nil {
		return s.fallback(fmt.Sprintf("submit transcription job: %v", err))
	}
	if submitted.ID == nil {
		return s.fallback("submit transcription job: no transcript id returned")
	}

	s.logger.Info("transcription job submitted",
		zap.String("transcript_id", *submitted.ID),
		zap.String("status", string(submitted.Status)),
	)

	text, err := s.poll(ctx, *submitted.ID)
	if err != nil {
		return s.fallback(err.Error())
	}

	if runID, ok := runmeta.RunID(ctx); ok {
		s.logger.Info("transcription completed",
			zap.String("run_id", runID.String()),
			zap.Int("transcript_length", utf8.RuneCountInString(text)),
			zap.Duration("elapsed", runmeta.Elapsed(ctx)),
		)
	}

	return entities.RealTranscript(text)
}

// poll fetches job status on a fixed interval until the job terminates.
// The attempt cap gives a hard wait ceiling (60 polls x 5s by default) so a
// remote job that never terminates cannot stall the pipeline.
func (s *service) poll(ctx context.Context, transcriptID string) (string, error) {
	var text string

	op := func() error {
		t, err := s.api.Get(ctx, transcriptID)
		if err != nil {
			// Transient fetch failures share the poll budget.
			return err
		}

		switch t.Status {
		case aai.TranscriptStatusCompleted:
			if t.Text == nil {
				return backoff.Permanent(fmt.Errorf("completed transcript %s has no text", transcriptID))
			}
			text = strings.TrimSpace(*t.Text)
			return nil
		case aai.TranscriptStatusError:
			msg := "unknown error"
			if t.Error != nil {
				msg = *t.Error
			}
			return backoff.Permanent(fmt.Errorf("AssemblyAI error: %s", msg))
		default:
			return errStillProcessing
		}
	}

	// WithMaxRetries counts retries after the initial attempt, so the cap
	// is attempts minus one to keep total Get calls at MaxPollAttempts.
	bo := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(s.cfg.PollInterval),
		uint64(s.cfg.MaxPollAttempts-1),
	)
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if stderrors.Is(err, errStillProcessing) {
			return "", fmt.Errorf("AssemblyAI timeout after %d polls", s.cfg.MaxPollAttempts)
		}
		return "", err
	}
	return text, nil
}

func (s *service) fallback(reason string) entities.TranscriptResult {
	s.logger.Warn("transcription failed, falling back to sample transcript",
		zap.String("reason", reason),
	)
	return entities.FallbackTranscript(reason)
}
