package meeting

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/meetinglabs/meeting-summarizer/errors"
	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
	"github.com/meetinglabs/meeting-summarizer/internal/domain/repositories"
	"github.com/meetinglabs/meeting-summarizer/internal/infrastructure/cache"
	"github.com/meetinglabs/meeting-summarizer/internal/infrastructure/storage"
	"github.com/meetinglabs/meeting-summarizer/internal/usecase/summarization"
	"github.com/meetinglabs/meeting-summarizer/internal/usecase/transcription"
	"github.com/meetinglabs/meeting-summarizer/pkg/runmeta"
)

// previewLimit is the maximum transcript length returned verbatim in a
// MeetingResult; longer transcripts are truncated with an ellipsis.
const previewLimit = 200

// lookupCacheTTL bounds how long a retrieved record is served from memory.
const lookupCacheTTL = 5 * time.Minute

var allowedExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".ogg":  {},
	".flac": {},
	".mpeg": {},
}

var contentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".mpeg": "audio/mpeg",
}

// Service orchestrates one meeting pipeline run: validate, stage,
// transcribe, summarize, persist, respond.
type Service interface {
	Run(ctx context.Context, audio []byte, originalFilename string) (*entities.MeetingResult, error)
	GetByID(ctx context.Context, id int64) (*entities.MeetingRecord, error)
}

type service struct {
	transcriber transcription.Service
	summarizer  summarization.Service
	meetingRepo repositories.MeetingRepository
	archive     *storage.AudioArchive // nil when storage is not configured
	lookupCache *cache.MemoryStore
	tempDir     string
	logger      *zap.Logger
}

// NewService constructs the pipeline orchestrator. tempDir is where staged
// uploads live; pass os.TempDir() in production.
func NewService(
	transcriber transcription.Service,
	summarizer summarization.Service,
	meetingRepo repositories.MeetingRepository,
	archive *storage.AudioArchive,
	tempDir string,
	logger *zap.Logger,
) Service {
	return &service{
		transcriber: transcriber,
		summarizer:  summarizer,
		meetingRepo: meetingRepo,
		archive:     archive,
		lookupCache: cache.NewMemoryStore(),
		tempDir:     tempDir,
		logger:      logger,
	}
}

// AllowedExtensions lists the accepted audio file extensions, sorted.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Preview truncates a transcript to the first previewLimit characters with
// a trailing ellipsis; shorter transcripts are returned verbatim. The limit
// counts runes, never splitting a multibyte character.
func Preview(transcript string) string {
	if utf8.RuneCountInString(transcript) <= previewLimit {
		return transcript
	}
	return string([]rune(transcript)[:previewLimit]) + "..."
}

// Run executes the pipeline. The transcription and summarization gateways
// cannot fail by contract; the two error classes surfaced to the caller are
// the unsupported-extension rejection and a persistence failure. Anything
// unanticipated (including panics) is reported as a generic processing
// failure. The staged temporary file is removed on every exit path.
func (s *service) Run(ctx context.Context, audio []byte, originalFilename string) (result *entities.MeetingResult, err error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, apperrors.ErrUnsupportedFileType(ext, AllowedExtensions())
	}

	runID := uuid.New()
	ctx, cancel := runmeta.RunBegin(ctx, runID, originalFilename)
	defer cancel()

	// Boundary guard: a panic in any stage must not leak out of the
	// pipeline, and the deferred cleanup below still runs first.
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("pipeline panic recovered",
				zap.String("run_id", runID.String()),
				zap.Any("panic", p),
			)
			result, err = nil, apperrors.ErrProcessingFailed(fmt.Errorf("panic: %v", p))
		}
	}()

	tempPath := filepath.Join(s.tempDir, fmt.Sprintf("meeting_%s%s", runID, ext))
	if werr := os.WriteFile(tempPath, audio, 0o600); werr != nil {
		return nil, apperrors.ErrProcessingFailed(fmt.Errorf("stage audio file: %w", werr))
	}
	defer func() {
		if rerr := os.Remove(tempPath); rerr != nil {
			s.logger.Warn("failed to remove temp file",
				zap.String("path", tempPath),
				zap.Error(rerr),
			)
		}
	}()

	s.logger.Info("pipeline run started",
		zap.String("run_id", runID.String()),
		zap.String("filename", originalFilename),
		zap.Int("size_bytes", len(audio)),
	)

	transcript := s.transcriber.Transcribe(ctx, tempPath)
	summary := s.summarizer.Summarize(ctx, transcript)

	record, serr := s.meetingRepo.Save(ctx, originalFilename, transcript, summary)
	if serr != nil {
		return nil, apperrors.ErrSaveFailed(serr)
	}

	// Warm the lookup cache with the row as written, so a get right after
	// upload skips the store.
	s.lookupCache.Set(lookupKey(record.ID), record, lookupCacheTTL)

	if s.archive != nil {
		s.archiveAudio(ctx, record.ID, originalFilename, ext, audio)
	}

	message := "Meeting processed successfully with AssemblyAI ASR!"
	if transcript.Fallback {
		message = "Meeting processed with fallback (ASR service unavailable)"
	}

	s.logger.Info("pipeline run completed",
		zap.String("run_id", runID.String()),
		zap.Int64("meeting_id", record.ID),
		zap.Bool("is_fallback", transcript.Fallback),
		zap.Int("transcript_length", transcript.Length()),
		zap.Duration("elapsed", runmeta.Elapsed(ctx)),
	)

	return &entities.MeetingResult{
		ID:                record.ID,
		Filename:          originalFilename,
		Message:           message,
		Summary:           summary,
		TranscriptPreview: Preview(transcript.Text),
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// GetByID serves lookups through the in-memory cache; records never change
// after insert so cached copies are safe. A miss in the store returns
// (nil, nil).
func (s *service) GetByID(ctx context.Context, id int64) (*entities.MeetingRecord, error) {
	key := lookupKey(id)
	if record, ok := s.lookupCache.Get(key); ok {
		return record, nil
	}

	record, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil || record == nil {
		return record, err
	}

	s.lookupCache.Set(key, record, lookupCacheTTL)
	return record, nil
}

func lookupKey(id int64) string {
	return fmt.Sprintf("meeting:%d", id)
}

// archiveAudio pushes the original upload to object storage. Failures are
// logged and swallowed; the record is already persisted.
func (s *service) archiveAudio(ctx context.Context, id int64, filename, ext string, audio []byte) {
	objectName := fmt.Sprintf("%d/%s", id, filepath.Base(filename))
	contentType := contentTypes[ext]

	if err := s.archive.Store(ctx, objectName, bytes.NewReader(audio), int64(len(audio)), contentType); err != nil {
		s.logger.Warn("audio archive upload failed",
			zap.Int64("meeting_id", id),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("audio archived",
		zap.Int64("meeting_id", id),
		zap.String("object", objectName),
	)
}
