package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/meetinglabs/meeting-summarizer/errors"
	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
	"github.com/meetinglabs/meeting-summarizer/pkg/config"
	pkgvalidator "github.com/meetinglabs/meeting-summarizer/pkg/validator"
)

type fakeMeetingService struct {
	runResult *entities.MeetingResult
	runErr    error
	record    *entities.MeetingRecord
	getErr    error

	lastAudio    []byte
	lastFilename string
}

func (f *fakeMeetingService) Run(_ context.Context, audio []byte, originalFilename string) (*entities.MeetingResult, error) {
	f.lastAudio = audio
	f.lastFilename = originalFilename
	return f.runResult, f.runErr
}

func (f *fakeMeetingService) GetByID(_ context.Context, _ int64) (*entities.MeetingRecord, error) {
	return f.record, f.getErr
}

type fakeChatService struct {
	answer      string
	lastContext *entities.MeetingResult
}

func (f *fakeChatService) Ask(_ context.Context, _ string, meeting *entities.MeetingResult) string {
	f.lastContext = meeting
	return f.answer
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	return e
}

func multipartAudio(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (int, json.RawMessage) {
	t.Helper()
	var env struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env.Code, env.Data
}

func TestSummarize_Success(t *testing.T) {
	svc := &fakeMeetingService{
		runResult: &entities.MeetingResult{
			ID:                3,
			Filename:          "standup.mp3",
			Message:           "Meeting processed successfully with AssemblyAI ASR!",
			Summary:           entities.NewStructuredSummary("quick sync"),
			TranscriptPreview: "hello",
		},
	}
	h := NewMeeting(svc, &fakeChatService{}, zap.NewNop())
	e := newTestEcho()

	body, contentType := multipartAudio(t, "audio", "standup.mp3", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/meeting/summarize", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := h.Summarize(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	if svc.lastFilename != "standup.mp3" {
		t.Fatalf("unexpected filename %q", svc.lastFilename)
	}
	if string(svc.lastAudio) != "bytes" {
		t.Fatalf("unexpected audio payload %q", svc.lastAudio)
	}

	_, data := decodeEnvelope(t, rec)
	var resp struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.ID != 3 || !strings.Contains(resp.Message, "AssemblyAI") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSummarize_MissingFile(t *testing.T) {
	h := NewMeeting(&fakeMeetingService{}, &fakeChatService{}, zap.NewNop())
	e := newTestEcho()

	body, contentType := multipartAudio(t, "wrong_field", "a.mp3", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/meeting/summarize", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := h.Summarize(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Missing audio file") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestSummarize_UnsupportedType(t *testing.T) {
	svc := &fakeMeetingService{
		runErr: apperrors.ErrUnsupportedFileType(".txt", []string{".mp3", ".wav"}),
	}
	h := NewMeeting(svc, &fakeChatService{}, zap.NewNop())
	e := newTestEcho()

	body, contentType := multipartAudio(t, "audio", "notes.txt", []byte("text"))
	req := httptest.NewRequest(http.MethodPost, "/meeting/summarize", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := h.Summarize(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not supported") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestGetByID_InvalidID(t *testing.T) {
	h := NewMeeting(&fakeMeetingService{}, &fakeChatService{}, zap.NewNop())
	e := newTestEcho()

	for _, raw := range []string{"abc", "0", "-4"} {
		req := httptest.NewRequest(http.MethodGet, "/meeting/"+raw, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(raw)

		if err := h.GetByID(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %d", raw, rec.Code)
		}
	}
}

func TestGetByID_NotFound(t *testing.T) {
	h := NewMeeting(&fakeMeetingService{}, &fakeChatService{}, zap.NewNop())
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/meeting/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.GetByID(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetByID_Success(t *testing.T) {
	summaryDoc, _ := json.Marshal(entities.NewStructuredSummary("retro recap"))
	svc := &fakeMeetingService{
		record: &entities.MeetingRecord{
			ID:         42,
			Filename:   "retro.mp3",
			Transcript: "full transcript here",
			Summary:    summaryDoc,
			ASRService: "AssemblyAI",
			LLMService: "Gemini",
		},
	}
	h := NewMeeting(svc, &fakeChatService{}, zap.NewNop())
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/meeting/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.GetByID(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	_, data := decodeEnvelope(t, rec)
	var resp struct {
		ID         int64  `json:"id"`
		Transcript string `json:"transcript"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.ID != 42 || resp.Transcript != "full transcript here" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestChat_General(t *testing.T) {
	chat := &fakeChatService{answer: "You can upload mp3, wav, m4a, ogg, flac or mpeg files."}
	h := NewMeeting(&fakeMeetingService{}, chat, zap.NewNop())
	e := newTestEcho()

	payload := `{"question": "What formats do you support?"}`
	req := httptest.NewRequest(http.MethodPost, "/meeting/chat", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Chat(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if chat.lastContext != nil {
		t.Fatal("no meeting context expected without meeting_id")
	}

	_, data := decodeEnvelope(t, rec)
	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !strings.Contains(resp.Answer, "mp3") {
		t.Fatalf("unexpected answer %q", resp.Answer)
	}
}

func TestChat_WithMeetingContext(t *testing.T) {
	summaryDoc, _ := json.Marshal(entities.StructuredSummary{
		Summary:      "planning",
		KeyDecisions: []string{"ship friday"},
		ActionItems:  []entities.ActionItem{},
	})
	svc := &fakeMeetingService{
		record: &entities.MeetingRecord{
			ID:         7,
			Filename:   "planning.mp3",
			Transcript: strings.Repeat("t", 300),
			Summary:    summaryDoc,
		},
	}
	chat := &fakeChatService{answer: "We ship on Friday."}
	h := NewMeeting(svc, chat, zap.NewNop())
	e := newTestEcho()

	payload := `{"question": "When do we ship?", "meeting_id": 7}`
	req := httptest.NewRequest(http.MethodPost, "/meeting/chat", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Chat(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	if chat.lastContext == nil {
		t.Fatal("expected meeting context")
	}
	if chat.lastContext.Summary.Summary != "planning" {
		t.Fatalf("unexpected context summary %q", chat.lastContext.Summary.Summary)
	}
	if len(chat.lastContext.TranscriptPreview) != 203 {
		t.Fatalf("context preview should be truncated, got %d chars", len(chat.lastContext.TranscriptPreview))
	}
}

func TestChat_MeetingNotFound(t *testing.T) {
	h := NewMeeting(&fakeMeetingService{}, &fakeChatService{}, zap.NewNop())
	e := newTestEcho()

	payload := `{"question": "anything", "meeting_id": 99}`
	req := httptest.NewRequest(http.MethodPost, "/meeting/chat", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Chat(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestChat_MissingQuestion(t *testing.T) {
	h := NewMeeting(&fakeMeetingService{}, &fakeChatService{}, zap.NewNop())
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodPost, "/meeting/chat", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Chat(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	cfg := &config.Config{}
	cfg.Assembly.APIKey = "set"
	rt := NewRouter(cfg, NewMeeting(&fakeMeetingService{}, &fakeChatService{}, zap.NewNop()))
	e := newTestEcho()
	rt.Setup(e)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	var resp struct {
		Status        string `json:"status"`
		ASRConfigured bool   `json:"asr_configured"`
		LLMConfigured bool   `json:"llm_configured"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Status != "healthy" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
	if !resp.ASRConfigured || resp.LLMConfigured {
		t.Fatalf("unexpected configuration flags %+v", resp)
	}
}

func TestRoutes(t *testing.T) {
	rt := NewRouter(&config.Config{}, NewMeeting(&fakeMeetingService{}, &fakeChatService{}, zap.NewNop()))
	e := newTestEcho()
	rt.Setup(e)

	registered := map[string]bool{}
	for _, route := range e.Routes() {
		registered[fmt.Sprintf("%s %s", route.Method, route.Path)] = true
	}

	for _, want := range []string{
		"GET /",
		"GET /health",
		"POST /meeting/summarize",
		"GET /meeting/test",
		"GET /meeting/:id",
		"POST /meeting/chat",
	} {
		if !registered[want] {
			t.Fatalf("route %q not registered, have %v", want, registered)
		}
	}
}
