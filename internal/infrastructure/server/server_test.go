package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/eslsoft/learnmode/internal/adapter/connectrpc"
	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/infrastructure/config"
)

type stubService struct {
	connectrpc.LearningContentServiceHandler
}

func (stubService) GetLearningContent(_ context.Context, req *connect.Request[connectrpc.GetLearningContentRequest]) (*connect.Response[entity.LearningContent], error) {
	if req.Msg.LessonID == "broken" {
		return nil, connect.NewError(connect.CodeInternal, errors.New("boom"))
	}
	return connect.NewResponse(&entity.LearningContent{LessonID: req.Msg.LessonID, Mode: entity.ModeNotes}), nil
}

func newTestHTTPServer(t *testing.T, origins string) (*httptest.Server, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", HTTPPort: 0, CORSOrigins: origins}}
	srv := httptest.NewServer(NewServer(cfg, logger, stubService{}).Handler())
	t.Cleanup(srv.Close)
	return srv, hook
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestHTTPServer(t, "*")
	resp, err := srv.Client().Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func TestRequestIDAndLogging(t *testing.T) {
	srv, hook := newTestHTTPServer(t, "*")

	call := func(body, requestID string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, srv.URL+connectrpc.GetLearningContentProcedure, strings.NewReader(body))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if requestID != "" {
			req.Header.Set(requestIDHeader, requestID)
		}
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		resp.Body.Close()
		return resp
	}

	resp := call(`{"lessonId":"l1"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Errorf("expected a generated request id")
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Message != "request completed" || entry.Level != logrus.InfoLevel {
		t.Fatalf("unexpected log entry %+v", entry)
	}
	if entry.Data["procedure"] != connectrpc.GetLearningContentProcedure {
		t.Errorf("unexpected procedure field %v", entry.Data["procedure"])
	}

	resp = call(`{"lessonId":"broken"}`, "req-42")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if got := resp.Header.Get(requestIDHeader); got != "req-42" {
		t.Errorf("request id = %q, want req-42", got)
	}
	entry = hook.LastEntry()
	if entry.Level != logrus.ErrorLevel || entry.Data["request_id"] != "req-42" {
		t.Errorf("unexpected error entry %+v", entry)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestHTTPServer(t, "https://app.example, https://admin.example")

	req, err := http.NewRequest(http.MethodOptions, srv.URL+connectrpc.GetModeContentProcedure, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "https://admin.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://admin.example" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		code connect.Code
		err  error
		want logrus.Level
	}{
		{0, nil, logrus.InfoLevel},
		{connect.CodeNotFound, errors.New("x"), logrus.WarnLevel},
		{connect.CodeInvalidArgument, errors.New("x"), logrus.WarnLevel},
		{connect.CodeInternal, errors.New("x"), logrus.ErrorLevel},
		{connect.CodeUnavailable, errors.New("x"), logrus.ErrorLevel},
	}
	for _, tt := range tests {
		if got := logLevel(tt.code, tt.err); got != tt.want {
			t.Errorf("logLevel(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestSplitOrigins(t *testing.T) {
	if got := splitOrigins(" , "); len(got) != 1 || got[0] != "*" {
		t.Errorf("blank origins = %v", got)
	}
	if got := splitOrigins("a, b"); len(got) != 2 || got[1] != "b" {
		t.Errorf("split origins = %v", got)
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&config.Config{Log: config.LogConfig{Level: "debug", Format: "text"}})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("expected text formatter, got %T", logger.Formatter)
	}
	if _, err := NewLogger(&config.Config{Log: config.LogConfig{Level: "loud"}}); err == nil {
		t.Errorf("expected error for bad level")
	}
}

func TestLogger_ErrorResponse(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	next := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		var resp *connect.Response[struct{}]
		return resp, connect.NewError(connect.CodeNotFound, errors.New("lesson missing"))
	}
	req := connect.NewRequest(&struct{}{})
	req.Header().Set(requestIDHeader, "req-7")

	_, err := Logger(log)(next)(context.Background(), req)

	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Code() != connect.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if got := connectErr.Meta().Get(requestIDHeader); got != "req-7" {
		t.Errorf("error meta request id = %q", got)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel || entry.Data["request_id"] != "req-7" {
		t.Fatalf("unexpected log entry %+v", entry)
	}
}
