package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/wayfarer/internal/shared"
	tu "github.com/desertthunder/wayfarer/internal/testing"
)

// recordingNotifier captures every pipeline event for assertion.
type recordingNotifier struct {
	mu        sync.Mutex
	messages  []string
	busy      []bool
	redirects int
}

func (n *recordingNotifier) Notify(level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, fmt.Sprintf("%s: %s", level, message))
}

func (n *recordingNotifier) BusyChanged(active bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.busy = append(n.busy, active)
}

func (n *recordingNotifier) RedirectToLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.redirects++
}

func (n *recordingNotifier) lastMessage() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

func newTestPipeline(t *testing.T, transport http.RoundTripper) (*Pipeline, *CredentialStore, *recordingNotifier) {
	t.Helper()

	notifier := &recordingNotifier{}
	client := NewClient("http://example.com", &http.Client{Transport: transport}, 0)
	creds := NewCredentialStore(filepath.Join(t.TempDir(), "token"), nil)
	return NewPipeline(client, creds, notifier, nil), creds, notifier
}

func TestPipelineDo(t *testing.T) {
	t.Run("Successful Envelope", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(
			tu.EnvelopeResponse(http.StatusOK, true, map[string]any{"id": 1}, "ok"), nil)
		pipeline, _, notifier := newTestPipeline(t, transport)

		env, err := pipeline.Do(context.Background(), http.MethodGet, "/v1/test", nil, CallOpts{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !env.Success {
			t.Error("expected success envelope")
		}
		if len(notifier.messages) != 0 {
			t.Errorf("expected no notifications, got %v", notifier.messages)
		}
	})

	t.Run("Network Failure", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
		pipeline, _, notifier := newTestPipeline(t, transport)

		_, err := pipeline.Do(context.Background(), http.MethodGet, "/v1/test", nil, CallOpts{})
		if err == nil {
			t.Fatal("expected error for network failure")
		}

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError, got %T", err)
		}
		if transportErr.Kind != TransportNetwork {
			t.Errorf("expected network kind, got %s", transportErr.Kind)
		}
		if !errors.Is(err, shared.ErrNetwork) {
			t.Error("expected error to unwrap to ErrNetwork")
		}
		if !strings.HasPrefix(notifier.lastMessage(), "error:") {
			t.Errorf("expected error-level notification, got %q", notifier.lastMessage())
		}
	})

	t.Run("Malformed Body", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.RawResponse(http.StatusOK, "<html>not json</html>"), nil)
		pipeline, _, _ := newTestPipeline(t, transport)

		_, err := pipeline.Do(context.Background(), http.MethodGet, "/v1/test", nil, CallOpts{})

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError, got %T", err)
		}
		if transportErr.Kind != TransportMalformed {
			t.Errorf("expected malformed kind, got %s", transportErr.Kind)
		}
		if !errors.Is(err, shared.ErrMalformedResponse) {
			t.Error("expected error to unwrap to ErrMalformedResponse")
		}
	})

	t.Run("Unauthorized Destroys Session", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(
			tu.EnvelopeResponse(http.StatusUnauthorized, false, nil, "token expired"), nil)
		pipeline, creds, notifier := newTestPipeline(t, transport)

		if err := creds.Persist("stale-token"); err != nil {
			t.Fatalf("failed to persist token: %v", err)
		}

		_, err := pipeline.Do(context.Background(), http.MethodGet, "/v1/test", nil, CallOpts{})
		if err == nil {
			t.Fatal("expected error for 401")
		}

		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %T", err)
		}
		if authErr.Forbidden {
			t.Error("expected unauthenticated, not forbidden")
		}
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Error("expected error to unwrap to ErrNotAuthenticated")
		}
		if creds.Current().Token != "" {
			t.Error("expected credentials cleared after 401")
		}
		if notifier.redirects != 1 {
			t.Errorf("expected one redirect-to-login, got %d", notifier.redirects)
		}
	})

	t.Run("Forbidden Leaves Session Intact", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(
			tu.EnvelopeResponse(http.StatusForbidden, false, nil, "admin only"), nil)
		pipeline, creds, notifier := newTestPipeline(t, transport)

		if err := creds.Persist("valid-token"); err != nil {
			t.Fatalf("failed to persist token: %v", err)
		}

		_, err := pipeline.Do(context.Background(), http.MethodGet, "/v1/admin", nil, CallOpts{})

		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %T", err)
		}
		if !authErr.Forbidden {
			t.Error("expected forbidden")
		}
		if !errors.Is(err, shared.ErrForbidden) {
			t.Error("expected error to unwrap to ErrForbidden")
		}
		if creds.Current().Token != "valid-token" {
			t.Error("expected session to survive a 403")
		}
		if notifier.redirects != 0 {
			t.Errorf("expected no redirect for 403, got %d", notifier.redirects)
		}
		if !strings.HasPrefix(notifier.lastMessage(), "warning:") {
			t.Errorf("expected warning-level notification, got %q", notifier.lastMessage())
		}
	})

	t.Run("Validation Failure Extracts Detail", func(t *testing.T) {
		body := `{"detail": [{"msg": "destination is required"}, {"msg": "days must be positive"}]}`
		transport := tu.NewMockRoundTripper(tu.RawResponse(http.StatusUnprocessableEntity, body), nil)
		pipeline, _, _ := newTestPipeline(t, transport)

		_, err := pipeline.Do(context.Background(), http.MethodPost, "/v1/itinerary/generate", nil, CallOpts{})

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError, got %T", err)
		}
		if transportErr.Status != http.StatusUnprocessableEntity {
			t.Errorf("expected status 422, got %d", transportErr.Status)
		}
		if transportErr.Detail != "destination is required, days must be positive" {
			t.Errorf("unexpected detail: %q", transportErr.Detail)
		}
	})

	t.Run("Server Error Uses Envelope Message", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(
			tu.EnvelopeResponse(http.StatusInternalServerError, false, nil, "database unavailable"), nil)
		pipeline, _, _ := newTestPipeline(t, transport)

		_, err := pipeline.Do(context.Background(), http.MethodGet, "/v1/test", nil, CallOpts{})

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError, got %T", err)
		}
		if transportErr.Kind != TransportStatus {
			t.Errorf("expected status kind, got %s", transportErr.Kind)
		}
		if transportErr.Detail != "database unavailable" {
			t.Errorf("unexpected detail: %q", transportErr.Detail)
		}
	})

	t.Run("Business Failure", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(
			tu.EnvelopeResponse(http.StatusOK, false, nil, "itinerary limit reached"), nil)
		pipeline, _, _ := newTestPipeline(t, transport)

		_, err := pipeline.Do(context.Background(), http.MethodGet, "/v1/test", nil, CallOpts{})

		var bizErr *BusinessError
		if !errors.As(err, &bizErr) {
			t.Fatalf("expected BusinessError, got %T", err)
		}
		if bizErr.Message != "itinerary limit reached" {
			t.Errorf("expected verbatim message, got %q", bizErr.Message)
		}
		if !errors.Is(err, shared.ErrRequestRejected) {
			t.Error("expected error to unwrap to ErrRequestRejected")
		}
	})

	t.Run("Unencodable Payload", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.EnvelopeResponse(http.StatusOK, true, nil, ""), nil)
		pipeline, _, _ := newTestPipeline(t, transport)

		_, err := pipeline.Do(context.Background(), http.MethodPost, "/v1/test", func() {}, CallOpts{})
		if err == nil {
			t.Fatal("expected error for unencodable payload")
		}
		if !strings.Contains(err.Error(), "failed to encode request body") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestPipelineBusyIndicator(t *testing.T) {
	t.Run("LongRunning Signals Transitions", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.EnvelopeResponse(http.StatusOK, true, nil, ""), nil)
		pipeline, _, notifier := newTestPipeline(t, transport)

		if _, err := pipeline.Do(context.Background(), http.MethodPost, "/v1/generate", nil, CallOpts{LongRunning: true}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(notifier.busy) != 2 || !notifier.busy[0] || notifier.busy[1] {
			t.Errorf("expected busy transitions [true false], got %v", notifier.busy)
		}
		if pipeline.BusyCount() != 0 {
			t.Errorf("expected busy count back at zero, got %d", pipeline.BusyCount())
		}
	})

	t.Run("Failure Still Releases Busy", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
		pipeline, _, notifier := newTestPipeline(t, transport)

		_, err := pipeline.Do(context.Background(), http.MethodPost, "/v1/generate", nil, CallOpts{LongRunning: true})
		if err == nil {
			t.Fatal("expected error")
		}

		if pipeline.BusyCount() != 0 {
			t.Errorf("expected busy count back at zero, got %d", pipeline.BusyCount())
		}
		if len(notifier.busy) != 2 {
			t.Errorf("expected both busy transitions, got %v", notifier.busy)
		}
	})

	t.Run("Short Calls Never Signal", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.EnvelopeResponse(http.StatusOK, true, nil, ""), nil)
		pipeline, _, notifier := newTestPipeline(t, transport)

		if _, err := pipeline.Do(context.Background(), http.MethodGet, "/v1/test", nil, CallOpts{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(notifier.busy) != 0 {
			t.Errorf("expected no busy transitions, got %v", notifier.busy)
		}
	})
}

func TestPipelineDownload(t *testing.T) {
	t.Run("Returns Raw Bytes", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.RawResponse(http.StatusOK, "# Day 1\nArrive in Kyoto"), nil)
		pipeline, _, _ := newTestPipeline(t, transport)

		data, err := pipeline.Download(context.Background(), "/v1/itinerary/1/export?format=markdown")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != "# Day 1\nArrive in Kyoto" {
			t.Errorf("unexpected payload: %q", string(data))
		}
	})

	t.Run("Unauthorized Destroys Session", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.RawResponse(http.StatusUnauthorized, ""), nil)
		pipeline, creds, notifier := newTestPipeline(t, transport)

		if err := creds.Persist("stale-token"); err != nil {
			t.Fatalf("failed to persist token: %v", err)
		}

		if _, err := pipeline.Download(context.Background(), "/v1/itinerary/1/export?format=pdf"); err == nil {
			t.Fatal("expected error for 401")
		}
		if creds.Current().Token != "" {
			t.Error("expected credentials cleared")
		}
		if notifier.redirects != 1 {
			t.Errorf("expected one redirect, got %d", notifier.redirects)
		}
	})
}

func TestPipelineUpload(t *testing.T) {
	t.Run("Multipart Round Trip", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(
			tu.EnvelopeResponse(http.StatusOK, true, map[string]string{"avatar": "/static/a.png"}, ""), nil)
		pipeline, _, notifier := newTestPipeline(t, transport)

		env, err := pipeline.Upload(context.Background(), "/v1/user/avatar", "file", "a.png", []byte{0x89, 0x50})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !env.Success {
			t.Error("expected success envelope")
		}
		if len(notifier.busy) != 2 {
			t.Errorf("expected uploads to count as long-running, got %v", notifier.busy)
		}
	})
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"Envelope Details Field", `{"success": false, "message": "bad", "details": "days out of range"}`, "days out of range"},
		{"Envelope Message Fallback", `{"success": false, "message": "bad request"}`, "bad request"},
		{"Validation Array", `{"detail": [{"msg": "field required"}]}`, "field required"},
		{"Empty Body", ``, ""},
		{"Unrecognized Shape", `[1, 2, 3]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDetail([]byte(tt.body)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
