package services

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/shared"
	tu "github.com/desertthunder/wayfarer/internal/testing"
)

func newTestAPI(t *testing.T, transport http.RoundTripper) *API {
	t.Helper()

	client := NewClient("http://example.com", &http.Client{Transport: transport}, 0)
	creds := NewCredentialStore(filepath.Join(t.TempDir(), "token"), nil)
	return NewAPI(NewPipeline(client, creds, nil, nil))
}

func TestListParamsQuery(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
		want   string
	}{
		{"Empty", ListParams{}, ""},
		{"Page Only", ListParams{Page: 2}, "?page=2"},
		{"Full", ListParams{Page: 1, PageSize: 20, Status: models.StatusCompleted, Destination: "Kyoto"},
			"?destination=Kyoto&page=1&page_size=20&status=completed"},
		{"Zero Values Omitted", ListParams{Page: 0, PageSize: 0}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.query(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidExportFormat(t *testing.T) {
	for _, format := range ExportFormats {
		if !ValidExportFormat(format) {
			t.Errorf("expected %q to be valid", format)
		}
	}
	for _, format := range []string{"", "json", "docx"} {
		if ValidExportFormat(format) {
			t.Errorf("expected %q to be invalid", format)
		}
	}
}

func TestItineraryAPI(t *testing.T) {
	t.Run("Generate Decodes Provisional Record", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.EnvelopeResponse(http.StatusOK, true, map[string]any{
			"id":          42,
			"title":       "Kyoto in 5 days",
			"destination": "Kyoto",
			"days":        5,
			"status":      "pending",
			"progress":    0,
		}, "generation started"), nil)
		api := newTestAPI(t, transport)

		itinerary, err := api.Itinerary.Generate(context.Background(), models.GenerationRequest{
			Destination: "Kyoto",
			Days:        5,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if itinerary.ID != 42 || itinerary.Status != models.StatusPending || itinerary.Progress != 0 {
			t.Errorf("unexpected provisional record: %+v", itinerary)
		}
	})

	t.Run("Progress Decodes Payload", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.EnvelopeResponse(http.StatusOK, true, map[string]any{
			"itinerary_id": 42,
			"progress":     55,
			"status":       "generating",
			"message":      "writing day 3",
		}, ""), nil)
		api := newTestAPI(t, transport)

		progress, err := api.Itinerary.Progress(context.Background(), 42)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if progress.ItineraryID != 42 || progress.Progress != 55 || progress.Status != models.StatusGenerating {
			t.Errorf("unexpected progress: %+v", progress)
		}
	})

	t.Run("List Decodes Page", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.EnvelopeResponse(http.StatusOK, true, map[string]any{
			"items": []map[string]any{
				{"id": 2, "title": "Lisbon", "status": "completed", "progress": 100},
				{"id": 1, "title": "Kyoto", "status": "generating", "progress": 40},
			},
			"total":     2,
			"page":      1,
			"page_size": 20,
			"pages":     1,
		}, ""), nil)
		api := newTestAPI(t, transport)

		page, err := api.Itinerary.List(context.Background(), ListParams{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(page.Items) != 2 || page.Total != 2 {
			t.Errorf("unexpected page: %+v", page)
		}
		if page.Items[0].ID != 2 {
			t.Error("expected server order preserved")
		}
	})

	t.Run("Mismatched Payload Is Malformed", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(
			tu.EnvelopeResponse(http.StatusOK, true, "a string, not an object", ""), nil)
		api := newTestAPI(t, transport)

		_, err := api.Itinerary.Detail(context.Background(), 1)

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError, got %T", err)
		}
		if transportErr.Kind != TransportMalformed {
			t.Errorf("expected malformed kind, got %s", transportErr.Kind)
		}
	})

	t.Run("Export Rejects Unknown Format Locally", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(nil, errors.New("must not be called"))
		api := newTestAPI(t, transport)

		_, err := api.Itinerary.Export(context.Background(), 1, "docx")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Export Downloads Raw Payload", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.RawResponse(http.StatusOK, "%PDF-1.4"), nil)
		api := newTestAPI(t, transport)

		data, err := api.Itinerary.Export(context.Background(), 1, "pdf")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != "%PDF-1.4" {
			t.Errorf("unexpected payload: %q", string(data))
		}
	})
}

func TestInitSession(t *testing.T) {
	t.Run("Without Token", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(nil, errors.New("must not be called"))
		client := NewClient("http://example.com", &http.Client{Transport: transport}, 0)
		creds := NewCredentialStore(filepath.Join(t.TempDir(), "token"), nil)
		api := NewAPI(NewPipeline(client, creds, nil, nil))

		session, err := InitSession(context.Background(), api, creds)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session.Authenticated() {
			t.Error("expected unauthenticated session")
		}
	})

	t.Run("With Token Resolves Principal", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(tu.EnvelopeResponse(http.StatusOK, true, map[string]any{
			"id":       1,
			"username": "mara",
			"email":    "mara@example.com",
			"role":     "user",
		}, ""), nil)
		client := NewClient("http://example.com", &http.Client{Transport: transport}, 0)
		creds := NewCredentialStore(filepath.Join(t.TempDir(), "token"), nil)
		api := NewAPI(NewPipeline(client, creds, nil, nil))

		if err := creds.Persist("abc"); err != nil {
			t.Fatalf("persist failed: %v", err)
		}

		session, err := InitSession(context.Background(), api, creds)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !session.Authenticated() {
			t.Fatal("expected authenticated session")
		}
		if session.Principal.Username != "mara" {
			t.Errorf("unexpected principal: %+v", session.Principal)
		}
	})

	t.Run("Stale Token Collapses To Unauthenticated", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(
			tu.EnvelopeResponse(http.StatusUnauthorized, false, nil, "token expired"), nil)
		client := NewClient("http://example.com", &http.Client{Transport: transport}, 0)
		creds := NewCredentialStore(filepath.Join(t.TempDir(), "token"), nil)
		api := NewAPI(NewPipeline(client, creds, nil, nil))

		if err := creds.Persist("stale"); err != nil {
			t.Fatalf("persist failed: %v", err)
		}

		session, err := InitSession(context.Background(), api, creds)
		if err == nil {
			t.Fatal("expected error for stale token")
		}
		if session.Authenticated() || session.Token != "" {
			t.Error("expected session collapsed to unauthenticated")
		}
	})
}
