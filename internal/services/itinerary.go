package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/shared"
)

// ExportFormats lists the server-side export formats.
var ExportFormats = []string{"markdown", "html", "pdf"}

// ValidExportFormat reports whether format is one of [ExportFormats].
func ValidExportFormat(format string) bool {
	for _, f := range ExportFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ItineraryAPI covers generation, progress polling, detail, listing,
// deletion, and export.
type ItineraryAPI struct {
	pipeline *Pipeline
}

// ListParams filter and paginate the itinerary listing.
type ListParams struct {
	Page        int
	PageSize    int
	Status      models.Status
	Destination string
}

func (p ListParams) query() string {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Status != "" {
		values.Set("status", string(p.Status))
	}
	if p.Destination != "" {
		values.Set("destination", p.Destination)
	}
	if encoded := values.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

// Generate requests a new itinerary. The backend responds immediately with a
// provisional record (status pending, progress 0); generation continues
// server-side and is observed through [ItineraryAPI.Progress].
func (a *ItineraryAPI) Generate(ctx context.Context, req models.GenerationRequest) (*models.Itinerary, error) {
	env, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/itinerary/generate", req, CallOpts{LongRunning: true})
	if err != nil {
		return nil, err
	}

	itinerary, err := decode[models.Itinerary](env)
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// Progress fetches the generation progress for an itinerary.
func (a *ItineraryAPI) Progress(ctx context.Context, id int64) (*models.GenerationProgress, error) {
	path := fmt.Sprintf("/v1/itinerary/progress/%d", id)
	env, err := a.pipeline.Do(ctx, http.MethodGet, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	progress, err := decode[models.GenerationProgress](env)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Detail fetches the full itinerary and its daily records.
func (a *ItineraryAPI) Detail(ctx context.Context, id int64) (*models.ItineraryDetail, error) {
	path := fmt.Sprintf("/v1/itinerary/%d", id)
	env, err := a.pipeline.Do(ctx, http.MethodGet, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	detail, err := decode[models.ItineraryDetail](env)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// List fetches a page of the user's itineraries in server order.
func (a *ItineraryAPI) List(ctx context.Context, params ListParams) (*models.ItineraryPage, error) {
	env, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/itinerary/list"+params.query(), nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	page, err := decode[models.ItineraryPage](env)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Delete removes an itinerary.
func (a *ItineraryAPI) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/v1/itinerary/%d", id)
	_, err := a.pipeline.Do(ctx, http.MethodDelete, path, nil, CallOpts{})
	return err
}

// Export downloads a rendered itinerary in the given format.
func (a *ItineraryAPI) Export(ctx context.Context, id int64, format string) ([]byte, error) {
	if !ValidExportFormat(format) {
		return nil, fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, format)
	}

	path := fmt.Sprintf("/v1/itinerary/%d/export?format=%s", id, url.QueryEscape(format))
	return a.pipeline.Download(ctx, path)
}

// ValidateDestination checks whether the backend can resolve a destination.
func (a *ItineraryAPI) ValidateDestination(ctx context.Context, destination string) (*models.DestinationCheck, error) {
	path := "/v1/itinerary/validate?destination=" + url.QueryEscape(destination)
	env, err := a.pipeline.Do(ctx, http.MethodGet, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	check, err := decode[models.DestinationCheck](env)
	if err != nil {
		return nil, err
	}
	return &check, nil
}

// Templates lists generation templates, optionally filtered by type
// (overview or daily).
func (a *ItineraryAPI) Templates(ctx context.Context, templateType string) ([]models.Template, error) {
	path := "/v1/itinerary/templates"
	if templateType != "" {
		path += "?type=" + url.QueryEscape(templateType)
	}

	env, err := a.pipeline.Do(ctx, http.MethodGet, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}
	return decode[[]models.Template](env)
}

// Examples lists curated example generation requests for the prompt form.
func (a *ItineraryAPI) Examples(ctx context.Context) ([]models.GenerationRequest, error) {
	env, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/itinerary/examples", nil, CallOpts{})
	if err != nil {
		return nil, err
	}
	return decode[[]models.GenerationRequest](env)
}
