// package formatter writes exported itinerary payloads and export manifests
// to disk.
package formatter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/shared"
)

// ExtensionFor maps an export format to its file extension.
func ExtensionFor(format string) string {
	switch format {
	case "markdown":
		return ".md"
	case "html":
		return ".html"
	case "pdf":
		return ".pdf"
	case "json":
		return ".json"
	default:
		return "." + format
	}
}

// WriteExportFile writes a server-rendered export payload under dir, named
// by itinerary id and format. Returns the written path.
func WriteExportFile(dir string, id int64, format string, data []byte) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("itinerary_%d%s", id, ExtensionFor(format)))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// WriteJSONExport writes a locally serialized itinerary detail as pretty
// JSON. Used for the json format, which the backend does not render.
func WriteJSONExport(detail *models.ItineraryDetail, dir string) (string, error) {
	data, err := shared.MarshalJSON(detail, true)
	if err != nil {
		return "", fmt.Errorf("failed to serialize itinerary: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("itinerary_%d.json", detail.Itinerary.ID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON export: %w", err)
	}
	return path, nil
}

// ManifestEntry records the outcome of one itinerary in a bulk export.
type ManifestEntry struct {
	ItineraryID int64  `json:"itinerary_id"`
	Title       string `json:"title,omitempty"`
	File        string `json:"file,omitempty"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// Manifest summarizes a bulk export run.
type Manifest struct {
	Format     string          `json:"format"`
	OutputDir  string          `json:"output_dir"`
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Entries    []ManifestEntry `json:"entries"`
}

// WriteManifest writes the bulk-export manifest as pretty JSON at path.
func WriteManifest(manifest *Manifest, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
