package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
)

// Filename returns the report filename for a catalog name.
// Names that slugify to nothing fall back to "catalog".
func Filename(catalogName string) string {
	base := slug.Make(catalogName)
	if base == "" {
		base = "catalog"
	}
	return base + "-validation.json"
}

// WriteFile writes the JSON report into outDir, creating it if needed,
// and returns the path written.
func WriteFile(r Report, outDir string) (string, error) {
	data, err := Encode(r)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	path := filepath.Join(outDir, Filename(r.Summary.CatalogName))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	slog.Info("wrote report", "file", path, "verdict", r.Verdict)
	return path, nil
}
