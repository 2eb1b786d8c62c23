package studio

import (
	"context"
	"time"
)

// Export is one saved QR file.
type Export struct {
	ID         uint      `json:"id"`
	Data       string    `json:"data"`
	Format     string    `json:"format"`
	Path       string    `json:"path"`
	ErrorLevel string    `json:"error_level"`
	BoxSize    int       `json:"box_size"`
	Border     int       `json:"border"`
	FillColor  string    `json:"fill_color"`
	Background string    `json:"background"`
	Size       int       `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryRepository persists exports
type HistoryRepository interface {
	Record(ctx context.Context, export *Export) error
	// Recent returns up to limit exports, newest first.
	Recent(ctx context.Context, limit int) ([]Export, error)
}

func newExport(spec QRSpec, format, path string, size int) *Export {
	return &Export{
		Data:       spec.Data,
		Format:     format,
		Path:       path,
		ErrorLevel: string(spec.ErrorLevel),
		BoxSize:    spec.BoxSize,
		Border:     spec.Border,
		FillColor:  spec.fillColor(),
		Background: spec.background().Name(),
		Size:       size,
		CreatedAt:  time.Now(),
	}
}
