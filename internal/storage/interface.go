package storage

import (
	"context"
	"errors"

	"github.com/d4zhu/portfolio/internal/models"
)

// Common errors
var (
	ErrNotFound = errors.New("not found")
)

// Store persists imported line records so the site can be served without
// re-reading the CSV.
type Store interface {
	// SaveRecords replaces every record stored under source.
	SaveRecords(ctx context.Context, source string, records []models.LineRecord) error
	// LoadRecords returns the records of source in their original order.
	LoadRecords(ctx context.Context, source string) ([]models.LineRecord, error)
	// Sources lists the imported sources with their row counts.
	Sources(ctx context.Context) ([]SourceInfo, error)

	Close() error
}

// SourceInfo describes one imported CSV.
type SourceInfo struct {
	Name  string `db:"source"`
	Lines int    `db:"lines"`
}
