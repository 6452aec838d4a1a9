// Package domain defines the results ports and types
package domain

import (
	"context"

	"flowqfit/internal/core/histo"

	"github.com/google/uuid"
)

// WriterPort persists finished runs
type WriterPort interface {
	Save(ctx context.Context, run *Run, merged *histo.List) error
}

// QueryPort reads runs back
type QueryPort interface {
	Get(ctx context.Context, id uuid.UUID) (Run, error)
	List(ctx context.Context, limit int) ([]Run, error)
	Histogram(ctx context.Context, id uuid.UUID, name string) (Histogram, error)
}
