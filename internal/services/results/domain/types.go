package domain

import (
	"encoding/json"
	"time"

	"flowqfit/internal/core/qdist"

	"github.com/google/uuid"
)

// Run is one finished pipeline run
type Run struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	StartedAt time.Time       `json:"started_at"`
	Elapsed   time.Duration   `json:"elapsed_ns"`
	Units     int             `json:"units"`
	Events    int64           `json:"events"`
	NilEvents int64           `json:"nil_events"`
	Config    json.RawMessage `json:"config,omitempty"`
	Summary   qdist.Results   `json:"summary"`
}

// Bin is one stored histogram cell
type Bin struct {
	X       int     `json:"x"`
	Y       int     `json:"y,omitempty"`
	Center  float64 `json:"center"`
	Content float64 `json:"content"`
	Error   float64 `json:"error"`
}

// Histogram is one histogram read back from the columnar store
type Histogram struct {
	RunID uuid.UUID `json:"run_id"`
	Name  string    `json:"name"`
	Kind  string    `json:"kind"`
	Bins  []Bin     `json:"bins"`
}
