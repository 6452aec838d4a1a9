package domain

import (
	"time"

	"flowqfit/internal/core/histo"
)

// UnitStats describes one processing unit's share of a run
type UnitStats struct {
	Unit    int           `json:"unit"`
	Events  int64         `json:"events"`
	Nil     int64         `json:"nil_events"`
	Posts   int64         `json:"posts"`
	Elapsed time.Duration `json:"elapsed"`
}

// RunResult is what a finished run hands back
type RunResult struct {
	Merged  *histo.List   `json:"-"`
	Units   []UnitStats   `json:"units"`
	Events  int64         `json:"events"`
	Nil     int64         `json:"nil_events"`
	Elapsed time.Duration `json:"elapsed"`
}
