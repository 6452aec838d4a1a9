// Package domain defines the run orchestration ports and types
package domain

import "context"

// RunPort executes runs
type RunPort interface {
	Execute(ctx context.Context, req Request) (Outcome, error)
	Finalize(ctx context.Context, req FinalizeRequest) (Outcome, error)
}
