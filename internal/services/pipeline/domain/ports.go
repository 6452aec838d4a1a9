// Package domain defines the contracts between the processing framework and the tasks it drives
package domain

import (
	"context"

	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
)

// Input is a read-only data slot; the framework decides what Get returns at each call
type Input[T any] interface {
	Get() T
}

// Output is a data slot a task posts into and the framework reads back, merged, at terminate
type Output[T any] interface {
	Post(T)
	Get() T
}

// Slots are the typed data handles a task is bound to
type Slots struct {
	Events  Input[*flowevent.Event] // slot 0: current event, may be nil
	Weights Input[*histo.List]      // slot 1: only for tasks declaring two inputs
	Output  Output[*histo.List]     // output slot 1
}

// Task is the lifecycle the framework drives: Bind, CreateOutputs once, Exec per event on a
// processing unit, and Terminate once on a separate client instance after merging
type Task interface {
	Name() string
	NumInputs() int
	Bind(Slots)
	CreateOutputs(ctx context.Context)
	Exec(ctx context.Context)
	Terminate(ctx context.Context)
}

// TaskFactory builds one task instance per processing unit and one for terminate
type TaskFactory func() Task

// Runner is the port other modules use to run the framework
type Runner interface {
	Run(ctx context.Context, events <-chan *flowevent.Event, weights *histo.List, factory TaskFactory) (RunResult, error)
	Finalize(ctx context.Context, merged *histo.List, factory TaskFactory) (*histo.List, error)
}
