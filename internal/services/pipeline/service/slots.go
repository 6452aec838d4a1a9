package service

import (
	"sync"
	"sync/atomic"

	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
)

// OutputSlot is a mutex-guarded output handle that counts posts
type OutputSlot struct {
	mu    sync.Mutex
	v     *histo.List
	posts atomic.Int64
}

// NewOutputSlot returns a slot already holding l, without counting it as a post
func NewOutputSlot(l *histo.List) *OutputSlot { return &OutputSlot{v: l} }

// Post replaces the slot content
func (s *OutputSlot) Post(l *histo.List) {
	s.mu.Lock()
	s.v = l
	s.mu.Unlock()
	s.posts.Add(1)
}

// Get returns the current content
func (s *OutputSlot) Get() *histo.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}

// Posts returns how many times Post was called
func (s *OutputSlot) Posts() int64 { return s.posts.Load() }

// Value is a read-only input slot with a fixed value
type Value[T any] struct{ v T }

// NewValue returns a slot always yielding v
func NewValue[T any](v T) Value[T] { return Value[T]{v: v} }

// Get satisfies domain.Input
func (s Value[T]) Get() T { return s.v }

// eventSlot holds the event of the current step; owned by one unit goroutine
type eventSlot struct{ ev *flowevent.Event }

func (s *eventSlot) set(ev *flowevent.Event) { s.ev = ev }

func (s *eventSlot) Get() *flowevent.Event { return s.ev }
