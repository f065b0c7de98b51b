// Package clock supplies the time source used for record creation times and
// token issue times.
package clock

import (
	"sync"
	"time"
)

// Clock allows injecting time in services.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now in UTC.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always reports t.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Stepper reports start on the first call and moves step forward on every
// call after that, so records created in sequence get distinct times.
type Stepper struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func NewStepper(start time.Time, step time.Duration) *Stepper {
	return &Stepper{next: start.UTC(), step: step}
}

func (s *Stepper) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.next
	s.next = s.next.Add(s.step)
	return now
}
