package events

import (
	"context"
	"errors"
	"fmt"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/metrics"
)

// Publisher delivers slot events to one sink. Delivery is best-effort: callers
// log failures but never undo the state change that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event domain.SlotEvent) error
}

type sink struct {
	name      string
	publisher Publisher
}

// Fanout delivers every event to all registered sinks.
type Fanout struct {
	sinks []sink
}

func NewFanout() *Fanout {
	return &Fanout{}
}

// Add registers p under name. Not safe to call concurrently with Publish.
func (f *Fanout) Add(name string, p Publisher) *Fanout {
	f.sinks = append(f.sinks, sink{name: name, publisher: p})
	return f
}

func (f *Fanout) Publish(ctx context.Context, event domain.SlotEvent) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.publisher.Publish(ctx, event); err != nil {
			metrics.IncEventPublished(s.name, "error")
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			continue
		}
		metrics.IncEventPublished(s.name, "ok")
	}
	return errors.Join(errs...)
}
