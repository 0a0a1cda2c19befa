package events

import (
	"context"
	"log/slog"
	"sync"
)

// Handler receives committed domain events. A handler error is reported to the
// log and does not affect the already-committed unit of work.
type Handler interface {
	Handle(ctx context.Context, event DomainEvent) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event DomainEvent) error

func (f HandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return f(ctx, event)
}

// Registry maps event-type names to subscribers. Dispatch is synchronous and
// runs handlers in registration order.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewRegistry creates an empty subscriber registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for the named event type.
func (r *Registry) Subscribe(eventType string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], h)
}

// Dispatch delivers the given events to their subscribers. It is called by the
// coordinator strictly after commit; post-commit side effects are best-effort,
// so a failing handler is logged and the remaining handlers still run.
func (r *Registry) Dispatch(ctx context.Context, evts []DomainEvent) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, evt := range evts {
		for _, h := range r.handlers[evt.EventType()] {
			if err := h.Handle(ctx, evt); err != nil {
				r.logger.Error("event handler failed",
					slog.String("event_type", evt.EventType()),
					slog.String("entity_id", evt.EntityID()),
					slog.String("error", err.Error()))
			}
		}
	}
}
