package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/core/events"
	"github.com/google/uuid"
)

// ErrNoUnitOfWork indicates a mutating store call made outside an active unit
// of work. State is mutated only from inside the coordinator's boundary.
var ErrNoUnitOfWork = errors.New("mutation attempted outside an active unit of work")

type recorderCtxKey struct{}

// changeRecorder is the per-unit-of-work buffer for audit log entries and
// domain events. It is created by the coordinator for each Run call and never
// shared between concurrent units of work.
type changeRecorder struct {
	unitOfWorkID string
	actor        string
	logEntries   []domain.AuditLogEntry
	events       []events.DomainEvent
}

func newChangeRecorder(actor string) *changeRecorder {
	return &changeRecorder{
		unitOfWorkID: uuid.NewString(),
		actor:        actor,
	}
}

// withRecorder binds the recorder to the context handed to the work closure.
func withRecorder(ctx context.Context, rec *changeRecorder) context.Context {
	return context.WithValue(ctx, recorderCtxKey{}, rec)
}

// recorderFromCtx returns the active recorder, or nil outside a unit of work.
func recorderFromCtx(ctx context.Context) *changeRecorder {
	rec, _ := ctx.Value(recorderCtxKey{}).(*changeRecorder)
	return rec
}

// snapshot marshals a record for an audit log entry. A nil input stays nil so
// CREATE entries carry no old value and DELETE entries no new value.
func snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		// Domain structs are plain data; this only trips on programmer error.
		return json.RawMessage(`{"marshalError":"` + err.Error() + `"}`)
	}
	return raw
}

// recordChange buffers one audit log entry for a touched record.
func (r *changeRecorder) recordChange(organizationID, entityName, recordID string, op domain.AuditOperation, oldValue, newValue any) {
	r.logEntries = append(r.logEntries, domain.AuditLogEntry{
		LogID:          uuid.NewString(),
		OrganizationID: organizationID,
		EntityName:     entityName,
		RecordID:       recordID,
		Operation:      op,
		OldValues:      snapshot(oldValue),
		NewValues:      snapshot(newValue),
		Actor:          r.actor,
		UnitOfWorkID:   r.unitOfWorkID,
		ChangedAt:      time.Now().UTC(),
	})
}

// raiseEvent buffers a domain event for post-commit dispatch.
func (r *changeRecorder) raiseEvent(evt events.DomainEvent) {
	r.events = append(r.events, evt)
}
