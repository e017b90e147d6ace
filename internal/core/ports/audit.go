package ports

import (
	"context"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditRecorder accepts audit events for asynchronous persistence.
// Record must not block the caller.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}
