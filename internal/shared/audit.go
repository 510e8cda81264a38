package shared

import (
	"context"
	"time"
)

// AuditLog describes one recorded mutation.
type AuditLog struct {
	ID       string
	Action   string
	Entity   string
	EntityID string
	Detail   string
	At       time.Time
}

// AuditPort is implemented by the audit trail writer. Recording is
// best-effort: managers ignore its error after the mutation succeeded.
type AuditPort interface {
	Record(ctx context.Context, log AuditLog) error
}
