package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stockyard-erp/stockyard/internal/platform/tabular"
	"github.com/stockyard-erp/stockyard/internal/shared"
)

// TableAudit is the persistent audit trail table.
var TableAudit = tabular.Table{
	File:   "audit.csv",
	Header: []string{"entry_id", "action", "entity", "entity_id", "detail", "occurred_at"},
}

// Trail appends audit entries to the audit table.
type Trail struct {
	store *tabular.Store
}

// NewTrail returns a Trail backed by store.
func NewTrail(store *tabular.Store) *Trail {
	return &Trail{store: store}
}

// Record persists one audit entry. Each entry gets a fresh UUID so
// rows stay unique even when the same action repeats within a second.
func (t *Trail) Record(ctx context.Context, log shared.AuditLog) error {
	if t == nil {
		return errors.New("audit trail not initialised")
	}
	if log.Action == "" || log.Entity == "" || log.EntityID == "" {
		return errors.New("audit entry requires action/entity/entity_id")
	}
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	at := log.At
	if at.IsZero() {
		at = time.Now()
	}
	row := []string{
		log.ID,
		log.Action,
		log.Entity,
		log.EntityID,
		log.Detail,
		at.Format(time.RFC3339),
	}
	return t.store.Append(TableAudit, row)
}
