package shared

import (
	"context"

	"github.com/google/uuid"
)

// AuditRecord captures one business action for the audit trail
type AuditRecord struct {
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	OldValues  string     `json:"old_values,omitempty"`
	NewValues  string     `json:"new_values,omitempty"`
}

// AuditSink receives audit records fire-and-forget: implementations must
// never propagate their own failures to the originating operation.
type AuditSink interface {
	Record(ctx context.Context, record AuditRecord)
}

// NoOpAuditSink discards audit records
type NoOpAuditSink struct{}

// Record discards the record
func (NoOpAuditSink) Record(context.Context, AuditRecord) {}
