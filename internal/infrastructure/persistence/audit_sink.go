package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/kopkar/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditLog is one persisted audit trail row
type AuditLog struct {
	shared.BaseEntity
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"type:varchar(50);not null;index"`
	EntityType string     `gorm:"type:varchar(50);not null;index:idx_audit_entity"`
	EntityID   string     `gorm:"type:varchar(50);not null;index:idx_audit_entity"`
	OldValues  string     `gorm:"type:text"`
	NewValues  string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

// GormAuditSink persists audit records. Write failures are logged and
// swallowed; the audit trail never fails a business operation.
type GormAuditSink struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormAuditSink creates a new GormAuditSink
func NewGormAuditSink(db *gorm.DB, logger *zap.Logger) *GormAuditSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormAuditSink{db: db, logger: logger}
}

// Record persists the audit record
func (s *GormAuditSink) Record(ctx context.Context, record shared.AuditRecord) {
	row := AuditLog{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     record.UserID,
		Action:     record.Action,
		EntityType: record.EntityType,
		EntityID:   record.EntityID,
		OldValues:  record.OldValues,
		NewValues:  record.NewValues,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.logger.Warn("failed to write audit log",
			zap.String("action", record.Action),
			zap.String("entity_type", record.EntityType),
			zap.String("entity_id", record.EntityID),
			zap.Error(err),
		)
	}
}

var _ shared.AuditSink = (*GormAuditSink)(nil)
