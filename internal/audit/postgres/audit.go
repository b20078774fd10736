package postgres

import (
	auditDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

// AuditRepository is append-only; events are never updated or deleted.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(event *auditDatamodel.AuditEvent) error {
	return r.db.Create(event).Error
}
