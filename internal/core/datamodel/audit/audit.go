package audit

import (
	"time"
)

// AuditEvent is an append-only record of a state transition. The core writes
// these but never reads them back for decision-making.
type AuditEvent struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	ActorID    int64     `json:"actor_id" gorm:"column:actor_id;not null"`
	Action     string    `json:"action" gorm:"not null"`
	EntityType string    `json:"entity_type" gorm:"column:entity_type;not null"`
	EntityID   int64     `json:"entity_id" gorm:"column:entity_id;not null;index"`
	Metadata   string    `json:"metadata" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
