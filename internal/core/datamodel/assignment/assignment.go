package assignment

import (
	"time"
)

// GuardAssignment binds one operator to a beat/location/supervisor/shift for
// a time range. A partial unique index on (operator_id) WHERE status='ACTIVE'
// backs the single-active-assignment invariant at the storage layer.
type GuardAssignment struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	OperatorID      int64      `json:"operator_id" gorm:"column:operator_id;not null;index"`
	BeatID          int64      `json:"beat_id" gorm:"column:beat_id;not null"`
	LocationID      int64      `json:"location_id" gorm:"column:location_id;not null"`
	SupervisorID    int64      `json:"supervisor_id" gorm:"column:supervisor_id;not null"`
	ShiftType       string     `json:"shift_type" gorm:"column:shift_type;not null"`
	AssignmentType  string     `json:"assignment_type" gorm:"column:assignment_type;not null"`
	Status          string     `json:"status" gorm:"default:PENDING;index:idx_assignments_status_created,priority:1"`
	StartDate       time.Time  `json:"start_date" gorm:"column:start_date;not null"`
	EndDate         *time.Time `json:"end_date,omitempty" gorm:"column:end_date"`
	AssignedByID    int64      `json:"assigned_by_id" gorm:"column:assigned_by_id;not null"`
	AssignedByRole  string     `json:"assigned_by_role" gorm:"column:assigned_by_role;not null"`
	AssignedByName  string     `json:"assigned_by_name" gorm:"column:assigned_by_name;not null"`
	ApprovedBy      *int64     `json:"approved_by,omitempty" gorm:"column:approved_by"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty" gorm:"column:approved_at"`
	RejectionReason *string    `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at;default:now();index:idx_assignments_status_created,priority:2"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (GuardAssignment) TableName() string {
	return "guard_assignments"
}
