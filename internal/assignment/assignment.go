package assignment

import (
	"time"

	assignmentDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/assignment"
	"github.com/guardforce/workforce-management/internal/core/roles"
)

const (
	StatusPending  = "PENDING"
	StatusActive   = "ACTIVE"
	StatusRejected = "REJECTED"
	StatusEnded    = "ENDED"

	ShiftDay      = "DAY"
	ShiftNight    = "NIGHT"
	ShiftRotating = "ROTATING"

	TypePermanent = "PERMANENT"
	TypeTemporary = "TEMPORARY"
	TypeRelief    = "RELIEF"
)

// AssignedBy is a point-in-time snapshot of who filed the assignment, not a
// live reference; renaming or demoting the person later does not rewrite it.
type AssignedBy struct {
	PersonID int64      `json:"person_id"`
	Role     roles.Role `json:"role"`
	Name     string     `json:"name"`
}

type Assignment struct {
	ID              int64      `json:"id"`
	OperatorID      int64      `json:"operator_id"`
	BeatID          int64      `json:"beat_id"`
	LocationID      int64      `json:"location_id"`
	SupervisorID    int64      `json:"supervisor_id"`
	ShiftType       string     `json:"shift_type"`
	AssignmentType  string     `json:"assignment_type"`
	Status          string     `json:"status"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	AssignedBy      AssignedBy `json:"assigned_by"`
	ApprovedBy      *int64     `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (a *Assignment) IsActive() bool {
	return a.Status == StatusActive
}

func (a *Assignment) IsTerminal() bool {
	return a.Status == StatusRejected || a.Status == StatusEnded
}

func (a *Assignment) CanBeApproved() bool {
	return a.Status == StatusPending
}

func (a *Assignment) CanBeRejected() bool {
	return a.Status == StatusPending
}

func (a *Assignment) CanBeEnded() bool {
	return a.Status == StatusActive
}

// Approve transitions PENDING to ACTIVE, stamping the approver. Invariant
// enforcement against other ACTIVE rows for the operator happens in the
// service, under the per-operator lock.
func (a *Assignment) Approve(approverID int64) {
	now := time.Now()
	a.Status = StatusActive
	a.ApprovedBy = &approverID
	a.ApprovedAt = &now
	a.UpdatedAt = now
}

func (a *Assignment) Reject(approverID int64, reason string) {
	now := time.Now()
	a.Status = StatusRejected
	a.ApprovedBy = &approverID
	a.ApprovedAt = &now
	a.RejectionReason = &reason
	a.UpdatedAt = now
}

func (a *Assignment) End() {
	now := time.Now()
	a.Status = StatusEnded
	a.EndDate = &now
	a.UpdatedAt = now
}

func ValidShiftType(s string) bool {
	return s == ShiftDay || s == ShiftNight || s == ShiftRotating
}

func ValidAssignmentType(s string) bool {
	return s == TypePermanent || s == TypeTemporary || s == TypeRelief
}

func ToDataModel(a *Assignment) *assignmentDatamodel.GuardAssignment {
	return &assignmentDatamodel.GuardAssignment{
		ID:              a.ID,
		OperatorID:      a.OperatorID,
		BeatID:          a.BeatID,
		LocationID:      a.LocationID,
		SupervisorID:    a.SupervisorID,
		ShiftType:       a.ShiftType,
		AssignmentType:  a.AssignmentType,
		Status:          a.Status,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
		AssignedByID:    a.AssignedBy.PersonID,
		AssignedByRole:  string(a.AssignedBy.Role),
		AssignedByName:  a.AssignedBy.Name,
		ApprovedBy:      a.ApprovedBy,
		ApprovedAt:      a.ApprovedAt,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func FromDataModel(m *assignmentDatamodel.GuardAssignment) *Assignment {
	return &Assignment{
		ID:             m.ID,
		OperatorID:     m.OperatorID,
		BeatID:         m.BeatID,
		LocationID:     m.LocationID,
		SupervisorID:   m.SupervisorID,
		ShiftType:      m.ShiftType,
		AssignmentType: m.AssignmentType,
		Status:         m.Status,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		AssignedBy: AssignedBy{
			PersonID: m.AssignedByID,
			Role:     roles.Role(m.AssignedByRole),
			Name:     m.AssignedByName,
		},
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*assignmentDatamodel.GuardAssignment) []*Assignment {
	result := make([]*Assignment, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
