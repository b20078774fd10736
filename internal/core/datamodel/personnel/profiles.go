package personnel

import (
	"time"
)

// SupervisorProfile extends a person with supervisory hierarchy data. The
// GeneralSupervisorID link is optional in practice; resolver fallback handles
// records where it was never backfilled.
type SupervisorProfile struct {
	ID                  int64     `json:"id" gorm:"primaryKey"`
	PersonID            int64     `json:"person_id" gorm:"column:person_id;not null;index"`
	SupervisorType      string    `json:"supervisor_type" gorm:"column:supervisor_type;not null"`
	GeneralSupervisorID *int64    `json:"general_supervisor_id,omitempty" gorm:"column:general_supervisor_id;index"`
	LocationID          *int64    `json:"location_id,omitempty" gorm:"column:location_id"`
	ApprovalStatus      string    `json:"approval_status" gorm:"column:approval_status;default:PENDING"`
	CreatedAt           time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (SupervisorProfile) TableName() string {
	return "supervisor_profiles"
}

const (
	SupervisorTypeSupervisor = "SUPERVISOR"
	SupervisorTypeGeneral    = "GENERAL_SUPERVISOR"

	ApprovalStatusPending  = "PENDING"
	ApprovalStatusApproved = "APPROVED"
	ApprovalStatusRejected = "REJECTED"
)

// OperatorProfile extends a person with field-deployment data. SupervisorID
// and LocationID are a denormalized cache refreshed by the assignment engine
// after every transition; the assignment store is the source of truth.
type OperatorProfile struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	PersonID       int64     `json:"person_id" gorm:"column:person_id;not null;index"`
	EmployeeID     string    `json:"employee_id" gorm:"column:employee_id;uniqueIndex"`
	LocationID     *int64    `json:"location_id,omitempty" gorm:"column:location_id"`
	SupervisorID   *int64    `json:"supervisor_id,omitempty" gorm:"column:supervisor_id"`
	GuarantorName  *string   `json:"guarantor_name,omitempty" gorm:"column:guarantor_name"`
	GuarantorPhone *string   `json:"guarantor_phone,omitempty" gorm:"column:guarantor_phone"`
	ApprovalStatus string    `json:"approval_status" gorm:"column:approval_status;default:PENDING"`
	MonthlySalary  *int64    `json:"monthly_salary,omitempty" gorm:"column:monthly_salary"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (OperatorProfile) TableName() string {
	return "operator_profiles"
}
