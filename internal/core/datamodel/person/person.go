package person

import (
	"time"
)

// Person represents a human identity in the company directory. Records are
// never hard-deleted; deactivation is a status change only.
type Person struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Phone        *string    `json:"phone,omitempty" gorm:"column:phone"`
	Name         string     `json:"name" gorm:"not null"`
	Role         string     `json:"role" gorm:"not null"`
	Status       string     `json:"status" gorm:"default:ACTIVE"`
	EmployeeID   string     `json:"employee_id" gorm:"column:employee_id;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"column:password_hash"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" gorm:"column:last_login_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Person) TableName() string {
	return "people"
}

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusPending  = "PENDING"
)
