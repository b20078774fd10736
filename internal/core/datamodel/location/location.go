package location

import (
	"time"
)

// Location is a physical site guarded by the company.
type Location struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address"`
	Region    string    `json:"region"`
	IsActive  bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Location) TableName() string {
	return "locations"
}

// Beat is a patrol sub-unit within exactly one location.
type Beat struct {
	ID                int64     `json:"id" gorm:"primaryKey"`
	LocationID        int64     `json:"location_id" gorm:"column:location_id;not null;index"`
	Code              string    `json:"code" gorm:"not null"`
	Name              string    `json:"name" gorm:"not null"`
	RequiredHeadcount int       `json:"required_headcount" gorm:"column:required_headcount;default:1"`
	IsActive          bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Beat) TableName() string {
	return "beats"
}
