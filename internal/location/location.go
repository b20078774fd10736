package location

import (
	"time"

	locationDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/location"
)

type Location struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Region    string    `json:"region"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Location) IsActiveLocation() bool {
	return l.IsActive
}

type Beat struct {
	ID                int64     `json:"id"`
	LocationID        int64     `json:"location_id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	RequiredHeadcount int       `json:"required_headcount"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

type LocationResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Region  string `json:"region"`
}

func (l *Location) ToResponse() LocationResponse {
	return LocationResponse{
		ID:      l.ID,
		Name:    l.Name,
		Address: l.Address,
		Region:  l.Region,
	}
}

func FromDataModel(l *locationDatamodel.Location) *Location {
	return &Location{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Region:    l.Region,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func BeatFromDataModel(b *locationDatamodel.Beat) *Beat {
	return &Beat{
		ID:                b.ID,
		LocationID:        b.LocationID,
		Code:              b.Code,
		Name:              b.Name,
		RequiredHeadcount: b.RequiredHeadcount,
		IsActive:          b.IsActive,
		CreatedAt:         b.CreatedAt,
	}
}
