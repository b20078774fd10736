package postgres

import (
	"github.com/guardforce/workforce-management/internal"
	locationDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/location"
	"github.com/guardforce/workforce-management/internal/location"
	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) location.RepositoryAPI {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) GetAll() ([]*locationDatamodel.Location, error) {
	var locations []*locationDatamodel.Location
	err := r.db.Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *LocationRepository) GetByID(id int64) (*locationDatamodel.Location, error) {
	var loc locationDatamodel.Location
	err := r.db.Where("id = ?", id).First(&loc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("location not found", internal.ErrCodeLocationNotFound)
		}
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) GetBeatByID(id int64) (*locationDatamodel.Beat, error) {
	var beat locationDatamodel.Beat
	err := r.db.Where("id = ?", id).First(&beat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("beat not found", internal.ErrCodeBeatNotFound)
		}
		return nil, err
	}
	return &beat, nil
}

func (r *LocationRepository) GetBeatsByLocation(locationID int64) ([]*locationDatamodel.Beat, error) {
	var beats []*locationDatamodel.Beat
	err := r.db.Where("location_id = ?", locationID).Order("code ASC").Find(&beats).Error
	return beats, err
}

func (r *LocationRepository) Create(loc *locationDatamodel.Location) error {
	return r.db.Create(loc).Error
}

func (r *LocationRepository) CreateBeat(beat *locationDatamodel.Beat) error {
	return r.db.Create(beat).Error
}
