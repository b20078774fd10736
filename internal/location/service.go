package location

import (
	"log/slog"

	locationDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/location"
)

type RepositoryAPI interface {
	GetAll() ([]*locationDatamodel.Location, error)
	GetByID(id int64) (*locationDatamodel.Location, error)
	GetBeatByID(id int64) (*locationDatamodel.Beat, error)
	GetBeatsByLocation(locationID int64) ([]*locationDatamodel.Beat, error)
	Create(loc *locationDatamodel.Location) error
	CreateBeat(beat *locationDatamodel.Beat) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetActiveLocations() ([]LocationResponse, error) {
	dataLocations, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get locations from repository", "error", err)
		return nil, err
	}

	var responses []LocationResponse
	for _, dataLocation := range dataLocations {
		domainLocation := FromDataModel(dataLocation)
		if domainLocation.IsActiveLocation() {
			responses = append(responses, domainLocation.ToResponse())
		}
	}

	return responses, nil
}

func (s *Service) GetBeatsForLocation(locationID int64) ([]*Beat, error) {
	dataBeats, err := s.repo.GetBeatsByLocation(locationID)
	if err != nil {
		s.logger.Error("failed to get beats from repository", "error", err, "location_id", locationID)
		return nil, err
	}

	var beats []*Beat
	for _, dataBeat := range dataBeats {
		beat := BeatFromDataModel(dataBeat)
		if beat.IsActive {
			beats = append(beats, beat)
		}
	}

	return beats, nil
}
