package assignment

import (
	locationDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/location"
	personnelDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/personnel"
	"github.com/guardforce/workforce-management/internal/location"
	"github.com/guardforce/workforce-management/internal/personnel"
)

// referenceDirectory satisfies Directory by composing the personnel and
// location repositories.
type referenceDirectory struct {
	people    personnel.Repository
	locations location.RepositoryAPI
}

func NewDirectory(people personnel.Repository, locations location.RepositoryAPI) Directory {
	return &referenceDirectory{
		people:    people,
		locations: locations,
	}
}

func (d *referenceDirectory) GetOperator(id int64) (*personnel.Operator, error) {
	return d.people.GetOperatorByID(id)
}

func (d *referenceDirectory) GetSupervisor(id int64) (*personnelDatamodel.SupervisorProfile, error) {
	return d.people.GetSupervisorProfileByID(id)
}

func (d *referenceDirectory) GetLocation(id int64) (*locationDatamodel.Location, error) {
	return d.locations.GetByID(id)
}

func (d *referenceDirectory) GetBeat(id int64) (*locationDatamodel.Beat, error) {
	return d.locations.GetBeatByID(id)
}

func (d *referenceDirectory) RefreshOperatorPlacement(operatorID int64, supervisorID, locationID *int64) error {
	return d.people.RefreshOperatorPlacement(operatorID, supervisorID, locationID)
}
