package postgres

import (
	"time"

	"github.com/guardforce/workforce-management/internal"
	personDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/person"
	personnelDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/personnel"
	"github.com/guardforce/workforce-management/internal/personnel"
	"gorm.io/gorm"
)

type PersonnelRepository struct {
	db *gorm.DB
}

func NewPersonnelRepository(db *gorm.DB) personnel.Repository {
	return &PersonnelRepository{db: db}
}

func (r *PersonnelRepository) GetPersonByID(id int64) (*personnel.Person, error) {
	var p personDatamodel.Person
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("person not found", internal.ErrCodeOperatorNotFound)
		}
		return nil, err
	}
	return personnel.PersonFromDataModel(&p), nil
}

func (r *PersonnelRepository) GetPersonByEmail(email string) (*personnel.Person, error) {
	var p personDatamodel.Person
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return personnel.PersonFromDataModel(&p), nil
}

func (r *PersonnelRepository) GetPersonByPhone(phone string) (*personnel.Person, error) {
	var p personDatamodel.Person
	err := r.db.Where("phone = ?", phone).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return personnel.PersonFromDataModel(&p), nil
}

func (r *PersonnelRepository) CreatePerson(p *personDatamodel.Person) error {
	return r.db.Create(p).Error
}

func (r *PersonnelRepository) EmployeeIDExists(employeeID string) (bool, error) {
	var count int64
	err := r.db.Model(&personDatamodel.Person{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *PersonnelRepository) GetOperatorByID(id int64) (*personnel.Operator, error) {
	var profile personnelDatamodel.OperatorProfile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("operator not found", internal.ErrCodeOperatorNotFound)
		}
		return nil, err
	}
	return personnel.OperatorFromDataModel(&profile), nil
}

func (r *PersonnelRepository) CreateOperatorProfile(profile *personnelDatamodel.OperatorProfile) error {
	return r.db.Create(profile).Error
}

// RefreshOperatorPlacement rewrites the denormalized supervisor/location
// cache on the operator profile. Only the assignment engine calls this, after
// a transition, so the cache can never drift from assignment truth.
func (r *PersonnelRepository) RefreshOperatorPlacement(operatorID int64, supervisorID, locationID *int64) error {
	return r.db.Model(&personnelDatamodel.OperatorProfile{}).
		Where("id = ?", operatorID).
		Updates(map[string]interface{}{
			"supervisor_id": supervisorID,
			"location_id":   locationID,
			"updated_at":    time.Now(),
		}).Error
}

func (r *PersonnelRepository) GetSupervisorProfileByID(id int64) (*personnelDatamodel.SupervisorProfile, error) {
	var profile personnelDatamodel.SupervisorProfile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("supervisor not found", internal.ErrCodeSupervisorNotFound)
		}
		return nil, err
	}
	return &profile, nil
}
