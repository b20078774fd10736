package postgres

import (
	"github.com/guardforce/workforce-management/internal"
	personnelDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/personnel"
	"github.com/guardforce/workforce-management/internal/hierarchy"
	"gorm.io/gorm"
)

type HierarchyRepository struct {
	db *gorm.DB
}

func NewHierarchyRepository(db *gorm.DB) hierarchy.Repository {
	return &HierarchyRepository{db: db}
}

func (r *HierarchyRepository) GetProfileByPersonID(personID int64) (*hierarchy.Supervisor, error) {
	var profile personnelDatamodel.SupervisorProfile
	err := r.db.Where("person_id = ?", personID).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("supervisor profile not found", internal.ErrCodeProfileNotFound)
		}
		return nil, err
	}
	return hierarchy.FromDataModel(&profile), nil
}

func (r *HierarchyRepository) GetSubordinates(generalSupervisorID int64) ([]*hierarchy.Supervisor, error) {
	var profiles []*personnelDatamodel.SupervisorProfile
	err := r.db.
		Where("general_supervisor_id = ? AND supervisor_type = ?", generalSupervisorID, personnelDatamodel.SupervisorTypeSupervisor).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return hierarchy.FromDataModelSlice(profiles), nil
}

func (r *HierarchyRepository) GetSupervisors() ([]*hierarchy.Supervisor, error) {
	var profiles []*personnelDatamodel.SupervisorProfile
	err := r.db.
		Where("supervisor_type = ?", personnelDatamodel.SupervisorTypeSupervisor).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return hierarchy.FromDataModelSlice(profiles), nil
}

func (r *HierarchyRepository) GetApprovedSupervisors() ([]*hierarchy.Supervisor, error) {
	var profiles []*personnelDatamodel.SupervisorProfile
	err := r.db.
		Where("supervisor_type = ? AND approval_status = ?", personnelDatamodel.SupervisorTypeSupervisor, personnelDatamodel.ApprovalStatusApproved).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return hierarchy.FromDataModelSlice(profiles), nil
}
