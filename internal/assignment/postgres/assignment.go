package postgres

import (
	"time"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/assignment"
	assignmentDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/assignment"
	"gorm.io/gorm"
)

// AssignmentRepository implements the assignment.Repository interface using GORM.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.Repository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(a *assignment.Assignment) error {
	model := assignment.ToDataModel(a)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *AssignmentRepository) GetByID(id int64) (*assignment.Assignment, error) {
	var model assignmentDatamodel.GuardAssignment
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("assignment not found", internal.ErrCodeAssignmentNotFound)
		}
		return nil, err
	}
	return assignment.FromDataModel(&model), nil
}

// FindActiveByOperator is the enforcement point of the single-active
// invariant: every write that sets status=ACTIVE checks it first. A missing
// row is a nil result, not an error.
func (r *AssignmentRepository) FindActiveByOperator(operatorID int64) (*assignment.Assignment, error) {
	var model assignmentDatamodel.GuardAssignment
	err := r.db.
		Where("operator_id = ? AND status = ?", operatorID, assignment.StatusActive).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return assignment.FromDataModel(&model), nil
}

// UpdateTransition persists a status transition with its stamps. Free-form
// field edits are not supported once a record leaves PENDING; this writes the
// transition columns only.
func (r *AssignmentRepository) UpdateTransition(a *assignment.Assignment) error {
	return r.db.Model(&assignmentDatamodel.GuardAssignment{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"status":           a.Status,
			"end_date":         a.EndDate,
			"approved_by":      a.ApprovedBy,
			"approved_at":      a.ApprovedAt,
			"rejection_reason": a.RejectionReason,
			"updated_at":       time.Now(),
		}).Error
}

func (r *AssignmentRepository) ListByStatus(status string, supervisorIDs []int64, unrestricted bool, limit, offset int) ([]*assignment.Assignment, error) {
	var models []*assignmentDatamodel.GuardAssignment

	query := r.db.Where("status = ?", status)
	if !unrestricted {
		if len(supervisorIDs) == 0 {
			return []*assignment.Assignment{}, nil
		}
		query = query.Where("supervisor_id IN ?", supervisorIDs)
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return assignment.FromDataModelSlice(models), nil
}

// InTransaction runs fn against a repository bound to a database transaction;
// any error rolls the whole unit back. Reassignment's end-then-create runs
// through this.
func (r *AssignmentRepository) InTransaction(fn func(assignment.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&AssignmentRepository{db: tx})
	})
}
