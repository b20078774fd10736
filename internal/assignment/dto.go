package assignment

import (
	"strings"
	"time"

	"github.com/guardforce/workforce-management/internal"
)

// CreateAssignmentDTO carries the placement identity for a new assignment.
// Operator, beat, location and supervisor are required together; a partial
// set is a validation error naming each missing field.
type CreateAssignmentDTO struct {
	OperatorID     int64      `json:"operator_id"`
	BeatID         int64      `json:"beat_id"`
	LocationID     int64      `json:"location_id"`
	SupervisorID   int64      `json:"supervisor_id"`
	ShiftType      string     `json:"shift_type"`
	AssignmentType string     `json:"assignment_type"`
	StartDate      *time.Time `json:"start_date,omitempty"`
}

func (dto CreateAssignmentDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.OperatorID == 0 {
		fields = append(fields, internal.ValidationError{
			Field:   "operator_id",
			Message: "operator_id is required",
			Code:    string(internal.ErrCodeMissingPlacement),
		})
	}
	if dto.BeatID == 0 {
		fields = append(fields, internal.ValidationError{
			Field:   "beat_id",
			Message: "beat_id is required",
			Code:    string(internal.ErrCodeMissingPlacement),
		})
	}
	if dto.LocationID == 0 {
		fields = append(fields, internal.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
			Code:    string(internal.ErrCodeMissingPlacement),
		})
	}
	if dto.SupervisorID == 0 {
		fields = append(fields, internal.ValidationError{
			Field:   "supervisor_id",
			Message: "supervisor_id is required",
			Code:    string(internal.ErrCodeMissingPlacement),
		})
	}
	if dto.ShiftType == "" || !ValidShiftType(dto.ShiftType) {
		fields = append(fields, internal.ValidationError{
			Field:   "shift_type",
			Message: "shift_type must be one of DAY, NIGHT, ROTATING",
			Code:    string(internal.ErrCodeInvalidShiftType),
		})
	}
	if dto.AssignmentType == "" || !ValidAssignmentType(dto.AssignmentType) {
		fields = append(fields, internal.ValidationError{
			Field:   "assignment_type",
			Message: "assignment_type must be one of PERMANENT, TEMPORARY, RELIEF",
			Code:    string(internal.ErrCodeInvalidAssignType),
		})
	}

	if len(fields) > 0 {
		return internal.NewValidationFieldsError(fields)
	}
	return nil
}

// EffectiveStartDate defaults to now when the caller omits a start date.
func (dto CreateAssignmentDTO) EffectiveStartDate() time.Time {
	if dto.StartDate != nil && !dto.StartDate.IsZero() {
		return *dto.StartDate
	}
	return time.Now()
}

type RejectAssignmentDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectAssignmentDTO) Validate() error {
	if strings.TrimSpace(dto.Reason) == "" {
		return internal.NewValidationError("rejection reason is required", internal.ErrCodeMissingReason)
	}
	return nil
}

type ReassignOperatorDTO struct {
	BeatID         int64      `json:"beat_id"`
	LocationID     int64      `json:"location_id"`
	SupervisorID   int64      `json:"supervisor_id"`
	ShiftType      string     `json:"shift_type"`
	AssignmentType string     `json:"assignment_type"`
	StartDate      *time.Time `json:"start_date,omitempty"`
}

type ListResponse struct {
	Assignments  []*Assignment `json:"assignments"`
	Limit        int           `json:"limit"`
	Offset       int           `json:"offset"`
	UsedFallback bool          `json:"used_fallback"`
}
