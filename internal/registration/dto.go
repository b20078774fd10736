package registration

import (
	"strings"

	"github.com/guardforce/workforce-management/internal"
)

// RegisterOperatorDTO captures a new operator hire. Placement fields are
// optional as a group: when supervisor, location and beat are all present the
// facade also opens an assignment; a partial triple skips the assignment and
// never fails the registration.
type RegisterOperatorDTO struct {
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	Name           string  `json:"name"`
	GuarantorName  *string `json:"guarantor_name,omitempty"`
	GuarantorPhone *string `json:"guarantor_phone,omitempty"`
	MonthlySalary  *int64  `json:"monthly_salary,omitempty"`

	SupervisorID   *int64 `json:"supervisor_id,omitempty"`
	LocationID     *int64 `json:"location_id,omitempty"`
	BeatID         *int64 `json:"beat_id,omitempty"`
	ShiftType      string `json:"shift_type,omitempty"`
	AssignmentType string `json:"assignment_type,omitempty"`
}

func (dto RegisterOperatorDTO) Validate() error {
	var fieldErrors []internal.ValidationError

	if strings.TrimSpace(dto.Email) == "" {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field: "email", Message: "email is required",
		})
	} else if !strings.Contains(dto.Email, "@") {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field: "email", Message: "email is malformed",
		})
	}

	if strings.TrimSpace(dto.Name) == "" {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field: "name", Message: "name is required",
		})
	}

	if dto.Phone != nil && strings.TrimSpace(*dto.Phone) == "" {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field: "phone", Message: "phone must not be blank when provided",
		})
	}

	if len(fieldErrors) > 0 {
		return internal.NewValidationFieldsError(fieldErrors)
	}
	return nil
}

// HasFullPlacement reports whether the placement triple is complete and an
// initial assignment should be attempted.
func (dto RegisterOperatorDTO) HasFullPlacement() bool {
	return dto.SupervisorID != nil && dto.LocationID != nil && dto.BeatID != nil
}

// HasPartialPlacement reports whether some but not all placement fields were
// supplied.
func (dto RegisterOperatorDTO) HasPartialPlacement() bool {
	any := dto.SupervisorID != nil || dto.LocationID != nil || dto.BeatID != nil
	return any && !dto.HasFullPlacement()
}
