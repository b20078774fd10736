package registration

import (
	"github.com/guardforce/workforce-management/internal/assignment"
	"github.com/guardforce/workforce-management/internal/personnel"
)

// RegisterResult is the one-shot response of a successful registration. The
// temporary password is returned here and never persisted or logged in the
// clear.
type RegisterResult struct {
	Person            *personnel.Person      `json:"person"`
	Operator          *personnel.Operator    `json:"operator"`
	EmployeeID        string                 `json:"employee_id"`
	TemporaryPassword string                 `json:"temporary_password"`
	AssignmentCreated bool                   `json:"assignment_created"`
	Assignment        *assignment.Assignment `json:"assignment,omitempty"`
}
