package personnel

import (
	"time"

	personDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/person"
	personnelDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/personnel"
	"github.com/guardforce/workforce-management/internal/core/roles"
)

type Person struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone,omitempty"`
	Name       string     `json:"name"`
	Role       roles.Role `json:"role"`
	Status     string     `json:"status"`
	EmployeeID string     `json:"employee_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (p *Person) IsActive() bool {
	return p.Status == personDatamodel.StatusActive
}

type Operator struct {
	ID             int64     `json:"id"`
	PersonID       int64     `json:"person_id"`
	EmployeeID     string    `json:"employee_id"`
	LocationID     *int64    `json:"location_id,omitempty"`
	SupervisorID   *int64    `json:"supervisor_id,omitempty"`
	GuarantorName  *string   `json:"guarantor_name,omitempty"`
	GuarantorPhone *string   `json:"guarantor_phone,omitempty"`
	ApprovalStatus string    `json:"approval_status"`
	MonthlySalary  *int64    `json:"monthly_salary,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Repository is the person + operator-profile directory. The registration
// facade is the only writer of new records; the assignment engine reads for
// validation and refreshes the denormalized placement cache.
type Repository interface {
	GetPersonByID(id int64) (*Person, error)
	GetPersonByEmail(email string) (*Person, error)
	GetPersonByPhone(phone string) (*Person, error)
	CreatePerson(p *personDatamodel.Person) error
	EmployeeIDExists(employeeID string) (bool, error)

	GetOperatorByID(id int64) (*Operator, error)
	CreateOperatorProfile(profile *personnelDatamodel.OperatorProfile) error
	RefreshOperatorPlacement(operatorID int64, supervisorID, locationID *int64) error

	GetSupervisorProfileByID(id int64) (*personnelDatamodel.SupervisorProfile, error)
}

func PersonFromDataModel(p *personDatamodel.Person) *Person {
	return &Person{
		ID:         p.ID,
		Email:      p.Email,
		Phone:      p.Phone,
		Name:       p.Name,
		Role:       roles.Role(p.Role),
		Status:     p.Status,
		EmployeeID: p.EmployeeID,
		CreatedAt:  p.CreatedAt,
	}
}

func OperatorFromDataModel(o *personnelDatamodel.OperatorProfile) *Operator {
	return &Operator{
		ID:             o.ID,
		PersonID:       o.PersonID,
		EmployeeID:     o.EmployeeID,
		LocationID:     o.LocationID,
		SupervisorID:   o.SupervisorID,
		GuarantorName:  o.GuarantorName,
		GuarantorPhone: o.GuarantorPhone,
		ApprovalStatus: o.ApprovalStatus,
		MonthlySalary:  o.MonthlySalary,
		CreatedAt:      o.CreatedAt,
	}
}
