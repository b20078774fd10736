package registration

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/assignment"
	personDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/person"
	personnelDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/personnel"
	"github.com/guardforce/workforce-management/internal/core/events"
	"github.com/guardforce/workforce-management/internal/core/roles"
	"github.com/guardforce/workforce-management/internal/hierarchy"
	"github.com/guardforce/workforce-management/internal/personnel"
)

const (
	operatorIDPrefix = "OP"

	tempPasswordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	defaultTempPasswordLength = 12
	defaultEmployeeIDRetries  = 3
)

// AssignmentCreator is the slice of the assignment engine the facade needs
// for the optional placement side effect.
type AssignmentCreator interface {
	Create(actor hierarchy.Actor, dto assignment.CreateAssignmentDTO) (*assignment.Assignment, error)
}

// PasswordHasher hashes the generated temporary password before the person
// record is stored.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	people      personnel.Repository
	assignments AssignmentCreator
	hasher      PasswordHasher
	eventBus    EventPublisher
	cfg         internal.RegistrationConfig
	logger      *slog.Logger
}

func NewService(people personnel.Repository, assignments AssignmentCreator, hasher PasswordHasher, eventBus EventPublisher, cfg internal.RegistrationConfig, logger *slog.Logger) *Service {
	if cfg.EmployeeIDMaxRetries <= 0 {
		cfg.EmployeeIDMaxRetries = defaultEmployeeIDRetries
	}
	if cfg.TempPasswordLength <= 0 {
		cfg.TempPasswordLength = defaultTempPasswordLength
	}
	return &Service{
		people:      people,
		assignments: assignments,
		hasher:      hasher,
		eventBus:    eventBus,
		cfg:         cfg,
		logger:      logger,
	}
}

// RegisterOperator creates a person record, an operator profile and, when the
// placement triple is complete, an initial assignment. Uniqueness of email and
// phone is checked case-insensitively before any write.
func (s *Service) RegisterOperator(actor hierarchy.Actor, dto RegisterOperatorDTO) (*RegisterResult, error) {
	if !roles.Can(actor.Role, roles.OpRegisterOperator) {
		return nil, internal.NewForbiddenError("role cannot register operators", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.people.GetPersonByEmail(dto.Email); err != nil {
		return nil, internal.NewStoreUnavailableError(err)
	} else if existing != nil {
		return nil, internal.NewConflictError("email is already registered", internal.ErrCodeDuplicateEmail)
	}

	if dto.Phone != nil {
		if existing, err := s.people.GetPersonByPhone(*dto.Phone); err != nil {
			return nil, internal.NewStoreUnavailableError(err)
		} else if existing != nil {
			return nil, internal.NewConflictError("phone number is already registered", internal.ErrCodeDuplicatePhone)
		}
	}

	employeeID, err := s.generateEmployeeID()
	if err != nil {
		return nil, err
	}

	tempPassword, err := s.generateTempPassword()
	if err != nil {
		return nil, internal.NewInternalError("failed to generate temporary password", err)
	}

	passwordHash, err := s.hasher.HashPassword(tempPassword)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash temporary password", err)
	}

	person := &personDatamodel.Person{
		Email:        dto.Email,
		Phone:        dto.Phone,
		Name:         dto.Name,
		Role:         string(roles.RoleOperator),
		Status:       personDatamodel.StatusActive,
		EmployeeID:   employeeID,
		PasswordHash: passwordHash,
	}
	if err := s.people.CreatePerson(person); err != nil {
		return nil, internal.NewStoreUnavailableError(err)
	}

	profile := &personnelDatamodel.OperatorProfile{
		PersonID:       person.ID,
		EmployeeID:     employeeID,
		GuarantorName:  dto.GuarantorName,
		GuarantorPhone: dto.GuarantorPhone,
		MonthlySalary:  dto.MonthlySalary,
		ApprovalStatus: personnelDatamodel.ApprovalStatusApproved,
	}
	if err := s.people.CreateOperatorProfile(profile); err != nil {
		return nil, internal.NewStoreUnavailableError(err)
	}

	s.logger.Info("operator registered",
		"person_id", person.ID,
		"operator_id", profile.ID,
		"employee_id", employeeID,
		"registered_by", actor.PersonID)

	result := &RegisterResult{
		Person:            personnel.PersonFromDataModel(person),
		Operator:          personnel.OperatorFromDataModel(profile),
		EmployeeID:        employeeID,
		TemporaryPassword: tempPassword,
	}

	if dto.HasFullPlacement() {
		created, err := s.assignments.Create(actor, assignment.CreateAssignmentDTO{
			OperatorID:     profile.ID,
			SupervisorID:   *dto.SupervisorID,
			LocationID:     *dto.LocationID,
			BeatID:         *dto.BeatID,
			ShiftType:      dto.ShiftType,
			AssignmentType: dto.AssignmentType,
		})
		if err != nil {
			// registration stands on its own; the placement can be retried
			// through the assignment endpoints
			s.logger.Warn("registration succeeded but initial assignment failed",
				"operator_id", profile.ID,
				"error", err)
		} else {
			result.AssignmentCreated = true
			result.Assignment = created
		}
	} else if dto.HasPartialPlacement() {
		s.logger.Info("partial placement supplied, skipping initial assignment",
			"operator_id", profile.ID)
	}

	if pubErr := s.eventBus.Publish(context.Background(),
		events.NewOperatorRegisteredEvent(person.ID, person.Email, person.Name, employeeID, tempPassword)); pubErr != nil {
		s.logger.Warn("failed to publish operator registered event",
			"person_id", person.ID,
			"error", pubErr)
	}

	return result, nil
}

// generateEmployeeID builds IDs of the form OP-<timestamp suffix>-<3 random
// digits> and retries on collision a bounded number of times.
func (s *Service) generateEmployeeID() (string, error) {
	for attempt := 0; attempt < s.cfg.EmployeeIDMaxRetries; attempt++ {
		ts := strconv.FormatInt(time.Now().Unix(), 10)
		if len(ts) > 6 {
			ts = ts[len(ts)-6:]
		}

		n, err := rand.Int(rand.Reader, big.NewInt(1000))
		if err != nil {
			return "", internal.NewInternalError("failed to generate employee ID", err)
		}

		candidate := fmt.Sprintf("%s-%s-%03d", operatorIDPrefix, ts, n.Int64())

		exists, err := s.people.EmployeeIDExists(candidate)
		if err != nil {
			return "", internal.NewStoreUnavailableError(err)
		}
		if !exists {
			return candidate, nil
		}

		s.logger.Warn("employee ID collision, retrying",
			"candidate", candidate,
			"attempt", attempt+1)
	}

	return "", internal.NewConflictError("could not generate a unique employee ID", internal.ErrCodeEmployeeIDExhaust)
}

func (s *Service) generateTempPassword() (string, error) {
	buf := make([]byte, s.cfg.TempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordCharset[n.Int64()]
	}
	return string(buf), nil
}
