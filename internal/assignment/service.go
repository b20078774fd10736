package assignment

import (
	"context"
	"log/slog"
	"sync"

	"github.com/guardforce/workforce-management/internal"
	locationDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/location"
	personnelDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/personnel"
	"github.com/guardforce/workforce-management/internal/core/events"
	"github.com/guardforce/workforce-management/internal/core/roles"
	"github.com/guardforce/workforce-management/internal/hierarchy"
	"github.com/guardforce/workforce-management/internal/personnel"
)

// Repository defines the data access methods for guard assignments.
// InTransaction runs fn against a transactional copy of the repository;
// returning an error rolls everything back.
type Repository interface {
	Create(a *Assignment) error
	GetByID(id int64) (*Assignment, error)
	FindActiveByOperator(operatorID int64) (*Assignment, error)
	UpdateTransition(a *Assignment) error
	ListByStatus(status string, supervisorIDs []int64, unrestricted bool, limit, offset int) ([]*Assignment, error)
	InTransaction(fn func(Repository) error) error
}

// Directory is the read-mostly reference lookup surface the engine validates
// against. Each lookup returns a NotFoundError naming the missing reference.
type Directory interface {
	GetOperator(id int64) (*personnel.Operator, error)
	GetSupervisor(id int64) (*personnelDatamodel.SupervisorProfile, error)
	GetLocation(id int64) (*locationDatamodel.Location, error)
	GetBeat(id int64) (*locationDatamodel.Beat, error)
	RefreshOperatorPlacement(operatorID int64, supervisorID, locationID *int64) error
}

type ScopeResolver interface {
	ResolveSubordinateScope(actor hierarchy.Actor) (*hierarchy.Scope, error)
}

type AuditRecorder interface {
	Record(actorID int64, action, entityType string, entityID int64, metadata map[string]interface{})
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// operatorLocks serializes assignment mutations per operator so concurrent
// Approve/Create/Reassign calls for the same operator cannot interleave
// between the active-assignment check and the write. Distinct operators
// never contend.
type operatorLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newOperatorLocks() *operatorLocks {
	return &operatorLocks{locks: make(map[int64]*sync.Mutex)}
}

func (ol *operatorLocks) forOperator(operatorID int64) *sync.Mutex {
	ol.mu.Lock()
	defer ol.mu.Unlock()
	lock, ok := ol.locks[operatorID]
	if !ok {
		lock = &sync.Mutex{}
		ol.locks[operatorID] = lock
	}
	return lock
}

// Service is the assignment lifecycle engine.
type Service struct {
	repo      Repository
	directory Directory
	scopes    ScopeResolver
	audit     AuditRecorder
	publisher EventPublisher
	locks     *operatorLocks
	logger    *slog.Logger
}

func NewService(repo Repository, directory Directory, scopes ScopeResolver, audit AuditRecorder, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		scopes:    scopes,
		audit:     audit,
		publisher: publisher,
		locks:     newOperatorLocks(),
		logger:    logger,
	}
}

// Create files a new assignment. Callers with approval authority create it
// ACTIVE directly (self-approving); lower-authority callers create PENDING
// and a separate Approve step activates it.
func (s *Service) Create(actor hierarchy.Actor, dto CreateAssignmentDTO) (*Assignment, error) {
	if !roles.Can(actor.Role, roles.OpCreateAssignment) {
		s.logger.Warn("create assignment denied", "person_id", actor.PersonID, "role", actor.Role)
		return nil, internal.NewForbiddenError("role cannot create assignments", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("assignment validation failed", "error", err, "person_id", actor.PersonID)
		return nil, err
	}

	if err := s.validateReferences(actor, dto); err != nil {
		return nil, err
	}

	lock := s.locks.forOperator(dto.OperatorID)
	lock.Lock()
	defer lock.Unlock()

	selfApproving := roles.HasApprovalAuthority(actor.Role)

	if selfApproving {
		existing, err := s.repo.FindActiveByOperator(dto.OperatorID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.logger.Warn("operator already has an active assignment",
				"operator_id", dto.OperatorID,
				"existing_assignment_id", existing.ID)
			return nil, internal.NewConflictError("operator already has an active assignment", internal.ErrCodeActiveAssignment)
		}
	}

	a := &Assignment{
		OperatorID:     dto.OperatorID,
		BeatID:         dto.BeatID,
		LocationID:     dto.LocationID,
		SupervisorID:   dto.SupervisorID,
		ShiftType:      dto.ShiftType,
		AssignmentType: dto.AssignmentType,
		Status:         StatusPending,
		StartDate:      dto.EffectiveStartDate(),
		AssignedBy: AssignedBy{
			PersonID: actor.PersonID,
			Role:     actor.Role,
			Name:     actor.Name,
		},
	}
	if selfApproving {
		a.Approve(actor.PersonID)
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create assignment", "error", err, "operator_id", dto.OperatorID)
		return nil, internal.NewStoreUnavailableError(err)
	}

	s.audit.Record(actor.PersonID, "assignment.create", "guard_assignment", a.ID, map[string]interface{}{
		"operator_id": a.OperatorID,
		"beat_id":     a.BeatID,
		"status":      a.Status,
	})
	s.publishTransition(events.EventTypeAssignmentCreated, a)

	if a.IsActive() {
		s.refreshPlacementCache(a.OperatorID, &a.SupervisorID, &a.LocationID)
	}

	s.logger.Info("assignment created",
		"assignment_id", a.ID,
		"operator_id", a.OperatorID,
		"status", a.Status,
		"assigned_by", actor.PersonID)

	return a, nil
}

// Approve transitions a PENDING assignment to ACTIVE. The single-active
// invariant is re-checked here under the operator lock; approving an
// already-ACTIVE assignment is a conflict, not a duplicate transition.
func (s *Service) Approve(actor hierarchy.Actor, assignmentID int64) (*Assignment, error) {
	if !roles.Can(actor.Role, roles.OpApproveAssignment) {
		s.logger.Warn("approve assignment denied", "person_id", actor.PersonID, "role", actor.Role)
		return nil, internal.NewForbiddenError("role cannot approve assignments", internal.ErrCodeUnauthorizedAccess)
	}

	a, err := s.repo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkScope(actor, a.SupervisorID, "assignment"); err != nil {
		return nil, err
	}

	lock := s.locks.forOperator(a.OperatorID)
	lock.Lock()
	defer lock.Unlock()

	if a.Status == StatusActive {
		return nil, internal.NewConflictError("assignment is already active", internal.ErrCodeActiveAssignment)
	}
	if !a.CanBeApproved() {
		return nil, internal.NewValidationError("assignment cannot be approved in its current status", internal.ErrCodeInvalidStatus)
	}

	existing, err := s.repo.FindActiveByOperator(a.OperatorID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != a.ID {
		s.logger.Warn("approval blocked by existing active assignment",
			"assignment_id", a.ID,
			"operator_id", a.OperatorID,
			"existing_assignment_id", existing.ID)
		return nil, internal.NewConflictError("operator already has an active assignment", internal.ErrCodeActiveAssignment)
	}

	a.Approve(actor.PersonID)
	if err := s.repo.UpdateTransition(a); err != nil {
		s.logger.Error("failed to persist approval", "error", err, "assignment_id", a.ID)
		return nil, internal.NewStoreUnavailableError(err)
	}

	s.audit.Record(actor.PersonID, "assignment.approve", "guard_assignment", a.ID, map[string]interface{}{
		"operator_id": a.OperatorID,
	})
	s.publishTransition(events.EventTypeAssignmentApproved, a)
	s.refreshPlacementCache(a.OperatorID, &a.SupervisorID, &a.LocationID)

	s.logger.Info("assignment approved",
		"assignment_id", a.ID,
		"operator_id", a.OperatorID,
		"approved_by", actor.PersonID)

	return a, nil
}

// Reject transitions a PENDING assignment to REJECTED. The reason is
// mandatory and terminal.
func (s *Service) Reject(actor hierarchy.Actor, assignmentID int64, dto RejectAssignmentDTO) (*Assignment, error) {
	if !roles.Can(actor.Role, roles.OpRejectAssignment) {
		s.logger.Warn("reject assignment denied", "person_id", actor.PersonID, "role", actor.Role)
		return nil, internal.NewForbiddenError("role cannot reject assignments", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkScope(actor, a.SupervisorID, "assignment"); err != nil {
		return nil, err
	}

	lock := s.locks.forOperator(a.OperatorID)
	lock.Lock()
	defer lock.Unlock()

	if !a.CanBeRejected() {
		return nil, internal.NewValidationError("assignment cannot be rejected in its current status", internal.ErrCodeInvalidStatus)
	}

	a.Reject(actor.PersonID, dto.Reason)
	if err := s.repo.UpdateTransition(a); err != nil {
		s.logger.Error("failed to persist rejection", "error", err, "assignment_id", a.ID)
		return nil, internal.NewStoreUnavailableError(err)
	}

	s.audit.Record(actor.PersonID, "assignment.reject", "guard_assignment", a.ID, map[string]interface{}{
		"operator_id": a.OperatorID,
		"reason":      dto.Reason,
	})
	s.publishTransition(events.EventTypeAssignmentRejected, a)

	s.logger.Info("assignment rejected",
		"assignment_id", a.ID,
		"operator_id", a.OperatorID,
		"rejected_by", actor.PersonID,
		"reason", dto.Reason)

	return a, nil
}

// Reassign ends the operator's current ACTIVE assignment and creates the
// replacement inside a single transaction. The new target is validated fully
// before any write, so a failed reassignment leaves the existing assignment
// ACTIVE. History is preserved: the old record becomes ENDED, never deleted.
func (s *Service) Reassign(actor hierarchy.Actor, operatorID int64, dto ReassignOperatorDTO) (*Assignment, error) {
	if !roles.Can(actor.Role, roles.OpReassignOperator) {
		s.logger.Warn("reassign operator denied", "person_id", actor.PersonID, "role", actor.Role)
		return nil, internal.NewForbiddenError("role cannot reassign operators", internal.ErrCodeUnauthorizedAccess)
	}

	createDTO := CreateAssignmentDTO{
		OperatorID:     operatorID,
		BeatID:         dto.BeatID,
		LocationID:     dto.LocationID,
		SupervisorID:   dto.SupervisorID,
		ShiftType:      dto.ShiftType,
		AssignmentType: dto.AssignmentType,
		StartDate:      dto.StartDate,
	}
	if err := createDTO.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateReferences(actor, createDTO); err != nil {
		return nil, err
	}

	lock := s.locks.forOperator(operatorID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.repo.FindActiveByOperator(operatorID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, internal.NewNotFoundError("operator has no active assignment", internal.ErrCodeAssignmentNotFound)
	}
	if err := s.checkScope(actor, current.SupervisorID, "assignment"); err != nil {
		return nil, err
	}

	replacement := &Assignment{
		OperatorID:     operatorID,
		BeatID:         createDTO.BeatID,
		LocationID:     createDTO.LocationID,
		SupervisorID:   createDTO.SupervisorID,
		ShiftType:      createDTO.ShiftType,
		AssignmentType: createDTO.AssignmentType,
		Status:         StatusPending,
		StartDate:      createDTO.EffectiveStartDate(),
		AssignedBy: AssignedBy{
			PersonID: actor.PersonID,
			Role:     actor.Role,
			Name:     actor.Name,
		},
	}
	replacement.Approve(actor.PersonID)

	err = s.repo.InTransaction(func(tx Repository) error {
		current.End()
		if err := tx.UpdateTransition(current); err != nil {
			return err
		}
		return tx.Create(replacement)
	})
	if err != nil {
		s.logger.Error("reassignment transaction failed",
			"error", err,
			"operator_id", operatorID,
			"previous_assignment_id", current.ID)
		return nil, internal.NewStoreUnavailableError(err)
	}

	s.audit.Record(actor.PersonID, "assignment.end", "guard_assignment", current.ID, map[string]interface{}{
		"operator_id": operatorID,
		"superseded":  true,
	})
	s.audit.Record(actor.PersonID, "assignment.create", "guard_assignment", replacement.ID, map[string]interface{}{
		"operator_id": operatorID,
		"beat_id":     replacement.BeatID,
		"status":      replacement.Status,
		"reassigned":  true,
	})
	s.publishTransition(events.EventTypeAssignmentEnded, current)
	s.publishTransition(events.EventTypeAssignmentCreated, replacement)
	s.refreshPlacementCache(operatorID, &replacement.SupervisorID, &replacement.LocationID)

	s.logger.Info("operator reassigned",
		"operator_id", operatorID,
		"previous_assignment_id", current.ID,
		"new_assignment_id", replacement.ID,
		"reassigned_by", actor.PersonID)

	return replacement, nil
}

// End closes an ACTIVE assignment without a replacement, for terminations and
// leave.
func (s *Service) End(actor hierarchy.Actor, assignmentID int64) (*Assignment, error) {
	if !roles.Can(actor.Role, roles.OpEndAssignment) {
		s.logger.Warn("end assignment denied", "person_id", actor.PersonID, "role", actor.Role)
		return nil, internal.NewForbiddenError("role cannot end assignments", internal.ErrCodeUnauthorizedAccess)
	}

	a, err := s.repo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkScope(actor, a.SupervisorID, "assignment"); err != nil {
		return nil, err
	}

	lock := s.locks.forOperator(a.OperatorID)
	lock.Lock()
	defer lock.Unlock()

	if !a.CanBeEnded() {
		return nil, internal.NewValidationError("only active assignments can be ended", internal.ErrCodeInvalidStatus)
	}

	a.End()
	if err := s.repo.UpdateTransition(a); err != nil {
		s.logger.Error("failed to persist end", "error", err, "assignment_id", a.ID)
		return nil, internal.NewStoreUnavailableError(err)
	}

	s.audit.Record(actor.PersonID, "assignment.end", "guard_assignment", a.ID, map[string]interface{}{
		"operator_id": a.OperatorID,
	})
	s.publishTransition(events.EventTypeAssignmentEnded, a)
	s.refreshPlacementCache(a.OperatorID, nil, nil)

	s.logger.Info("assignment ended",
		"assignment_id", a.ID,
		"operator_id", a.OperatorID,
		"ended_by", actor.PersonID)

	return a, nil
}

func (s *Service) ListPending(actor hierarchy.Actor, limit, offset int) (*ListResponse, error) {
	return s.list(actor, StatusPending, limit, offset)
}

func (s *Service) ListActive(actor hierarchy.Actor, limit, offset int) (*ListResponse, error) {
	return s.list(actor, StatusActive, limit, offset)
}

func (s *Service) list(actor hierarchy.Actor, status string, limit, offset int) (*ListResponse, error) {
	if !roles.Can(actor.Role, roles.OpListAssignments) {
		return nil, internal.NewForbiddenError("role cannot list assignments", internal.ErrCodeUnauthorizedAccess)
	}

	scope, err := s.scopes.ResolveSubordinateScope(actor)
	if err != nil {
		return nil, err
	}
	if scope.UsedFallback {
		s.logger.Warn("assignment listing served from hierarchy fallback",
			"person_id", actor.PersonID,
			"status", status)
	}

	assignments, err := s.repo.ListByStatus(status, scope.SupervisorIDs, scope.Unrestricted, limit, offset)
	if err != nil {
		return nil, internal.NewStoreUnavailableError(err)
	}

	return &ListResponse{
		Assignments:  assignments,
		Limit:        limit,
		Offset:       offset,
		UsedFallback: scope.UsedFallback,
	}, nil
}

// validateReferences resolves all four placement identities and verifies the
// supervisor is inside the actor's scope. Unauthorized scope exclusion is
// reported as not-found so callers cannot probe for records they cannot see.
func (s *Service) validateReferences(actor hierarchy.Actor, dto CreateAssignmentDTO) error {
	if err := s.checkScope(actor, dto.SupervisorID, "supervisor"); err != nil {
		return err
	}

	if _, err := s.directory.GetOperator(dto.OperatorID); err != nil {
		return err
	}
	if _, err := s.directory.GetSupervisor(dto.SupervisorID); err != nil {
		return err
	}
	if _, err := s.directory.GetLocation(dto.LocationID); err != nil {
		return err
	}
	beat, err := s.directory.GetBeat(dto.BeatID)
	if err != nil {
		return err
	}
	if beat.LocationID != dto.LocationID {
		return internal.NewValidationError("beat does not belong to the given location", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (s *Service) checkScope(actor hierarchy.Actor, supervisorID int64, entity string) error {
	scope, err := s.scopes.ResolveSubordinateScope(actor)
	if err != nil {
		return err
	}
	if scope.UsedFallback {
		s.logger.Warn("scope check running on hierarchy fallback",
			"person_id", actor.PersonID,
			"supervisor_id", supervisorID)
	}
	if !scope.Contains(supervisorID) {
		s.logger.Warn("scope excludes target supervisor",
			"person_id", actor.PersonID,
			"supervisor_id", supervisorID,
			"entity", entity)
		return internal.NewNotFoundError(entity+" not found", internal.ErrCodeSupervisorNotFound)
	}
	return nil
}

func (s *Service) publishTransition(eventType string, a *Assignment) {
	event := events.NewAssignmentEvent(eventType, a.ID, a.OperatorID, a.BeatID, a.LocationID, a.Status)
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish assignment event",
			"event_type", eventType,
			"assignment_id", a.ID,
			"error", err)
	}
}

// refreshPlacementCache rewrites the operator profile's denormalized
// supervisor/location pointers after a transition. The cache is best-effort;
// the assignment store stays the source of truth if the refresh fails.
func (s *Service) refreshPlacementCache(operatorID int64, supervisorID, locationID *int64) {
	if err := s.directory.RefreshOperatorPlacement(operatorID, supervisorID, locationID); err != nil {
		s.logger.Error("failed to refresh operator placement cache",
			"operator_id", operatorID,
			"error", err)
	}
}
