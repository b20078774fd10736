package assignment_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/assignment"
	locationDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/location"
	personnelDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/personnel"
	"github.com/guardforce/workforce-management/internal/core/events"
	"github.com/guardforce/workforce-management/internal/core/roles"
	"github.com/guardforce/workforce-management/internal/hierarchy"
	"github.com/guardforce/workforce-management/internal/personnel"
)

func TestAssignment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Assignment Service Suite")
}

// Mock repository for testing. Guarded by a mutex so concurrency specs can
// hit it from multiple goroutines.
type mockAssignmentRepository struct {
	mu          sync.Mutex
	assignments map[int64]*assignment.Assignment
	nextID      int64

	createError error
	getError    error
	findError   error
	updateError error
	listError   error
	txError     error

	// txCreateError fails only Create calls made inside InTransaction, to
	// exercise rollback behavior.
	txCreateError error
}

func newMockAssignmentRepository() *mockAssignmentRepository {
	return &mockAssignmentRepository{
		assignments: make(map[int64]*assignment.Assignment),
		nextID:      1,
	}
}

func (m *mockAssignmentRepository) clone(a *assignment.Assignment) *assignment.Assignment {
	cp := *a
	return &cp
}

func (m *mockAssignmentRepository) Create(a *assignment.Assignment) error {
	if m.createError != nil {
		return m.createError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextID
	m.nextID++
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.assignments[a.ID] = m.clone(a)
	return nil
}

func (m *mockAssignmentRepository) GetByID(id int64) (*assignment.Assignment, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[id]
	if !ok {
		return nil, internal.NewNotFoundError("assignment not found", internal.ErrCodeAssignmentNotFound)
	}
	return m.clone(a), nil
}

func (m *mockAssignmentRepository) FindActiveByOperator(operatorID int64) (*assignment.Assignment, error) {
	if m.findError != nil {
		return nil, m.findError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.OperatorID == operatorID && a.Status == assignment.StatusActive {
			return m.clone(a), nil
		}
	}
	return nil, nil
}

func (m *mockAssignmentRepository) UpdateTransition(a *assignment.Assignment) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assignments[a.ID]; !ok {
		return errors.New("assignment does not exist")
	}
	m.assignments[a.ID] = m.clone(a)
	return nil
}

func (m *mockAssignmentRepository) ListByStatus(status string, supervisorIDs []int64, unrestricted bool, limit, offset int) ([]*assignment.Assignment, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	inScope := func(supervisorID int64) bool {
		if unrestricted {
			return true
		}
		for _, id := range supervisorIDs {
			if id == supervisorID {
				return true
			}
		}
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*assignment.Assignment{}
	for _, a := range m.assignments {
		if a.Status == status && inScope(a.SupervisorID) {
			result = append(result, m.clone(a))
		}
	}
	return result, nil
}

// InTransaction snapshots state and restores it when fn fails, mimicking a
// database rollback.
func (m *mockAssignmentRepository) InTransaction(fn func(assignment.Repository) error) error {
	if m.txError != nil {
		return m.txError
	}

	m.mu.Lock()
	snapshot := make(map[int64]*assignment.Assignment, len(m.assignments))
	for id, a := range m.assignments {
		snapshot[id] = m.clone(a)
	}
	snapshotNextID := m.nextID
	m.mu.Unlock()

	if err := fn(&txRepo{m}); err != nil {
		m.mu.Lock()
		m.assignments = snapshot
		m.nextID = snapshotNextID
		m.mu.Unlock()
		return err
	}
	return nil
}

type txRepo struct {
	*mockAssignmentRepository
}

func (t *txRepo) Create(a *assignment.Assignment) error {
	if t.txCreateError != nil {
		return t.txCreateError
	}
	return t.mockAssignmentRepository.Create(a)
}

// Mock reference directory for testing
type mockDirectory struct {
	operators   map[int64]*personnel.Operator
	supervisors map[int64]*personnelDatamodel.SupervisorProfile
	locations   map[int64]*locationDatamodel.Location
	beats       map[int64]*locationDatamodel.Beat

	refreshError error

	mu                    sync.Mutex
	refreshedOperatorID   *int64
	refreshedSupervisorID *int64
	refreshedLocationID   *int64
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		operators:   make(map[int64]*personnel.Operator),
		supervisors: make(map[int64]*personnelDatamodel.SupervisorProfile),
		locations:   make(map[int64]*locationDatamodel.Location),
		beats:       make(map[int64]*locationDatamodel.Beat),
	}
}

func (m *mockDirectory) GetOperator(id int64) (*personnel.Operator, error) {
	op, ok := m.operators[id]
	if !ok {
		return nil, internal.NewNotFoundError("operator not found", internal.ErrCodeOperatorNotFound)
	}
	return op, nil
}

func (m *mockDirectory) GetSupervisor(id int64) (*personnelDatamodel.SupervisorProfile, error) {
	sv, ok := m.supervisors[id]
	if !ok {
		return nil, internal.NewNotFoundError("supervisor not found", internal.ErrCodeSupervisorNotFound)
	}
	return sv, nil
}

func (m *mockDirectory) GetLocation(id int64) (*locationDatamodel.Location, error) {
	loc, ok := m.locations[id]
	if !ok {
		return nil, internal.NewNotFoundError("location not found", internal.ErrCodeLocationNotFound)
	}
	return loc, nil
}

func (m *mockDirectory) GetBeat(id int64) (*locationDatamodel.Beat, error) {
	b, ok := m.beats[id]
	if !ok {
		return nil, internal.NewNotFoundError("beat not found", internal.ErrCodeBeatNotFound)
	}
	return b, nil
}

func (m *mockDirectory) RefreshOperatorPlacement(operatorID int64, supervisorID, locationID *int64) error {
	if m.refreshError != nil {
		return m.refreshError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshedOperatorID = &operatorID
	m.refreshedSupervisorID = supervisorID
	m.refreshedLocationID = locationID
	return nil
}

type mockScopeResolver struct {
	scope *hierarchy.Scope
	err   error
}

func (m *mockScopeResolver) ResolveSubordinateScope(actor hierarchy.Actor) (*hierarchy.Scope, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.scope, nil
}

type auditEntry struct {
	ActorID    int64
	Action     string
	EntityType string
	EntityID   int64
	Metadata   map[string]interface{}
}

type mockAuditRecorder struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (m *mockAuditRecorder) Record(actorID int64, action, entityType string, entityID int64, metadata map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{actorID, action, entityType, entityID, metadata})
}

type mockPublisher struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("AssignmentService", func() {
	var (
		service   *assignment.Service
		mockRepo  *mockAssignmentRepository
		directory *mockDirectory
		resolver  *mockScopeResolver
		recorder  *mockAuditRecorder
		publisher *mockPublisher
		logger    *slog.Logger

		manager    hierarchy.Actor
		supervisor hierarchy.Actor
		secretary  hierarchy.Actor
	)

	validDTO := func() assignment.CreateAssignmentDTO {
		return assignment.CreateAssignmentDTO{
			OperatorID:     100,
			BeatID:         200,
			LocationID:     300,
			SupervisorID:   400,
			ShiftType:      assignment.ShiftDay,
			AssignmentType: assignment.TypePermanent,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockAssignmentRepository()
		directory = newMockDirectory()
		resolver = &mockScopeResolver{scope: &hierarchy.Scope{Unrestricted: true}}
		recorder = &mockAuditRecorder{}
		publisher = &mockPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = assignment.NewService(mockRepo, directory, resolver, recorder, publisher, logger)

		manager = hierarchy.Actor{PersonID: 1, Role: roles.RoleManager, Name: "Area Manager"}
		supervisor = hierarchy.Actor{PersonID: 2, Role: roles.RoleSupervisor, Name: "Zone Supervisor"}
		secretary = hierarchy.Actor{PersonID: 3, Role: roles.RoleSecretary, Name: "Ops Secretary"}

		directory.operators[100] = &personnel.Operator{ID: 100, PersonID: 10}
		directory.supervisors[400] = &personnelDatamodel.SupervisorProfile{ID: 400}
		directory.locations[300] = &locationDatamodel.Location{ID: 300, IsActive: true}
		directory.beats[200] = &locationDatamodel.Beat{ID: 200, LocationID: 300, IsActive: true}
	})

	Describe("Create", func() {
		Context("when the caller has approval authority", func() {
			It("should create the assignment directly in ACTIVE", func() {
				result, err := service.Create(manager, validDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(assignment.StatusActive))
				Expect(result.ApprovedBy).ToNot(BeNil())
				Expect(*result.ApprovedBy).To(Equal(manager.PersonID))
				Expect(result.ApprovedAt).ToNot(BeNil())
				Expect(result.AssignedBy.PersonID).To(Equal(manager.PersonID))
				Expect(result.AssignedBy.Role).To(Equal(roles.RoleManager))
			})

			It("should refresh the operator placement cache", func() {
				result, err := service.Create(manager, validDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(directory.refreshedOperatorID).ToNot(BeNil())
				Expect(*directory.refreshedOperatorID).To(Equal(result.OperatorID))
				Expect(*directory.refreshedSupervisorID).To(Equal(result.SupervisorID))
				Expect(*directory.refreshedLocationID).To(Equal(result.LocationID))
			})

			It("should refuse when the operator already has an active assignment", func() {
				_, err := service.Create(manager, validDTO())
				Expect(err).ToNot(HaveOccurred())

				_, err = service.Create(manager, validDTO())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
				Expect(appErr.Code).To(Equal(internal.ErrCodeActiveAssignment))
			})
		})

		Context("when the caller lacks approval authority", func() {
			It("should create the assignment in PENDING", func() {
				result, err := service.Create(supervisor, validDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(assignment.StatusPending))
				Expect(result.ApprovedBy).To(BeNil())
			})

			It("should not block a second PENDING while another assignment is active", func() {
				_, err := service.Create(manager, validDTO())
				Expect(err).ToNot(HaveOccurred())

				pending, err := service.Create(supervisor, validDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(pending.Status).To(Equal(assignment.StatusPending))
			})

			It("should not touch the placement cache for a pending assignment", func() {
				_, err := service.Create(secretary, validDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(directory.refreshedOperatorID).To(BeNil())
			})
		})

		Context("when placement fields are missing", func() {
			It("should name every missing field", func() {
				dto := assignment.CreateAssignmentDTO{ShiftType: "WEEKEND"}

				_, err := service.Create(manager, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
				details, ok := appErr.Details.(internal.ValidationErrors)
				Expect(ok).To(BeTrue())
				fields := []string{}
				for _, fe := range details.Errors {
					fields = append(fields, fe.Field)
				}
				Expect(fields).To(ContainElements("operator_id", "beat_id", "location_id", "supervisor_id", "shift_type"))
			})
		})

		Context("when a referenced entity does not exist", func() {
			It("should name the missing beat", func() {
				delete(directory.beats, 200)

				_, err := service.Create(manager, validDTO())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeBeatNotFound))
			})

			It("should reject a beat outside the given location", func() {
				directory.beats[200] = &locationDatamodel.Beat{ID: 200, LocationID: 999}

				_, err := service.Create(manager, validDTO())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})
		})

		Context("when the supervisor is outside the caller's scope", func() {
			It("should mask the exclusion as not-found", func() {
				resolver.scope = &hierarchy.Scope{SupervisorIDs: []int64{7}}

				_, err := service.Create(supervisor, validDTO())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
			})
		})

		Context("when the caller is an operator", func() {
			It("should be forbidden", func() {
				_, err := service.Create(hierarchy.Actor{PersonID: 9, Role: roles.RoleOperator}, validDTO())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
			})
		})
	})

	Describe("Approve", func() {
		var pending *assignment.Assignment

		BeforeEach(func() {
			var err error
			pending, err = service.Create(supervisor, validDTO())
			Expect(err).ToNot(HaveOccurred())
			directory.refreshedOperatorID = nil
		})

		It("should activate a pending assignment and stamp the approver", func() {
			result, err := service.Approve(manager, pending.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(assignment.StatusActive))
			Expect(*result.ApprovedBy).To(Equal(manager.PersonID))
			Expect(result.ApprovedAt).ToNot(BeNil())
			Expect(directory.refreshedOperatorID).ToNot(BeNil())
		})

		It("should report a conflict when the assignment is already active", func() {
			_, err := service.Approve(manager, pending.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Approve(manager, pending.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})

		It("should re-check the single-active invariant at approval time", func() {
			// a second pending filed before the first was approved
			second, err := service.Create(supervisor, validDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Approve(manager, pending.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Approve(manager, second.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
			Expect(appErr.Code).To(Equal(internal.ErrCodeActiveAssignment))
		})

		It("should refuse to approve a rejected assignment", func() {
			_, err := service.Reject(manager, pending.ID, assignment.RejectAssignmentDTO{Reason: "beat overstaffed"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Approve(manager, pending.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should deny supervisors approval authority", func() {
			_, err := service.Approve(supervisor, pending.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})

		It("should approve assignments for distinct operators concurrently without a false conflict", func() {
			directory.operators[101] = &personnel.Operator{ID: 101, PersonID: 11}
			secondDTO := validDTO()
			secondDTO.OperatorID = 101
			second, err := service.Create(supervisor, secondDTO)
			Expect(err).ToNot(HaveOccurred())

			var wg sync.WaitGroup
			approveErrs := make([]error, 2)
			wg.Add(2)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				_, approveErrs[0] = service.Approve(manager, pending.ID)
			}()
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				_, approveErrs[1] = service.Approve(manager, second.ID)
			}()
			wg.Wait()

			Expect(approveErrs[0]).ToNot(HaveOccurred())
			Expect(approveErrs[1]).ToNot(HaveOccurred())

			for _, id := range []int64{pending.ID, second.ID} {
				stored, err := mockRepo.GetByID(id)
				Expect(err).ToNot(HaveOccurred())
				Expect(stored.Status).To(Equal(assignment.StatusActive))
			}
		})

		It("should mask assignments outside the approver's scope as not-found", func() {
			generalSupervisor := hierarchy.Actor{PersonID: 5, Role: roles.RoleGeneralSupervisor}
			resolver.scope = &hierarchy.Scope{SupervisorIDs: []int64{12345}, IncludesActor: true}

			_, err := service.Approve(generalSupervisor, pending.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})
	})

	Describe("Reject", func() {
		var pending *assignment.Assignment

		BeforeEach(func() {
			var err error
			pending, err = service.Create(supervisor, validDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should require a non-blank reason", func() {
			_, err := service.Reject(manager, pending.ID, assignment.RejectAssignmentDTO{Reason: "   "})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingReason))
		})

		It("should move the assignment to REJECTED with the reason", func() {
			result, err := service.Reject(manager, pending.ID, assignment.RejectAssignmentDTO{Reason: "guarantor check failed"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(assignment.StatusRejected))
			Expect(*result.RejectionReason).To(Equal("guarantor check failed"))
			Expect(*result.ApprovedBy).To(Equal(manager.PersonID))
		})

		It("should refuse to reject an active assignment", func() {
			_, err := service.Approve(manager, pending.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Reject(manager, pending.ID, assignment.RejectAssignmentDTO{Reason: "too late"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("End", func() {
		It("should close an active assignment with an end date", func() {
			active, err := service.Create(manager, validDTO())
			Expect(err).ToNot(HaveOccurred())

			result, err := service.End(manager, active.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(assignment.StatusEnded))
			Expect(result.EndDate).ToNot(BeNil())
		})

		It("should clear the operator placement cache", func() {
			active, err := service.Create(manager, validDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.End(manager, active.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(directory.refreshedSupervisorID).To(BeNil())
			Expect(directory.refreshedLocationID).To(BeNil())
		})

		It("should refuse to end a pending assignment", func() {
			pending, err := service.Create(supervisor, validDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.End(manager, pending.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Reassign", func() {
		newPlacement := func() assignment.ReassignOperatorDTO {
			return assignment.ReassignOperatorDTO{
				BeatID:         201,
				LocationID:     301,
				SupervisorID:   401,
				ShiftType:      assignment.ShiftNight,
				AssignmentType: assignment.TypeTemporary,
			}
		}

		BeforeEach(func() {
			directory.supervisors[401] = &personnelDatamodel.SupervisorProfile{ID: 401}
			directory.locations[301] = &locationDatamodel.Location{ID: 301, IsActive: true}
			directory.beats[201] = &locationDatamodel.Beat{ID: 201, LocationID: 301, IsActive: true}
		})

		It("should fail when the operator has no active assignment", func() {
			_, err := service.Reassign(manager, 100, newPlacement())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})

		It("should end the current assignment and activate the replacement", func() {
			current, err := service.Create(manager, validDTO())
			Expect(err).ToNot(HaveOccurred())

			replacement, err := service.Reassign(manager, 100, newPlacement())

			Expect(err).ToNot(HaveOccurred())
			Expect(replacement.Status).To(Equal(assignment.StatusActive))
			Expect(replacement.BeatID).To(Equal(int64(201)))
			Expect(replacement.ID).ToNot(Equal(current.ID))

			ended, err := mockRepo.GetByID(current.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(ended.Status).To(Equal(assignment.StatusEnded))
			Expect(ended.EndDate).ToNot(BeNil())
		})

		It("should leave the current assignment ACTIVE when the replacement cannot be created", func() {
			current, err := service.Create(manager, validDTO())
			Expect(err).ToNot(HaveOccurred())

			mockRepo.txCreateError = errors.New("disk full")

			_, err = service.Reassign(manager, 100, newPlacement())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeUnavailable))

			still, err := mockRepo.GetByID(current.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(still.Status).To(Equal(assignment.StatusActive))
		})

		It("should validate the new placement before touching the current assignment", func() {
			current, err := service.Create(manager, validDTO())
			Expect(err).ToNot(HaveOccurred())

			bad := newPlacement()
			bad.BeatID = 77777

			_, err = service.Reassign(manager, 100, bad)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeBeatNotFound))

			still, err := mockRepo.GetByID(current.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(still.Status).To(Equal(assignment.StatusActive))
		})

		It("should mask a current assignment outside the caller's scope as not-found", func() {
			current, err := service.Create(manager, validDTO())
			Expect(err).ToNot(HaveOccurred())

			// scope covers the new target's supervisor but not the current one
			generalSupervisor := hierarchy.Actor{PersonID: 5, Role: roles.RoleGeneralSupervisor}
			resolver.scope = &hierarchy.Scope{SupervisorIDs: []int64{401}, IncludesActor: true}

			_, err = service.Reassign(generalSupervisor, 100, newPlacement())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))

			still, err := mockRepo.GetByID(current.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(still.Status).To(Equal(assignment.StatusActive))
		})

		It("should audit both the end and the create", func() {
			_, err := service.Create(manager, validDTO())
			Expect(err).ToNot(HaveOccurred())
			recorder.entries = nil

			_, err = service.Reassign(manager, 100, newPlacement())

			Expect(err).ToNot(HaveOccurred())
			actions := []string{}
			for _, e := range recorder.entries {
				actions = append(actions, e.Action)
			}
			Expect(actions).To(ConsistOf("assignment.end", "assignment.create"))
		})
	})

	Describe("listing", func() {
		BeforeEach(func() {
			_, err := service.Create(supervisor, validDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should filter by the resolved scope", func() {
			resolver.scope = &hierarchy.Scope{SupervisorIDs: []int64{12345}}

			resp, err := service.ListPending(secretary, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Assignments).To(BeEmpty())
		})

		It("should return pending assignments inside the scope", func() {
			resolver.scope = &hierarchy.Scope{SupervisorIDs: []int64{400}}

			resp, err := service.ListPending(secretary, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Assignments).To(HaveLen(1))
			Expect(resp.UsedFallback).To(BeFalse())
		})

		It("should surface the fallback flag from scope resolution", func() {
			resolver.scope = &hierarchy.Scope{SupervisorIDs: []int64{400}, UsedFallback: true}

			resp, err := service.ListPending(hierarchy.Actor{PersonID: 5, Role: roles.RoleGeneralSupervisor}, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.UsedFallback).To(BeTrue())
		})
	})

	Describe("event publishing", func() {
		It("should publish a created event with the assignment identity", func() {
			result, err := service.Create(manager, validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeAssignmentCreated))

			ev, ok := publisher.published[0].(*events.AssignmentEvent)
			Expect(ok).To(BeTrue())
			Expect(ev.AssignmentID).To(Equal(result.ID))
			Expect(ev.Status).To(Equal(assignment.StatusActive))
		})

		It("should not fail the transition when publishing fails", func() {
			publisher.err = errors.New("bus down")

			result, err := service.Create(manager, validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(assignment.StatusActive))
		})
	})
})
