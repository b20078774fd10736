package hierarchy_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/core/roles"
	"github.com/guardforce/workforce-management/internal/hierarchy"
)

func TestHierarchy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Hierarchy Service Suite")
}

// Mock repository for testing
type mockHierarchyRepository struct {
	profilesByPerson    map[int64]*hierarchy.Supervisor
	subordinates        map[int64][]*hierarchy.Supervisor
	supervisors         []*hierarchy.Supervisor
	approvedSupervisors []*hierarchy.Supervisor
	profileError        error
	subordinatesError   error
	supervisorsError    error
	approvedError       error
}

func newMockHierarchyRepository() *mockHierarchyRepository {
	return &mockHierarchyRepository{
		profilesByPerson: make(map[int64]*hierarchy.Supervisor),
		subordinates:     make(map[int64][]*hierarchy.Supervisor),
	}
}

func (m *mockHierarchyRepository) GetProfileByPersonID(personID int64) (*hierarchy.Supervisor, error) {
	if m.profileError != nil {
		return nil, m.profileError
	}
	profile, ok := m.profilesByPerson[personID]
	if !ok {
		return nil, internal.NewNotFoundError("supervisor profile not found", internal.ErrCodeProfileNotFound)
	}
	return profile, nil
}

func (m *mockHierarchyRepository) GetSubordinates(generalSupervisorID int64) ([]*hierarchy.Supervisor, error) {
	if m.subordinatesError != nil {
		return nil, m.subordinatesError
	}
	return m.subordinates[generalSupervisorID], nil
}

func (m *mockHierarchyRepository) GetSupervisors() ([]*hierarchy.Supervisor, error) {
	if m.supervisorsError != nil {
		return nil, m.supervisorsError
	}
	return m.supervisors, nil
}

func (m *mockHierarchyRepository) GetApprovedSupervisors() ([]*hierarchy.Supervisor, error) {
	if m.approvedError != nil {
		return nil, m.approvedError
	}
	return m.approvedSupervisors, nil
}

var _ = Describe("HierarchyService", func() {
	var (
		service  *hierarchy.Service
		mockRepo *mockHierarchyRepository
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockHierarchyRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = hierarchy.NewService(mockRepo, nil, logger)
	})

	Describe("ResolveSubordinateScope", func() {
		Context("when the actor is a manager", func() {
			It("should return an unrestricted scope over every supervisor", func() {
				mockRepo.supervisors = []*hierarchy.Supervisor{
					{ID: 10}, {ID: 11}, {ID: 12},
				}

				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 1, Role: roles.RoleManager})

				Expect(err).ToNot(HaveOccurred())
				Expect(scope.Unrestricted).To(BeTrue())
				Expect(scope.SupervisorIDs).To(HaveLen(3))
				Expect(scope.Contains(999)).To(BeTrue())
			})
		})

		Context("when the actor is a supervisor", func() {
			It("should scope to the actor's own profile only", func() {
				mockRepo.profilesByPerson[42] = &hierarchy.Supervisor{ID: 7, PersonID: 42}

				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 42, Role: roles.RoleSupervisor})

				Expect(err).ToNot(HaveOccurred())
				Expect(scope.SupervisorIDs).To(Equal([]int64{7}))
				Expect(scope.IncludesActor).To(BeTrue())
				Expect(scope.Unrestricted).To(BeFalse())
				Expect(scope.Contains(7)).To(BeTrue())
				Expect(scope.Contains(8)).To(BeFalse())
			})
		})

		Context("when the actor is a general supervisor with linked subordinates", func() {
			It("should return the linked team plus the actor's own profile", func() {
				mockRepo.profilesByPerson[50] = &hierarchy.Supervisor{ID: 5, PersonID: 50}
				mockRepo.subordinates[5] = []*hierarchy.Supervisor{
					{ID: 21}, {ID: 22},
				}

				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 50, Role: roles.RoleGeneralSupervisor})

				Expect(err).ToNot(HaveOccurred())
				Expect(scope.UsedFallback).To(BeFalse())
				Expect(scope.SupervisorIDs).To(ConsistOf(int64(21), int64(22), int64(5)))
				Expect(scope.IncludesActor).To(BeTrue())
			})

			It("should not duplicate the actor's profile when it is already linked", func() {
				mockRepo.profilesByPerson[50] = &hierarchy.Supervisor{ID: 5, PersonID: 50}
				mockRepo.subordinates[5] = []*hierarchy.Supervisor{
					{ID: 5}, {ID: 21},
				}

				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 50, Role: roles.RoleGeneralSupervisor})

				Expect(err).ToNot(HaveOccurred())
				Expect(scope.SupervisorIDs).To(ConsistOf(int64(5), int64(21)))
			})
		})

		Context("when the general supervisor has no hierarchy link", func() {
			It("should degrade to all approved supervisors and flag the fallback", func() {
				mockRepo.profilesByPerson[50] = &hierarchy.Supervisor{ID: 5, PersonID: 50}
				mockRepo.approvedSupervisors = []*hierarchy.Supervisor{
					{ID: 31}, {ID: 32}, {ID: 33},
				}

				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 50, Role: roles.RoleGeneralSupervisor})

				Expect(err).ToNot(HaveOccurred())
				Expect(scope.UsedFallback).To(BeTrue())
				Expect(scope.SupervisorIDs).To(ConsistOf(int64(31), int64(32), int64(33), int64(5)))
			})

			It("should still include the actor's own profile when the fallback is empty", func() {
				mockRepo.profilesByPerson[50] = &hierarchy.Supervisor{ID: 5, PersonID: 50}

				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 50, Role: roles.RoleGeneralSupervisor})

				Expect(err).ToNot(HaveOccurred())
				Expect(scope.UsedFallback).To(BeFalse())
				Expect(scope.SupervisorIDs).To(Equal([]int64{5}))
			})

			It("should yield an empty team under the NoFallback policy", func() {
				service = hierarchy.NewService(mockRepo, hierarchy.NoFallback{}, logger)
				mockRepo.profilesByPerson[50] = &hierarchy.Supervisor{ID: 5, PersonID: 50}
				mockRepo.approvedSupervisors = []*hierarchy.Supervisor{{ID: 31}}

				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 50, Role: roles.RoleGeneralSupervisor})

				Expect(err).ToNot(HaveOccurred())
				Expect(scope.UsedFallback).To(BeFalse())
				Expect(scope.SupervisorIDs).To(Equal([]int64{5}))
			})
		})

		Context("when the general supervisor has no profile record", func() {
			It("should surface a not-found error instead of falling back", func() {
				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 99, Role: roles.RoleGeneralSupervisor})

				Expect(scope).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
			})
		})

		Context("when the actor is a secretary", func() {
			It("should return the approved supervisor directory", func() {
				mockRepo.approvedSupervisors = []*hierarchy.Supervisor{
					{ID: 31}, {ID: 32},
				}

				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 3, Role: roles.RoleSecretary})

				Expect(err).ToNot(HaveOccurred())
				Expect(scope.SupervisorIDs).To(ConsistOf(int64(31), int64(32)))
				Expect(scope.IncludesActor).To(BeFalse())
			})
		})

		Context("when the actor is an operator", func() {
			It("should be forbidden", func() {
				scope, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 4, Role: roles.RoleOperator})

				Expect(scope).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
			})
		})

		Context("when the supervisor directory is unavailable", func() {
			It("should report the store as unavailable", func() {
				mockRepo.supervisorsError = errors.New("connection refused")

				_, err := service.ResolveSubordinateScope(hierarchy.Actor{PersonID: 1, Role: roles.RoleAdmin})

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeUnavailable))
			})
		})
	})
})
