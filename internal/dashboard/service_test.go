package dashboard_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/core/roles"
	"github.com/guardforce/workforce-management/internal/dashboard"
	"github.com/guardforce/workforce-management/internal/hierarchy"
)

func TestDashboard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Service Suite")
}

type mockDashboardRepository struct {
	statusCounts map[string]int64
	rollups      []dashboard.LocationRollup
	countsError  error
	rollupsError error

	lastSupervisorIDs []int64
	lastUnrestricted  bool
}

func (m *mockDashboardRepository) StatusCounts(supervisorIDs []int64, unrestricted bool) (map[string]int64, error) {
	if m.countsError != nil {
		return nil, m.countsError
	}
	m.lastSupervisorIDs = supervisorIDs
	m.lastUnrestricted = unrestricted
	return m.statusCounts, nil
}

func (m *mockDashboardRepository) LocationRollups(supervisorIDs []int64, unrestricted bool) ([]dashboard.LocationRollup, error) {
	if m.rollupsError != nil {
		return nil, m.rollupsError
	}
	return m.rollups, nil
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

var _ = Describe("DashboardService", func() {
	var (
		service  *dashboard.Service
		mockRepo *mockDashboardRepository
		resolver *mockScopeResolver
	)

	manager := hierarchy.Actor{PersonID: 1, Role: roles.RoleManager}

	BeforeEach(func() {
		mockRepo = &mockDashboardRepository{
			statusCounts: map[string]int64{"ACTIVE": 12, "PENDING": 3},
			rollups: []dashboard.LocationRollup{
				{LocationID: 300, LocationName: "HQ-EAST", ActiveCount: 8, PendingCount: 1, RequiredHeadcount: 10},
			},
		}
		resolver = &mockScopeResolver{
			scope: &hierarchy.Scope{SupervisorIDs: []int64{7, 8}, Unrestricted: false},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = dashboard.NewService(mockRepo, resolver, logger)
	})

	Describe("GetOverview", func() {
		It("should aggregate counts and rollups within the resolved scope", func() {
			overview, err := service.GetOverview(manager)

			Expect(err).ToNot(HaveOccurred())
			Expect(overview.StatusCounts).To(HaveKeyWithValue("ACTIVE", int64(12)))
			Expect(overview.Locations).To(HaveLen(1))
			Expect(overview.Locations[0].LocationName).To(Equal("HQ-EAST"))
			Expect(overview.GeneratedAt).ToNot(BeZero())

			Expect(mockRepo.lastSupervisorIDs).To(Equal([]int64{7, 8}))
			Expect(mockRepo.lastUnrestricted).To(BeFalse())
		})

		It("should summarize how the scope was resolved", func() {
			resolver.scope = &hierarchy.Scope{SupervisorIDs: []int64{7}, UsedFallback: true}

			overview, err := service.GetOverview(manager)

			Expect(err).ToNot(HaveOccurred())
			Expect(overview.Scope.SupervisorCount).To(Equal(1))
			Expect(overview.Scope.UsedFallback).To(BeTrue())
			Expect(overview.Scope.Unrestricted).To(BeFalse())
		})

		It("should deny operators", func() {
			overview, err := service.GetOverview(hierarchy.Actor{PersonID: 4, Role: roles.RoleOperator})

			Expect(overview).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})

		It("should propagate scope resolution failures untouched", func() {
			resolver.err = internal.NewNotFoundError("supervisor profile not found", internal.ErrCodeProfileNotFound)

			_, err := service.GetOverview(manager)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeProfileNotFound))
		})

		It("should report the store as unavailable when aggregation fails", func() {
			mockRepo.countsError = errors.New("connection reset")

			_, err := service.GetOverview(manager)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeUnavailable))
		})
	})
})
