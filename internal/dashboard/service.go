package dashboard

import (
	"log/slog"
	"time"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/core/roles"
	"github.com/guardforce/workforce-management/internal/hierarchy"
)

type ScopeResolver interface {
	ResolveSubordinateScope(actor hierarchy.Actor) (*hierarchy.Scope, error)
}

type Service struct {
	repo   Repository
	scopes ScopeResolver
	logger *slog.Logger
}

func NewService(repo Repository, scopes ScopeResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		scopes: scopes,
		logger: logger,
	}
}

// GetOverview aggregates assignment counts and per-location rollups within
// the caller's resolved scope.
func (s *Service) GetOverview(actor hierarchy.Actor) (*Overview, error) {
	if !roles.Can(actor.Role, roles.OpViewDashboard) {
		return nil, internal.NewForbiddenError("role cannot view the dashboard", internal.ErrCodeUnauthorizedAccess)
	}

	scope, err := s.scopes.ResolveSubordinateScope(actor)
	if err != nil {
		return nil, err
	}

	if scope.UsedFallback {
		s.logger.Warn("dashboard scope resolved via fallback",
			"actor_id", actor.PersonID,
			"role", actor.Role)
	}

	counts, err := s.repo.StatusCounts(scope.SupervisorIDs, scope.Unrestricted)
	if err != nil {
		return nil, internal.NewStoreUnavailableError(err)
	}

	rollups, err := s.repo.LocationRollups(scope.SupervisorIDs, scope.Unrestricted)
	if err != nil {
		return nil, internal.NewStoreUnavailableError(err)
	}

	return &Overview{
		GeneratedAt:  time.Now(),
		Scope: ScopeSummary{
			SupervisorCount: len(scope.SupervisorIDs),
			Unrestricted:    scope.Unrestricted,
			UsedFallback:    scope.UsedFallback,
		},
		StatusCounts: counts,
		Locations:    rollups,
	}, nil
}
