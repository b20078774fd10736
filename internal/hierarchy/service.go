package hierarchy

import (
	"log/slog"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/core/roles"
)

// Repository defines the supervisor directory reads the resolver needs.
type Repository interface {
	GetProfileByPersonID(personID int64) (*Supervisor, error)
	GetSubordinates(generalSupervisorID int64) ([]*Supervisor, error)
	GetSupervisors() ([]*Supervisor, error)
	GetApprovedSupervisors() ([]*Supervisor, error)
}

// Service resolves which supervisors an acting person is authorized to see.
type Service struct {
	repo     Repository
	fallback FallbackPolicy
	logger   *slog.Logger
}

func NewService(repo Repository, fallback FallbackPolicy, logger *slog.Logger) *Service {
	if fallback == nil {
		fallback = NewApprovedSupervisorsFallback(repo)
	}
	return &Service{
		repo:     repo,
		fallback: fallback,
		logger:   logger,
	}
}

// ResolveSubordinateScope returns the supervisor profile IDs visible to the
// actor. Managers, directors and admins get unrestricted scope. General
// supervisors get their linked subordinates, degrading through the fallback
// policy when the link query is empty; their own profile ID is always in
// scope because operators can be registered directly under them. A general
// supervisor without a profile record is an error, never a silent fallback.
func (s *Service) ResolveSubordinateScope(actor Actor) (*Scope, error) {
	if roles.UnrestrictedScope(actor.Role) {
		supervisors, err := s.repo.GetSupervisors()
		if err != nil {
			return nil, internal.NewStoreUnavailableError(err)
		}
		return &Scope{
			SupervisorIDs: supervisorIDs(supervisors),
			Unrestricted:  true,
		}, nil
	}

	switch actor.Role {
	case roles.RoleGeneralSupervisor:
		return s.resolveGeneralSupervisorScope(actor)
	case roles.RoleSupervisor:
		profile, err := s.repo.GetProfileByPersonID(actor.PersonID)
		if err != nil {
			return nil, err
		}
		return &Scope{
			SupervisorIDs: []int64{profile.ID},
			IncludesActor: true,
		}, nil
	case roles.RoleSecretary:
		// The registration desk needs the full approved directory to file
		// placements, without any write authority of its own.
		supervisors, err := s.repo.GetApprovedSupervisors()
		if err != nil {
			return nil, internal.NewStoreUnavailableError(err)
		}
		return &Scope{SupervisorIDs: supervisorIDs(supervisors)}, nil
	default:
		s.logger.Warn("scope resolution denied for role",
			"person_id", actor.PersonID,
			"role", actor.Role)
		return nil, internal.NewForbiddenError("role has no subordinate scope", internal.ErrCodeUnauthorizedAccess)
	}
}

func (s *Service) resolveGeneralSupervisorScope(actor Actor) (*Scope, error) {
	profile, err := s.repo.GetProfileByPersonID(actor.PersonID)
	if err != nil {
		s.logger.Error("general supervisor has no profile",
			"person_id", actor.PersonID,
			"error", err)
		return nil, err
	}

	subordinates, err := s.repo.GetSubordinates(profile.ID)
	if err != nil {
		return nil, internal.NewStoreUnavailableError(err)
	}

	usedFallback := false
	if len(subordinates) == 0 {
		subordinates, err = s.fallback.Expand()
		if err != nil {
			return nil, internal.NewStoreUnavailableError(err)
		}
		usedFallback = len(subordinates) > 0
		s.logger.Warn("hierarchy link empty, resolved through fallback policy",
			"person_id", actor.PersonID,
			"supervisor_profile_id", profile.ID,
			"fallback_policy", s.fallback.Name(),
			"used_fallback", usedFallback,
			"fallback_count", len(subordinates))
	}

	ids := supervisorIDs(subordinates)
	if !containsID(ids, profile.ID) {
		ids = append(ids, profile.ID)
	}

	return &Scope{
		SupervisorIDs: ids,
		IncludesActor: true,
		UsedFallback:  usedFallback,
	}, nil
}

func supervisorIDs(supervisors []*Supervisor) []int64 {
	ids := make([]int64, len(supervisors))
	for i, sv := range supervisors {
		ids[i] = sv.ID
	}
	return ids
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
