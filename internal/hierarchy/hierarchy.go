package hierarchy

import (
	"time"

	personnelDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/personnel"
	"github.com/guardforce/workforce-management/internal/core/roles"
)

// Actor identifies the person a scope resolution runs for.
type Actor struct {
	PersonID int64      `json:"person_id"`
	Role     roles.Role `json:"role"`
	Name     string     `json:"name"`
}

// Scope is the set of supervisor profile IDs the actor is authorized to see
// and act on. UsedFallback marks a degraded resolution where the hierarchy
// link was empty and every approved supervisor was returned instead; callers
// log it so operations staff can detect the system running on fallback data.
type Scope struct {
	SupervisorIDs []int64 `json:"supervisor_ids"`
	IncludesActor bool    `json:"includes_actor"`
	Unrestricted  bool    `json:"unrestricted"`
	UsedFallback  bool    `json:"used_fallback"`
}

// Contains reports whether a supervisor profile ID is inside the scope.
func (s Scope) Contains(supervisorID int64) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.SupervisorIDs {
		if id == supervisorID {
			return true
		}
	}
	return false
}

type Supervisor struct {
	ID                  int64     `json:"id"`
	PersonID            int64     `json:"person_id"`
	SupervisorType      string    `json:"supervisor_type"`
	GeneralSupervisorID *int64    `json:"general_supervisor_id,omitempty"`
	LocationID          *int64    `json:"location_id,omitempty"`
	ApprovalStatus      string    `json:"approval_status"`
	CreatedAt           time.Time `json:"created_at"`
}

func (s *Supervisor) IsApproved() bool {
	return s.ApprovalStatus == personnelDatamodel.ApprovalStatusApproved
}

func FromDataModel(p *personnelDatamodel.SupervisorProfile) *Supervisor {
	return &Supervisor{
		ID:                  p.ID,
		PersonID:            p.PersonID,
		SupervisorType:      p.SupervisorType,
		GeneralSupervisorID: p.GeneralSupervisorID,
		LocationID:          p.LocationID,
		ApprovalStatus:      p.ApprovalStatus,
		CreatedAt:           p.CreatedAt,
	}
}

func FromDataModelSlice(profiles []*personnelDatamodel.SupervisorProfile) []*Supervisor {
	result := make([]*Supervisor, len(profiles))
	for i, p := range profiles {
		result[i] = FromDataModel(p)
	}
	return result
}
