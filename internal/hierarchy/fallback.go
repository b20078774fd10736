package hierarchy

// FallbackPolicy decides what a general supervisor sees when the primary
// general_supervisor_id link query comes back empty. The legacy data predates
// the hierarchy link, so an empty result usually means unmigrated records
// rather than a supervisor with no team.
type FallbackPolicy interface {
	// Name identifies the policy in logs and telemetry.
	Name() string
	// Expand returns the degraded supervisor set.
	Expand() ([]*Supervisor, error)
}

// ApprovedSupervisorsFallback degrades to every APPROVED supervisor-type
// profile. This deliberately weakens the authorization boundary between
// general supervisors to keep assignment screens populated during migration
// gaps; resolutions that take this path are flagged in the returned Scope.
type ApprovedSupervisorsFallback struct {
	repo Repository
}

func NewApprovedSupervisorsFallback(repo Repository) *ApprovedSupervisorsFallback {
	return &ApprovedSupervisorsFallback{repo: repo}
}

func (f *ApprovedSupervisorsFallback) Name() string {
	return "approved_supervisors"
}

func (f *ApprovedSupervisorsFallback) Expand() ([]*Supervisor, error) {
	return f.repo.GetApprovedSupervisors()
}

// NoFallback disables degraded resolution; an empty hierarchy link yields an
// empty scope. Intended for after the historical data is fully migrated.
type NoFallback struct{}

func (NoFallback) Name() string { return "none" }

func (NoFallback) Expand() ([]*Supervisor, error) {
	return nil, nil
}
