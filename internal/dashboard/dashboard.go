package dashboard

import "time"

// Overview is the manager-facing rollup of assignment state within the
// caller's visibility scope.
type Overview struct {
	GeneratedAt  time.Time        `json:"generated_at"`
	Scope        ScopeSummary     `json:"scope"`
	StatusCounts map[string]int64 `json:"status_counts"`
	Locations    []LocationRollup `json:"locations"`
}

// ScopeSummary describes how the counts were scoped, so a consumer can tell
// an unrestricted view from a hierarchy-limited one.
type ScopeSummary struct {
	SupervisorCount int  `json:"supervisor_count"`
	Unrestricted    bool `json:"unrestricted"`
	UsedFallback    bool `json:"used_fallback"`
}

// LocationRollup aggregates assignment counts per guarded location.
type LocationRollup struct {
	LocationID        int64  `json:"location_id"`
	LocationName      string `json:"location_name"`
	ActiveCount       int64  `json:"active_count"`
	PendingCount      int64  `json:"pending_count"`
	RequiredHeadcount int64  `json:"required_headcount"`
}

// Repository aggregates over the assignment store. Scope narrowing happens in
// SQL; an empty supervisor list with a restricted scope yields empty results.
type Repository interface {
	StatusCounts(supervisorIDs []int64, unrestricted bool) (map[string]int64, error)
	LocationRollups(supervisorIDs []int64, unrestricted bool) ([]LocationRollup, error)
}
