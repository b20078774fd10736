package audit

import (
	"encoding/json"
	"log/slog"

	auditDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/audit"
)

// Repository is the append-only event store.
type Repository interface {
	Create(event *auditDatamodel.AuditEvent) error
}

// Recorder writes audit trail entries for state transitions. Failures are
// logged and never fail the originating transition.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

func (r *Recorder) Record(actorID int64, action, entityType string, entityID int64, metadata map[string]interface{}) {
	var payload string
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			r.logger.Error("failed to marshal audit metadata",
				"action", action,
				"entity_id", entityID,
				"error", err)
		} else {
			payload = string(raw)
		}
	}

	event := &auditDatamodel.AuditEvent{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   payload,
	}

	if err := r.repo.Create(event); err != nil {
		r.logger.Error("failed to persist audit event",
			"actor_id", actorID,
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err)
		return
	}

	r.logger.Debug("audit event recorded",
		"actor_id", actorID,
		"action", action,
		"entity_type", entityType,
		"entity_id", entityID)
}
