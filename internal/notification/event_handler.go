package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guardforce/workforce-management/internal/core/events"
)

// EventHandler turns domain events into outbound notifications. It subscribes
// to the in-process bus; every handler is fire-and-forget.
type EventHandler struct {
	mailer Mailer
	logger *slog.Logger
}

func NewEventHandler(mailer Mailer, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		mailer: mailer,
		logger: logger,
	}
}

// RegisterHandlers subscribes the notification handlers to the event bus.
func (h *EventHandler) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeOperatorRegistered, h.HandleOperatorRegistered)
	bus.Subscribe(events.EventTypeAssignmentCreated, h.HandleAssignmentTransition)
	bus.Subscribe(events.EventTypeAssignmentApproved, h.HandleAssignmentTransition)
	bus.Subscribe(events.EventTypeAssignmentRejected, h.HandleAssignmentTransition)
	bus.Subscribe(events.EventTypeAssignmentEnded, h.HandleAssignmentTransition)
}

// HandleOperatorRegistered sends the welcome message with first-login
// instructions. The temporary password travels only through this handler and
// is never logged.
func (h *EventHandler) HandleOperatorRegistered(ctx context.Context, event events.Event) error {
	registered, ok := event.(*events.OperatorRegisteredEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	subject := "Welcome to the workforce platform"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour operator account has been created.\nEmployee ID: %s\nTemporary password: %s\n\nPlease sign in and change your password.",
		registered.Name, registered.EmployeeID, registered.TempPassword)

	if err := h.mailer.Send(ctx, registered.Email, subject, body); err != nil {
		h.logger.Error("failed to send welcome notification",
			"person_id", registered.PersonID,
			"error", err)
		return err
	}

	h.logger.Info("welcome notification sent", "person_id", registered.PersonID)
	return nil
}

// HandleAssignmentTransition logs assignment lifecycle changes for the ops
// feed. A real deployment would fan these out to supervisors.
func (h *EventHandler) HandleAssignmentTransition(ctx context.Context, event events.Event) error {
	transition, ok := event.(*events.AssignmentEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	h.logger.InfoContext(ctx, "assignment transition notification",
		"event_type", transition.EventType(),
		"assignment_id", transition.AssignmentID,
		"operator_id", transition.OperatorID,
		"status", transition.Status)
	return nil
}
