package registration

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/guardforce/workforce-management/internal/auth"
	"github.com/guardforce/workforce-management/internal/hierarchy"
	"github.com/guardforce/workforce-management/internal/transport"
	"github.com/guardforce/workforce-management/pkg/logger"
)

type ServiceAPI interface {
	RegisterOperator(actor hierarchy.Actor, dto RegisterOperatorDTO) (*RegisterResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) RegisterOperator(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("RegisterOperator: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto RegisterOperatorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RegisterOperator: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.RegisterOperator(user.Actor(), dto)
	if err != nil {
		h.Logger.Error("RegisterOperator: service error", "error", err, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RegisterOperator: operator registered",
		"person_id", result.Person.ID,
		"employee_id", result.EmployeeID,
		"assignment_created", result.AssignmentCreated,
		"actor_id", user.ID)

	h.WriteJSON(w, http.StatusCreated, result)
}
