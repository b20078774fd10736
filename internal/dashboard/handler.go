package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/guardforce/workforce-management/internal/auth"
	"github.com/guardforce/workforce-management/internal/hierarchy"
	"github.com/guardforce/workforce-management/internal/transport"
	"github.com/guardforce/workforce-management/pkg/logger"
)

type ServiceAPI interface {
	GetOverview(actor hierarchy.Actor) (*Overview, error)
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

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	overview, err := h.Service.GetOverview(user.Actor())
	if err != nil {
		h.Logger.Error("GetOverview: service error", "error", err, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, overview)
}
