package location

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/guardforce/workforce-management/internal/transport"
	"github.com/guardforce/workforce-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetActiveLocations() ([]LocationResponse, error)
	GetBeatsForLocation(locationID int64) ([]*Beat, error)
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

func (h *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.GetActiveLocations()
	if err != nil {
		h.Logger.Error("GetLocations: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"locations": locations,
	})
}

func (h *Handler) GetLocationBeats(w http.ResponseWriter, r *http.Request) {
	locationIDStr := chi.URLParam(r, "id")
	locationID, err := strconv.ParseInt(locationIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetLocationBeats: invalid location ID", "id", locationIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid location ID")
		return
	}

	beats, err := h.Service.GetBeatsForLocation(locationID)
	if err != nil {
		h.Logger.Error("GetLocationBeats: service error", "error", err, "location_id", locationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"beats": beats,
	})
}
