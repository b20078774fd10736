package assignment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/guardforce/workforce-management/internal/auth"
	"github.com/guardforce/workforce-management/internal/hierarchy"
	"github.com/guardforce/workforce-management/internal/transport"
	"github.com/guardforce/workforce-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(actor hierarchy.Actor, dto CreateAssignmentDTO) (*Assignment, error)
	Approve(actor hierarchy.Actor, assignmentID int64) (*Assignment, error)
	Reject(actor hierarchy.Actor, assignmentID int64, dto RejectAssignmentDTO) (*Assignment, error)
	Reassign(actor hierarchy.Actor, operatorID int64, dto ReassignOperatorDTO) (*Assignment, error)
	End(actor hierarchy.Actor, assignmentID int64) (*Assignment, error)
	ListPending(actor hierarchy.Actor, limit, offset int) (*ListResponse, error)
	ListActive(actor hierarchy.Actor, limit, offset int) (*ListResponse, error)
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

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateAssignment: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAssignment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(user.Actor(), dto)
	if err != nil {
		h.Logger.Error("CreateAssignment: service error", "error", err, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateAssignment: assignment created",
		"assignment_id", created.ID,
		"operator_id", created.OperatorID,
		"status", created.Status,
		"actor_id", user.ID)

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) ApproveAssignment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assignmentID, err := h.parseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment ID")
		return
	}

	approved, err := h.Service.Approve(user.Actor(), assignmentID)
	if err != nil {
		h.Logger.Error("ApproveAssignment: service error", "error", err, "assignment_id", assignmentID, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, approved)
}

func (h *Handler) RejectAssignment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assignmentID, err := h.parseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment ID")
		return
	}

	var dto RejectAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RejectAssignment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rejected, err := h.Service.Reject(user.Actor(), assignmentID, dto)
	if err != nil {
		h.Logger.Error("RejectAssignment: service error", "error", err, "assignment_id", assignmentID, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rejected)
}

func (h *Handler) EndAssignment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assignmentID, err := h.parseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment ID")
		return
	}

	ended, err := h.Service.End(user.Actor(), assignmentID)
	if err != nil {
		h.Logger.Error("EndAssignment: service error", "error", err, "assignment_id", assignmentID, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ended)
}

func (h *Handler) ReassignOperator(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	operatorID, err := h.parseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid operator ID")
		return
	}

	var dto ReassignOperatorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ReassignOperator: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	replacement, err := h.Service.Reassign(user.Actor(), operatorID, dto)
	if err != nil {
		h.Logger.Error("ReassignOperator: service error", "error", err, "operator_id", operatorID, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ReassignOperator: operator moved",
		"operator_id", operatorID,
		"replacement_id", replacement.ID,
		"actor_id", user.ID)

	h.WriteJSON(w, http.StatusOK, replacement)
}

func (h *Handler) ListPendingAssignments(w http.ResponseWriter, r *http.Request) {
	h.listAssignments(w, r, h.Service.ListPending)
}

func (h *Handler) ListActiveAssignments(w http.ResponseWriter, r *http.Request) {
	h.listAssignments(w, r, h.Service.ListActive)
}

func (h *Handler) listAssignments(w http.ResponseWriter, r *http.Request, list func(hierarchy.Actor, int, int) (*ListResponse, error)) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	resp, err := list(user.Actor(), limit, offset)
	if err != nil {
		h.Logger.Error("listAssignments: service error", "error", err, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
