package auth

import (
	"log/slog"
	"net/http"

	"github.com/guardforce/workforce-management/internal/core/roles"
)

// CapabilityAuthorization gates handlers on the role capability table. It is
// consulted once per inbound command; handlers and services never compare
// role strings themselves.
type CapabilityAuthorization struct {
	logger *slog.Logger
}

func NewCapabilityAuthorization(logger *slog.Logger) *CapabilityAuthorization {
	return &CapabilityAuthorization{logger: logger}
}

func (ca *CapabilityAuthorization) Require(op roles.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.Can(op) {
				ca.logger.WarnContext(r.Context(), "access denied: role lacks capability",
					"person_id", user.ID,
					"role", user.Role,
					"operation", op)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ca *CapabilityAuthorization) RequireApproveAssignment() func(http.Handler) http.Handler {
	return ca.Require(roles.OpApproveAssignment)
}

func (ca *CapabilityAuthorization) RequireRejectAssignment() func(http.Handler) http.Handler {
	return ca.Require(roles.OpRejectAssignment)
}

func (ca *CapabilityAuthorization) RequireReassignOperator() func(http.Handler) http.Handler {
	return ca.Require(roles.OpReassignOperator)
}

func (ca *CapabilityAuthorization) RequireRegisterOperator() func(http.Handler) http.Handler {
	return ca.Require(roles.OpRegisterOperator)
}
