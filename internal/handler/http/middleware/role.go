package middleware

import (
	"net/http"

	"github.com/agencydesk/crm-backend-go/internal/domain/auth"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"github.com/agencydesk/crm-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func roleFromClaims(r *http.Request) (user.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", auth.ErrInvalidToken
	}

	return user.Role(role), nil
}

// AdminOnly restricts the route to admin users.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromClaims(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ApproverOnly restricts the route to supervisors and admins.
func ApproverOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromClaims(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if role != user.RoleAdmin && role != user.RoleSupervisor {
			response.HandleError(w, user.ErrApproverRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
