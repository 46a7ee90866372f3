package middleware

import (
	"fmt"
	"net/http"

	helper "github.com/dineflow/Restaurant_POS_Backend/helper"
)

// RequireRoles gates a handler to the given staff roles. Must run after
// Authentication so the role claim is present in the request context.
func RequireRoles(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(w http.ResponseWriter, r *http.Request) {
		_, _, _, role, _ := GetUserFromContext(r)
		if role == "" {
			helper.RespondError(w, http.StatusUnauthorized, helper.ErrUnauthorized, "Authentication required")
			return
		}
		if !allowed[role] {
			helper.RespondError(w, http.StatusForbidden, helper.ErrForbidden, fmt.Sprintf("Role '%s' is not authorized", role))
			return
		}
		next(w, r)
	}
}
