package middleware

import (
	"context"
	"net/http"
	"strings"

	helper "github.com/dineflow/Restaurant_POS_Backend/helper"
)

// Context keys to store user information
type contextKey string

const (
	UidKey      contextKey = "uid"
	EmailKey    contextKey = "email"
	NameKey     contextKey = "name"
	RoleKey     contextKey = "role"
	BranchIdKey contextKey = "branch_id"
)

// Authentication middleware for Gorilla Mux
func Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientToken := r.Header.Get("Authorization")
		if clientToken == "" {
			helper.RespondError(w, http.StatusUnauthorized, helper.ErrUnauthorized, "No Authorization header provided")
			return
		}

		// Token format should be "Bearer <token>"
		tokenParts := strings.Split(clientToken, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			helper.RespondError(w, http.StatusUnauthorized, helper.ErrUnauthorized, "Invalid Authorization format")
			return
		}

		tokenString := tokenParts[1]
		claims, errMsg := helper.ValidateToken(tokenString)
		if errMsg != "" {
			helper.RespondError(w, http.StatusUnauthorized, helper.ErrUnauthorized, errMsg)
			return
		}

		// Store user details in the request context
		ctx := context.WithValue(r.Context(), UidKey, claims.Uid)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		ctx = context.WithValue(ctx, NameKey, claims.Name)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, BranchIdKey, claims.BranchId)

		// Pass modified request with context to the next handler
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext retrieves user data from the request context
func GetUserFromContext(r *http.Request) (uid, email, name, role, branchId string) {
	uid, _ = r.Context().Value(UidKey).(string)
	email, _ = r.Context().Value(EmailKey).(string)
	name, _ = r.Context().Value(NameKey).(string)
	role, _ = r.Context().Value(RoleKey).(string)
	branchId, _ = r.Context().Value(BranchIdKey).(string)
	return
}
