package helper

import (
	"encoding/json"
	"net/http"
)

// Machine-readable error kinds. Every failure response carries one of these
// next to the human-readable message so clients never parse message text.
const (
	ErrBadRequest        = "BAD_REQUEST"
	ErrNotFound          = "NOT_FOUND"
	ErrConflict          = "CONFLICT"
	ErrUnauthorized      = "UNAUTHORIZED"
	ErrForbidden         = "FORBIDDEN"
	ErrInvalidTransition = "INVALID_TRANSITION"
	ErrOrderNotActive    = "ORDER_NOT_ACTIVE"
	ErrTableOccupied     = "TABLE_ALREADY_OCCUPIED"
	ErrPromotionInvalid  = "PROMOTION_INVALID"
	ErrInternal          = "INTERNAL"
)

// RespondSuccess writes the standard success envelope.
func RespondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// RespondError writes the standard failure envelope with a stable error kind.
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   kind,
		"message": message,
	})
}
