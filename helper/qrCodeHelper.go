package helper

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateQRCode returns an opaque per-table token of the form TBL-XXXXXXXX.
// Uniqueness is ultimately enforced by the unique index on qr_code.
func GenerateQRCode() string {
	uniqueID := strings.ToUpper(uuid.NewString()[:8])
	return "TBL-" + uniqueID
}
