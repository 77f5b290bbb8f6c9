package helpers

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber returns a customer-facing order reference such as
// VM-20260301-1A2B3C4D.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "VM-" + now.UTC().Format("20060102") + "-" + suffix
}
