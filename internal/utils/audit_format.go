package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// Audit rows store formatted values rather than internal representations so
// the trail reads the way the user saw the data.

// FormatAmount renders a monetary amount for the audit trail.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatTimestamp renders a point in time for the audit trail.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatOptional renders a nullable string field; nil becomes the empty string.
func FormatOptional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
