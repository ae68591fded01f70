package utils

import (
	"database/sql"
	"strconv"
	"strings"
)

// ToNullInt64 converts an optional numeric field from the provider payload
// into an explicit nullable value. A missing field stays NULL.
func ToNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// ToNullString treats empty strings as absent.
func ToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// DecimalOrZero parses a price-like string, defaulting to 0 when the value
// is missing or unparsable. Lossy on purpose: the provider regularly ships
// empty price fields and those are not errors.
func DecimalOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// FormatDecimal renders a stored price in its canonical string form,
// trimming trailing zeros ("12.50" round-trips as "12.5", "1.00" as "1").
func FormatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
