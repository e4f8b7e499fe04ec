package quote

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/compressorworks/crm/internal/domain"
)

// ParseAmount parses a user-typed number. Blank text yields def. A comma is
// accepted as the decimal separator; the whole string must parse and the
// result must be finite.
func ParseAmount(text string, def float64) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return def, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.ErrInvalidNumber
	}
	return v, nil
}

var dateLayouts = []string{"02/01/2006", "2006-01-02"}

// ParseDate accepts dd/mm/yyyy or yyyy-mm-dd. Blank text yields nil.
func ParseDate(text string) (*time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, domain.ErrInvalidValue
}

// FormatQuantity renders a quantity without trailing zeros.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
