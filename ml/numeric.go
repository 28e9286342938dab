package ml

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

var (
	errBlank     = errors.New("value is blank")
	errNotFinite = errors.New("value is out of range")
)

// ParseMeasurement parses one free-text measurement. Full-width digits and
// other compatibility forms are folded first; the result is always finite.
// decimal defines the accepted grammar (no hex, digit separators or
// inf/nan words). Conversion time must not grow with the exponent.
func ParseMeasurement(raw string) (float64, error) {
	text := strings.TrimSpace(norm.NFKC.String(raw))
	if text == "" {
		return 0, errBlank
	}
	if _, err := decimal.NewFromString(text); err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errNotFinite
		}
		return 0, err
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, errNotFinite
	}
	return value, nil
}

func isBlank(raw string) bool {
	return strings.TrimSpace(norm.NFKC.String(raw)) == ""
}
