package display

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyeddy/dialysis/treatment"
)

var ErrSyntax = errors.New("invalid value")

// ParseWeight reads "75", "75.3" or "75.30" into tenths of a kilogram.
// At most one significant decimal digit is accepted.
func ParseWeight(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "kg")
	s = strings.TrimSpace(s)

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && !hasFrac {
		return 0, fmt.Errorf("weight %q: %w", s, ErrSyntax)
	}

	neg := strings.HasPrefix(whole, "-")
	w := int64(0)
	if whole != "" && whole != "-" {
		v, err := strconv.ParseInt(whole, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("weight %q: %w", s, ErrSyntax)
		}
		w = v
	}

	f := int64(0)
	if hasFrac {
		frac = strings.TrimRight(frac, "0")
		switch len(frac) {
		case 0:
		case 1:
			if frac[0] < '0' || frac[0] > '9' {
				return 0, fmt.Errorf("weight %q: %w", s, ErrSyntax)
			}
			f = int64(frac[0] - '0')
		default:
			return 0, fmt.Errorf("weight %q: more than one decimal: %w", s, ErrSyntax)
		}
	}

	if neg {
		return w*10 - f, nil
	}
	return w*10 + f, nil
}

// ParseTime reads "H:MM" or a plain minute count.
func ParseTime(s string) (int64, error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		v, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("time %q: %w", s, ErrSyntax)
		}
		return v, nil
	}

	hv, err := strconv.ParseInt(h, 10, 16)
	if err != nil || hv < 0 {
		return 0, fmt.Errorf("time %q: %w", s, ErrSyntax)
	}
	mv, err := strconv.ParseInt(m, 10, 16)
	if err != nil || len(m) != 2 || mv < 0 || mv > 59 {
		return 0, fmt.Errorf("time %q: %w", s, ErrSyntax)
	}
	return hv*60 + mv, nil
}

// ParseDelta accepts "0.2"/"0.4" as shown on screen, or the raw 0/1.
func ParseDelta(s string) (treatment.Delta, error) {
	switch strings.TrimSpace(s) {
	case "0.2", ".2", "0":
		return treatment.Delta02, nil
	case "0.4", ".4", "1":
		return treatment.Delta04, nil
	}
	return 0, fmt.Errorf("delta %q: %w", s, ErrSyntax)
}
