package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// IdentifierLength is the width of the identifier field in binary records.
	IdentifierLength = 36

	// RouteIdentifier is the fixed identifier of the derived route.
	RouteIdentifier = "ROUTE-0001"
)

// Identifiers hands out synthetic waypoint identifiers: GUID-0001, GUID-0002, ...
//
// The counter is 1-based and gapless. Create one per export call; the zero value
// starts at GUID-0001.
type Identifiers struct {
	n int
}

// Next returns the next identifier in sequence.
func (ids *Identifiers) Next() string {
	ids.n++
	return Identifier(ids.n)
}

// Identifier returns the synthetic identifier for the 1-based position n.
func Identifier(n int) string {
	return fmt.Sprintf("GUID-%04d", n)
}

const (
	significantDigits = 15
	decimalPlaces     = 15
)

// FormatFloat15 formats v with exactly 15 decimal places and a period separator.
//
// v is first rounded to 15 significant digits, so 40.7 prints as
// 40.700000000000000 rather than its binary expansion. Digits past the 15th
// significant one are written as zeros. A value that rounds to zero carries
// no sign.
func FormatFloat15(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// -d.dddddddddddddde±XX
	s := strconv.FormatFloat(v, 'e', significantDigits-1, 64)
	neg := s[0] == '-'
	if neg {
		s = s[1:]
	}
	mantissa, expText, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expText)
	digits := mantissa[:1] + mantissa[2:]

	var whole, frac string
	switch {
	case exp >= len(digits)-1:
		whole = digits + strings.Repeat("0", exp-len(digits)+1)
	case exp >= 0:
		whole, frac = digits[:exp+1], digits[exp+1:]
	default:
		whole, frac = "0", strings.Repeat("0", -exp-1)+digits
	}

	if len(frac) > decimalPlaces {
		whole, frac = roundDecimal(whole, frac, decimalPlaces)
	}
	frac += strings.Repeat("0", decimalPlaces-len(frac))

	out := whole + "." + frac
	if neg && strings.Trim(out, "0.") != "" {
		out = "-" + out
	}
	return out
}

// roundDecimal rounds the digit strings whole.frac to n fractional digits,
// half away from zero.
func roundDecimal(whole, frac string, n int) (string, string) {
	buf := []byte(whole + frac[:n])
	if frac[n] >= '5' {
		i := len(buf) - 1
		for ; i >= 0; i-- {
			if buf[i] == '9' {
				buf[i] = '0'
				continue
			}
			buf[i]++
			break
		}
		if i < 0 {
			buf = append([]byte{'1'}, buf...)
		}
	}
	split := len(buf) - n
	return string(buf[:split]), string(buf[split:])
}
