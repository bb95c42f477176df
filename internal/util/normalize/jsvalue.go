package normalize

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// truthy mirrors JavaScript truthiness for values decoded from JSON.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

// present is the relaxed counterpart of truthy: only null and the empty string are absent.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	default:
		return true
	}
}

// jsString renders a decoded JSON value the way JavaScript's String() would.
func jsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case []any:
		parts := make([]string, len(x))
		for i, el := range x {
			parts[i] = jsString(el)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads single digit exponents ("1e-07"), JavaScript does not
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// jsSpace reports whether r is ECMAScript WhiteSpace or a LineTerminator. Go's White_Space
// set differs only by NEL (U+0085), which ECMAScript does not skip, and by the BOM, which it does.
func jsSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\ufeff'
}

// parseInt reproduces JavaScript's parseInt(s) with an implicit radix: leading whitespace
// is skipped, an optional sign and "0x" prefix are honoured and the longest digit prefix
// is taken. ok is false where JavaScript would return NaN. Values beyond the int range saturate.
func parseInt(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, jsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	var acc uint64
	saturated := false
	digits := 0
	for _, r := range s {
		d := digitValue(r)
		if d < 0 || d >= base {
			break
		}
		digits++
		if saturated {
			continue
		}
		if acc > (math.MaxInt-uint64(d))/uint64(base) {
			saturated = true
			continue
		}
		acc = acc*uint64(base) + uint64(d)
	}
	if digits == 0 {
		return 0, false
	}

	if saturated {
		if neg {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if neg {
		return -int(acc), true
	}
	return int(acc), true
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}
