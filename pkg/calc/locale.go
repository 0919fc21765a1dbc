package calc

import (
	"math"
	"strconv"
	"strings"

	"calc.elv.sh/pkg/env"
)

// Locale carries the number-formatting conventions the engine needs.
type Locale struct {
	DecimalSep rune
	GroupSep   rune
}

// Predefined locales.
var (
	DotLocale   = Locale{DecimalSep: '.', GroupSep: ','}
	CommaLocale = Locale{DecimalSep: ',', GroupSep: '.'}
)

// Languages that write a comma as the decimal separator.
var commaLanguages = map[string]bool{
	"cs": true, "da": true, "de": true, "es": true, "fi": true, "fr": true,
	"it": true, "nb": true, "nl": true, "pl": true, "pt": true, "ru": true,
	"sv": true, "tr": true,
}

// DetectLocale derives a Locale from the usual locale environment variables,
// consulted in the order LC_ALL, LC_NUMERIC, LANG. The getenv argument is
// typically os.Getenv.
func DetectLocale(getenv func(string) string) Locale {
	for _, name := range []string{env.LC_ALL, env.LC_NUMERIC, env.LANG} {
		if tag := getenv(name); tag != "" {
			return LocaleForTag(tag)
		}
	}
	return DotLocale
}

// LocaleForTag returns the Locale for a POSIX locale name like "de_DE.UTF-8"
// or a language tag like "fr-CA".
func LocaleForTag(tag string) Locale {
	lang := tag
	if i := strings.IndexAny(lang, "_-.@"); i >= 0 {
		lang = lang[:i]
	}
	if commaLanguages[strings.ToLower(lang)] {
		return CommaLocale
	}
	return DotLocale
}

// Pi returns π written with the decimal separator of the locale.
func (l Locale) Pi() string { return l.FormatFloat(math.Pi) }

// FormatFloat writes v the way the engine stores numbers: the shortest
// representation that round-trips, switching to exponent notation below 1e-6
// and from 1e21 on, with the locale decimal separator.
func (l Locale) FormatFloat(v float64) string {
	var s string
	switch abs := math.Abs(v); {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	case abs < 1e-6 || abs >= 1e21:
		s = expNotation(v)
	default:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if l.DecimalSep != '.' {
		s = strings.Replace(s, ".", string(l.DecimalSep), 1)
	}
	return s
}

// Converts "1e-07" into "1e-7".
func expNotation(v float64) string {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	mant, exp := s[:i], s[i+1:]
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

// Parse converts a stored operand into a number. Like a lenient parseFloat,
// it reads the longest numeric prefix and ignores the rest; it returns NaN if
// there is no such prefix, e.g. for "(5".
func (l Locale) Parse(s string) float64 {
	if l.DecimalSep != '.' {
		s = strings.Replace(s, string(l.DecimalSep), ".", 1)
	}
	n := numericPrefix(s)
	if n == 0 {
		return math.NaN()
	}
	// ParseFloat accepts "Infinity" and saturates out-of-range exponents to
	// ±Inf or 0, so the error can be ignored.
	v, _ := strconv.ParseFloat(s[:n], 64)
	return v
}

// Returns the length of the longest prefix of s that is a decimal number.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	nInt := i - intStart
	nFrac := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		nFrac = j - i - 1
		if nInt > 0 || nFrac > 0 {
			i = j
		}
	}
	if nInt == 0 && nFrac == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// Format renders a stored operand for display: the integer part gets the
// locale grouping separator, the fractional part (and a trailing separator
// still being typed) is kept verbatim, and literal brackets stay where they
// were relative to the digits. Non-numeric text is returned unchanged.
func (l Locale) Format(raw string) string {
	var core strings.Builder
	type bracket struct {
		r     rune
		after int
	}
	var brackets []bracket
	n := 0
	for _, r := range raw {
		if r == '(' || r == ')' {
			brackets = append(brackets, bracket{r, n})
			continue
		}
		core.WriteRune(r)
		n++
	}
	formatted := l.formatNumber(core.String())
	if len(brackets) == 0 {
		return formatted
	}
	// Map each bracket to a position in the formatted text. Grouping
	// separators are invisible to the count, and a leading zero that was not
	// in the raw text is skipped as well.
	coreRunes := []rune(core.String())
	outRunes := []rune(formatted)
	var sb strings.Builder
	bi, seen := 0, 0
	skipLeadingZero := len(coreRunes) > 0 && coreRunes[0] == l.DecimalSep &&
		len(outRunes) > 0 && outRunes[0] == '0'
	for i, r := range outRunes {
		for bi < len(brackets) && brackets[bi].after == seen {
			sb.WriteRune(brackets[bi].r)
			bi++
		}
		sb.WriteRune(r)
		if (r == l.GroupSep && r != l.DecimalSep) || (i == 0 && skipLeadingZero) {
			continue
		}
		seen++
	}
	for ; bi < len(brackets); bi++ {
		sb.WriteRune(brackets[bi].r)
	}
	return sb.String()
}

func (l Locale) formatNumber(s string) string {
	if s == "" || strings.ContainsAny(s, "eEIN") {
		// Empty, exponent notation, Infinity or NaN.
		return s
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	intPart, fracPart, hasSep := strings.Cut(s, string(l.DecimalSep))
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return sign + s
		}
	}
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	grouped := groupDigits(intPart, l.GroupSep)
	if !hasSep {
		return sign + grouped
	}
	return sign + grouped + string(l.DecimalSep) + fracPart
}

func groupDigits(digits string, sep rune) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteRune(sep)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
