package rules

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	termPattern    = regexp.MustCompile(`[+-]?[^+-]+`)
	percentPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)%$`)
	fracPattern    = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)/(\d+(?:[.,]\d+)?)$`)
	levelPattern   = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)x$`)
	numberPattern  = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)$`)
)

// Evaluate computes an additive expression of terms against a base value and
// a character level. Terms are joined with + or -; each term is one of
//
//	N%   percent of base
//	A/B  fraction of base (0 when B is 0)
//	Nx   N per level
//	x    the level itself
//	N    a literal
//
// Decimal comma and decimal point are both accepted. Each term is rounded
// to the nearest integer before its sign is applied and the sum is taken.
// Terms that match no form are skipped. An empty expression is 0.
func Evaluate(expr string, base, level int) int {
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	if s == "" {
		return 0
	}

	total := 0
	for _, term := range termPattern.FindAllString(s, -1) {
		sign := 1
		switch {
		case strings.HasPrefix(term, "-"):
			sign = -1
			term = term[1:]
		case strings.HasPrefix(term, "+"):
			term = term[1:]
		}

		var value int
		switch {
		case percentPattern.MatchString(term):
			n := parseDecimal(percentPattern.FindStringSubmatch(term)[1])
			value = round(float64(base) * n / 100)
		case fracPattern.MatchString(term):
			m := fracPattern.FindStringSubmatch(term)
			den := parseDecimal(m[2])
			if den == 0 {
				value = 0
			} else {
				value = round(float64(base) * parseDecimal(m[1]) / den)
			}
		case levelPattern.MatchString(term):
			n := parseDecimal(levelPattern.FindStringSubmatch(term)[1])
			value = round(n * float64(level))
		case term == "x":
			value = level
		case numberPattern.MatchString(term):
			value = round(parseDecimal(term))
		default:
			continue
		}

		total += sign * value
	}
	return total
}

func parseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func round(v float64) int {
	return int(math.Round(v))
}
