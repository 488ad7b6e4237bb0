package xmlgen

import (
	"regexp"
	"strconv"
	"strings"
)

var diceTerm = regexp.MustCompile(`(?i)^\s*(\d*)d(\d+)`)

// maxDiceTerms caps the expansion of absurd dice counts.
const maxDiceTerms = 100

// DiceList converts "2d6+1" into "d6,d6". Input already in list form, or
// without a dice term, is returned trimmed.
func DiceList(expr string) string {
	expr = strings.TrimSpace(expr)
	if strings.Contains(expr, ",") {
		return expr
	}
	m := diceTerm.FindStringSubmatch(expr)
	if m == nil {
		return expr
	}
	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return expr
		}
		count = min(n, maxDiceTerms)
	}
	die := "d" + m[2]
	parts := make([]string, count)
	for i := range parts {
		parts[i] = die
	}
	return strings.Join(parts, ",")
}
