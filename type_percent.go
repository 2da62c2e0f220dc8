package patrimoine

import (
	"fmt"
	"math"
)

// Percent is a plain percentage: 5.2 means 5.2%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// NotComputable is what reports print in place of a percentage that could
// not be computed.
const NotComputable = "—"

// FormatPercent renders p, or NotComputable when ok is false.
func FormatPercent(p Percent, ok bool) string {
	if !ok {
		return NotComputable
	}
	return p.String()
}
