package dcf

import "fmt"

// FormatCurrency scales a nominal currency amount to a suffixed figure:
// >= 1e9 billions, >= 1e6 millions, >= 1e3 thousands, else raw, always
// with two decimals. Thresholds apply to the absolute value so the sign
// is preserved ("$-3.20K").
func FormatCurrency(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.2fK", v/1e3)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

// FormatPercent renders a fraction as a percentage with two decimals
// ("WACC: 8.00%").
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
