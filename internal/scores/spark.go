package scores

import "strings"

const sparkChars = " .:-=+*#%@"

// Sparkline renders recent values as a single line of density glyphs.
// When width is smaller than the series, only the most recent values
// are shown.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	chars := []rune(sparkChars)
	var b strings.Builder
	for _, v := range values {
		idx := len(chars) - 1
		if max > min {
			idx = int((v - min) / (max - min) * float64(len(chars)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}
