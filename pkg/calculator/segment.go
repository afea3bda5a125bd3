package calculator

import "strconv"

// Compose builds the segment label ("534" for R=5 F=3 M=4) and the composite score.
func Compose(r, f, m int) (string, int) {
	return strconv.Itoa(r) + strconv.Itoa(f) + strconv.Itoa(m), r + f + m
}
