package report

import "rfm-segments/pkg/models"

// Customer groups used in the written report.
const (
	HighValue  = "High-Value"
	AtRisk     = "At-Risk"
	New        = "New"
	Loyal      = "Loyal"
	BigSpender = "Big Spender"
	Regular    = "Regular"
)

// Groups lists the classifications in the order they are checked.
var Groups = []string{HighValue, AtRisk, New, Loyal, BigSpender, Regular}

// Classify puts a scored customer in its reporting group; first match wins.
func Classify(c models.ScoredCustomer) string {
	switch {
	case c.Score >= 13:
		return HighValue
	case c.R <= 2:
		return AtRisk
	case c.R >= 4 && c.F <= 2 && c.M <= 2:
		return New
	case c.F >= 4:
		return Loyal
	case c.M >= 4:
		return BigSpender
	default:
		return Regular
	}
}
