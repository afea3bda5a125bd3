package calculator

import (
	"strings"

	"rfm-segments/pkg/models"
)

// CancellationMarker flags a cancelled invoice (returns are "C536379" style).
// Any occurrence in the invoice number disqualifies the row.
const CancellationMarker = "C"

// Clean keeps the rows usable for RFM: not cancelled, attached to a customer,
// with an invoice number and a timestamp. Order is preserved; dropped rows
// are not reported.
func Clean(txs []models.Transaction) []models.CleanedTransaction {
	out := make([]models.CleanedTransaction, 0, len(txs))
	for _, t := range txs {
		if !keep(t) {
			continue
		}
		out = append(out, models.CleanedTransaction{Transaction: t})
	}
	return out
}

func keep(t models.Transaction) bool {
	if t.InvoiceNo == "" || strings.Contains(t.InvoiceNo, CancellationMarker) {
		return false
	}
	if !t.CustomerID.Valid || strings.TrimSpace(t.CustomerID.String) == "" {
		return false
	}
	return !t.InvoiceDate.IsZero()
}
