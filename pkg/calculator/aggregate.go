package calculator

import (
	"sort"
	"time"

	"rfm-segments/pkg/models"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

type customerAcc struct {
	latest   time.Time
	invoices map[string]struct{}
	monetary decimal.Decimal
}

// Aggregate reduces cleaned rows to one CustomerMetrics per customer, sorted
// by customer id. The reference date is the latest timestamp plus one day.
func Aggregate(txs []models.CleanedTransaction) (time.Time, []models.CustomerMetrics, error) {
	if len(txs) == 0 {
		return time.Time{}, nil, &models.EmptyDatasetError{Stage: "aggregate"}
	}

	var maxDate time.Time
	byCustomer := make(map[string]*customerAcc)
	for _, t := range txs {
		if t.InvoiceDate.After(maxDate) {
			maxDate = t.InvoiceDate
		}
		acc, ok := byCustomer[t.CustomerID.String]
		if !ok {
			acc = &customerAcc{invoices: make(map[string]struct{})}
			byCustomer[t.CustomerID.String] = acc
		}
		if t.InvoiceDate.After(acc.latest) {
			acc.latest = t.InvoiceDate
		}
		acc.invoices[t.InvoiceNo] = struct{}{}
		acc.monetary = acc.monetary.Add(t.LineAmount())
	}
	reference := maxDate.Add(day)

	out := make([]models.CustomerMetrics, 0, len(byCustomer))
	for id, acc := range byCustomer {
		out = append(out, models.CustomerMetrics{
			CustomerID:  id,
			RecencyDays: RecencyDays(reference, acc.latest),
			Frequency:   len(acc.invoices),
			Monetary:    acc.monetary,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return reference, out, nil
}

// RecencyDays counts whole days from last to reference; partial days are dropped.
func RecencyDays(reference, last time.Time) int {
	return int(reference.Sub(last) / day)
}
