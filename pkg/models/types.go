package models

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

/*
LOAD → raw rows as read from the source (database or CSV).
*/

// Transaction is one line of an Online Retail invoice.
// A zero InvoiceDate means the source had no usable timestamp.
type Transaction struct {
	InvoiceNo   string
	StockCode   string
	Description string
	Quantity    int
	InvoiceDate time.Time
	UnitPrice   decimal.Decimal
	CustomerID  sql.NullString
	Country     string
}

// CleanedTransaction is a Transaction that passed the cleaning rules:
// not a cancellation and attached to a customer.
type CleanedTransaction struct {
	Transaction
}

// LineAmount = Quantity × UnitPrice.
func (t CleanedTransaction) LineAmount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

/*
COMPUTE → per-customer metrics and scores
*/

// CustomerMetrics holds the raw RFM triple of one customer.
type CustomerMetrics struct {
	CustomerID  string          `json:"customer_id"`
	RecencyDays int             `json:"recency_days"`
	Frequency   int             `json:"frequency"`
	Monetary    decimal.Decimal `json:"monetary"`
}

// QuintileBoundaries holds the 20/40/60/80 percentile cut points of each metric.
type QuintileBoundaries struct {
	Recency   [4]decimal.Decimal `json:"recency"`
	Frequency [4]decimal.Decimal `json:"frequency"`
	Monetary  [4]decimal.Decimal `json:"monetary"`
}

// ScoredCustomer is a CustomerMetrics with its quintile scores.
type ScoredCustomer struct {
	CustomerMetrics
	R       int    `json:"r"`
	F       int    `json:"f"`
	M       int    `json:"m"`
	Segment string `json:"rfm_segment"` // "RFM" digits, e.g. "534"
	Score   int    `json:"rfm_score"`   // R+F+M, 3..15
}

// Result is everything a run hands over to the reporting side.
type Result struct {
	Reference   time.Time          `json:"reference_date"`
	Boundaries  QuintileBoundaries `json:"boundaries"`
	Customers   []ScoredCustomer   `json:"customers"`
	RawRows     int                `json:"raw_rows"`
	CleanedRows int                `json:"cleaned_rows"`
}

/*
ERRORS
*/

// ErrEmptyDataset is matched by every *EmptyDatasetError through errors.Is.
var ErrEmptyDataset = errors.New("empty dataset")

// EmptyDatasetError is returned when no cleaned transaction (or no customer)
// is left to define the reference date or the percentiles.
type EmptyDatasetError struct {
	Stage string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, ErrEmptyDataset)
}

func (e *EmptyDatasetError) Is(target error) bool {
	return target == ErrEmptyDataset
}

/*
CONFIG → parameters of a pipeline run
*/

// Config contains the parameters passed to calculator.Run.
type Config struct {
	Verbose  bool      // stage-by-stage logs
	Progress io.Writer // progress bar output, nil disables it
}
