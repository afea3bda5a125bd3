package database

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"rfm-segments/pkg/logger"
	"rfm-segments/pkg/models"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

var csvColumns = []string{"InvoiceNo", "StockCode", "Description", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID", "Country"}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006 15:04",
	"2006-01-02 15:04",
}

// LoadFile opens path and reads it with LoadCSV.
func LoadFile(path string, progress io.Writer) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return LoadCSV(f, progress)
}

// LoadCSV reads an Online Retail export. Columns are located by header name,
// in any order. Rows with an unparseable quantity or price are skipped; an
// unparseable date is left zero for calculator.Clean to drop.
func LoadCSV(r io.Reader, progress io.Writer) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv header: empty file")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("loading csv"),
		)
	}

	var (
		out     []models.Transaction
		skipped int
		line    = 1
	)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return out, fmt.Errorf("read csv row %d: %w", line+1, err)
		}
		line++
		if bar != nil {
			_ = bar.Add(1)
		}

		field := func(col string) string {
			i := idx[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		qty, err := strconv.Atoi(field("Quantity"))
		if err != nil {
			skipped++
			logger.Log.Debugf("csv line %d: quantity %q: %v", line, field("Quantity"), err)
			continue
		}
		price, err := decimal.NewFromString(field("UnitPrice"))
		if err != nil {
			skipped++
			logger.Log.Debugf("csv line %d: unit price %q: %v", line, field("UnitPrice"), err)
			continue
		}

		out = append(out, models.Transaction{
			InvoiceNo:   field("InvoiceNo"),
			StockCode:   field("StockCode"),
			Description: field("Description"),
			Quantity:    qty,
			InvoiceDate: parseDate(field("InvoiceDate")),
			UnitPrice:   price,
			CustomerID:  normalizeCustomerID(sql.NullString{String: field("CustomerID"), Valid: true}),
			Country:     field("Country"),
		})
	}
	if bar != nil {
		_ = bar.Finish()
	}

	logger.Log.Debugf("csv rows=%d skipped=%d", len(out), skipped)
	return out, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		// Excel exports sometimes start with a BOM.
		name := strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		idx[name] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("csv header: missing column %s", col)
		}
	}
	return idx, nil
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
