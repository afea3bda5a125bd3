package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"rfm-segments/pkg/logger"
	"rfm-segments/pkg/models"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open DSN mariadb://, mysql://, postgres:// ou sqlite:// → driver + DSN natif.
// The returned string is the DSN actually handed to the driver.
func Open(dsn string) (*sql.DB, string, error) {
	driver, native, err := toDriverDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(driver, native)
	if err != nil {
		return nil, "", err
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, native, nil
}

func toDriverDSN(dsn string) (string, string, error) {
	switch {
	case strings.HasPrefix(dsn, "mariadb://"), strings.HasPrefix(dsn, "mysql://"):
		native, err := toMySQLDSN(dsn)
		return "mysql", native, err
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("dsn incomplet (sqlite path)")
		}
		return "sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path), nil
	}
	return "mysql", dsn, nil
}

func toMySQLDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	user := ""
	pass := ""
	if u.User != nil {
		user = u.User.Username()
		pw, _ := u.User.Password()
		pass = pw
	}
	host := u.Host
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || host == "" || db == "" {
		return "", fmt.Errorf("dsn incomplet (user/host/db)")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
		user, pass, host, db), nil
}

// LoadTransactions reads every Online Retail line of tableName.
// Lines without quantity or unit price are skipped; a NULL date or customer
// is kept as-is and left to calculator.Clean.
func LoadTransactions(ctx context.Context, db *sql.DB, tableName string, progress io.Writer) ([]models.Transaction, error) {
	if !tableNameRe.MatchString(tableName) {
		return nil, fmt.Errorf("table invalide: %q", tableName)
	}

	q := fmt.Sprintf(`
		SELECT InvoiceNo, StockCode, Description, Quantity, InvoiceDate, UnitPrice, CustomerID, Country
		FROM %s
	`, tableName)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", tableName, err)
	}
	defer rows.Close()

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("loading "+tableName),
		)
	}

	var (
		out     []models.Transaction
		skipped int
	)
	for rows.Next() {
		var (
			invoice, stock, desc, country sql.NullString
			customer                      sql.NullString
			qty                           sql.NullInt64
			date                          sql.NullTime
			price                         decimal.NullDecimal
		)
		if err := rows.Scan(&invoice, &stock, &desc, &qty, &date, &price, &customer, &country); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tableName, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		if !qty.Valid || !price.Valid {
			skipped++
			logger.Log.Debugf("skip invoice=%s: missing quantity or unit price", invoice.String)
			continue
		}

		t := models.Transaction{
			InvoiceNo:   strings.TrimSpace(invoice.String),
			StockCode:   stock.String,
			Description: desc.String,
			Quantity:    int(qty.Int64),
			UnitPrice:   price.Decimal,
			CustomerID:  normalizeCustomerID(customer),
			Country:     country.String,
		}
		if date.Valid {
			t.InvoiceDate = date.Time.UTC()
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", tableName, err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	logger.Log.Debugf("table=%s rows=%d skipped=%d", tableName, len(out), skipped)
	return out, nil
}

// normalizeCustomerID turns "17850.0" (ids exported as floats) into "17850".
func normalizeCustomerID(id sql.NullString) sql.NullString {
	if !id.Valid {
		return id
	}
	s := strings.TrimSpace(id.String)
	if s == "" {
		return sql.NullString{}
	}
	if head, tail, ok := strings.Cut(s, "."); ok && strings.Trim(tail, "0") == "" && head != "" {
		s = head
	}
	return sql.NullString{String: s, Valid: true}
}
