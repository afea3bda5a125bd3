package database

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const retailCSV = `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,12/1/2010 8:26,2.55,17850.0,United Kingdom
C536379,D,Discount,-1,12/1/2010 9:41,27.5,14527,United Kingdom
536414,22139,,56,2010-12-01 11:52:00,0,,United Kingdom
536415,22140,BAD QTY,six,2010-12-01 11:52:00,1,12583,France
536416,22141,BAD PRICE,1,2010-12-01 11:52:00,n/a,12583,France
536417,22142,"BAD, DATE",1,yesterday,1.25,12583,France
`

func TestLoadCSV(t *testing.T) {
	txs, err := LoadCSV(strings.NewReader(retailCSV), nil)
	require.NoError(t, err)
	require.Len(t, txs, 4)

	first := txs[0]
	require.Equal(t, "536365", first.InvoiceNo)
	require.Equal(t, "17850", first.CustomerID.String)
	require.True(t, first.CustomerID.Valid)
	require.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), first.InvoiceDate)
	require.Equal(t, "2.55", first.UnitPrice.String())

	require.Equal(t, -1, txs[1].Quantity)
	require.False(t, txs[2].CustomerID.Valid)
	require.Equal(t, time.Date(2010, 12, 1, 11, 52, 0, 0, time.UTC), txs[2].InvoiceDate)

	require.Equal(t, "BAD, DATE", txs[3].Description)
	require.True(t, txs[3].InvoiceDate.IsZero())
}

func TestLoadCSV_ColumnOrderAndBOM(t *testing.T) {
	data := "\ufeffCustomerID,Country,InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice\n" +
		"12347,Iceland,537626,85116,BLACK CANDELABRA,12,2010-12-07T14:57:00Z,2.1\n"
	txs, err := LoadCSV(strings.NewReader(data), nil)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "537626", txs[0].InvoiceNo)
	require.Equal(t, "12347", txs[0].CustomerID.String)
	require.Equal(t, 12, txs[0].Quantity)
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("InvoiceNo,Quantity\n1,2\n"), nil)
	require.ErrorContains(t, err, "missing column")
}

func TestLoadCSV_Empty(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""), nil)
	require.Error(t, err)
}

func TestLoadFile_WithProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retail.csv")
	require.NoError(t, os.WriteFile(path, []byte(retailCSV), 0o644))

	var progress bytes.Buffer
	txs, err := LoadFile(path, &progress)
	require.NoError(t, err)
	require.Len(t, txs, 4)
}
