package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kontovy/kontovy/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,date,description,amount,balance,reference,category,subcategory,tags,raw"

const (
	numFields   = 10
	dateFormat  = "2006-01-02"
	colID       = 0
	colDate     = 1
	colDesc     = 2
	colAmount   = 3
	colBalance  = 4
	colRef      = 5
	colCategory = 6
	colSubcat   = 7
	colTags     = 8
	colRaw      = 9
)

// rawSep joins the original source cells inside one CSV field. Unit
// separator, so it cannot collide with export content.
const rawSep = "\x1f"

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a transactions.csv writer
// (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colDate] = txn.Date.Format(dateFormat)
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.StringFixed(2)

	if !txn.Balance.IsZero() {
		row[colBalance] = txn.Balance.StringFixed(2)
	}

	row[colRef] = txn.Reference
	row[colCategory] = txn.CategoryID
	row[colSubcat] = txn.SubcategoryID

	if len(txn.Tags) > 0 {
		tags := make([]string, len(txn.Tags))
		for i, tg := range txn.Tags {
			tags[i] = string(tg)
		}
		row[colTags] = strings.Join(tags, ";")
	}

	row[colRaw] = strings.Join(txn.Raw, rawSep)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var balance decimal.Decimal
	if record[colBalance] != "" {
		balance, err = decimal.NewFromString(record[colBalance])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
		}
	}

	var tags []model.StatusTag
	if record[colTags] != "" {
		for _, tg := range strings.Split(record[colTags], ";") {
			tags = append(tags, model.StatusTag(tg))
		}
	}

	var raw []string
	if record[colRaw] != "" {
		raw = strings.Split(record[colRaw], rawSep)
	}

	return model.Transaction{
		ID:            record[colID],
		Date:          date,
		Description:   record[colDesc],
		Amount:        amount,
		Balance:       balance,
		Reference:     record[colRef],
		CategoryID:    record[colCategory],
		SubcategoryID: record[colSubcat],
		Tags:          tags,
		Raw:           raw,
	}, nil
}
