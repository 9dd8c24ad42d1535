package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kontovy/kontovy/internal/id"
	"github.com/kontovy/kontovy/internal/model"
)

// NormalizeOptions configures one normalization pass.
type NormalizeOptions struct {
	Mapping ColumnMapping
	Bank    string // optional bank format id, e.g. "seb"
}

// NormalizeResult is the outcome of a normalization pass. Rows with an
// unparseable date or amount are dropped and counted, never failing the
// batch.
type NormalizeResult struct {
	Transactions []model.Transaction
	Skipped      int
}

// Normalize converts raw table rows into typed transactions. The amount sign
// convention is fixed here: negative means money out, positive means money
// in. Positive amounts are tagged as income.
func Normalize(table *ParsedTable, opts NormalizeOptions) (NormalizeResult, error) {
	if !opts.Mapping.Complete() {
		return NormalizeResult{}, fmt.Errorf("incomplete column mapping, missing: %s",
			strings.Join(opts.Mapping.MissingRoles(), ", "))
	}

	cleanup := DefaultCleanups().Get(opts.Bank)
	minter := id.NewMinter()
	result := NormalizeResult{}

	for _, row := range table.Rows {
		txn, ok := normalizeRow(row, table.Dialect, opts, cleanup, minter)
		if !ok {
			result.Skipped++
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}
	return result, nil
}

func normalizeRow(row []string, d Dialect, opts NormalizeOptions, cleanup Cleanup, minter *id.Minter) (model.Transaction, bool) {
	cell := func(idx int) (string, bool) {
		if idx < 0 || idx >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[idx]), true
	}

	dateStr, ok := cell(opts.Mapping.Date)
	if !ok {
		return model.Transaction{}, false
	}
	date, err := time.Parse(d.DateLayout, dateStr)
	if err != nil {
		return model.Transaction{}, false
	}

	amountStr, ok := cell(opts.Mapping.Amount)
	if !ok {
		return model.Transaction{}, false
	}
	amount, err := ParseAmount(amountStr, d.DecimalSeparator)
	if err != nil {
		return model.Transaction{}, false
	}

	desc, _ := cell(opts.Mapping.Description)
	if cleanup != nil {
		desc = cleanup.Apply(desc)
	}

	txn := model.Transaction{
		ID:          minter.Transaction(date, desc, amount),
		Date:        date,
		Description: desc,
		Amount:      amount,
		Raw:         append([]string(nil), row...),
	}

	if bal, ok := cell(opts.Mapping.Balance); ok && bal != "" {
		if b, err := ParseAmount(bal, d.DecimalSeparator); err == nil {
			txn.Balance = b
		}
	}
	if ref, ok := cell(opts.Mapping.Reference); ok {
		txn.Reference = ref
	}

	if amount.IsPositive() {
		txn.AddTag(model.TagIncome)
	}
	return txn, true
}

// groupingRunes are separators stripped before numeric parsing, including
// the no-break and narrow no-break spaces some exports use for thousands.
const groupingRunes = "   '"

// ParseAmount parses a signed amount under the given decimal separator,
// stripping grouping separators and whitespace. "-1 234,56" under ','
// parses to -1234.56.
func ParseAmount(s string, decimalSep rune) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(groupingRunes, r):
			// grouping separator, drop
		case r == decimalSep:
			b.WriteRune('.')
		case decimalSep == ',' && r == '.':
			// thousands separator under the comma convention, drop
		case decimalSep == '.' && r == ',':
			// thousands separator under the dot convention, drop
		default:
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}
