package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusTag is a label attached to a transaction and surfaced to the
// presentation layer, orthogonal to category assignment.
type StatusTag string

const (
	TagIncome        StatusTag = "income"
	TagUncategorized StatusTag = "uncategorized"
	TagRecurring     StatusTag = "recurring"
	TagFixedExpense  StatusTag = "fixed-expense"
)

// Transaction is one normalized bank transaction. The id, date, amount,
// description and raw row are fixed at normalization time; category,
// subcategory and tags may be updated by later stages or the caller.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = money out, positive = money in
	Balance     decimal.Decimal // zero when the export has no balance column
	Reference   string
	Raw         []string // original row, verbatim

	CategoryID    string
	SubcategoryID string
	Tags          []StatusTag
}

// IsExpense reports whether money left the account.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// HasTag reports whether the transaction carries the given tag.
func (t Transaction) HasTag(tag StatusTag) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// AddTag attaches a tag if not already present.
func (t *Transaction) AddTag(tag StatusTag) {
	if !t.HasTag(tag) {
		t.Tags = append(t.Tags, tag)
	}
}

// RemoveTag detaches a tag if present.
func (t *Transaction) RemoveTag(tag StatusTag) {
	for i, tg := range t.Tags {
		if tg == tag {
			t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
			return
		}
	}
}
