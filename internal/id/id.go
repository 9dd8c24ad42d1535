package id

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// hashHex returns the first n hex characters of the SHA-256 of s.
func hashHex(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:n]
}

// Transaction returns an id like "txn_9f2c41d08ab3" derived from the row
// content. Ordinal disambiguates duplicate rows: 0 for the first occurrence
// of identical content, 1 for the second, and so on, so re-importing the
// same file in the same order mints the same ids.
func Transaction(date time.Time, description string, amount decimal.Decimal, ordinal int) string {
	content := fmt.Sprintf("%s|%s|%s", date.Format("2006-01-02"), description, amount.String())
	h := hashHex(content, 12)
	if ordinal == 0 {
		return "txn_" + h
	}
	return fmt.Sprintf("txn_%s-%d", h, ordinal)
}

// Minter mints transaction ids, tracking duplicate content within one
// normalization pass.
type Minter struct {
	seen map[string]int
}

// NewMinter creates an empty Minter.
func NewMinter() *Minter {
	return &Minter{seen: make(map[string]int)}
}

// Transaction mints the next id for the given row content.
func (m *Minter) Transaction(date time.Time, description string, amount decimal.Decimal) string {
	key := fmt.Sprintf("%s|%s|%s", date.Format("2006-01-02"), description, amount.String())
	ordinal := m.seen[key]
	m.seen[key]++
	return Transaction(date, description, amount, ordinal)
}

// Rule returns a stable id for a built-in rule, derived from its content so
// that identity survives reordering and serialization.
func Rule(pattern, match, categoryID, subcategoryID string) string {
	return "rule_" + hashHex(pattern+"|"+match+"|"+categoryID+"|"+subcategoryID, 10)
}

// NewUserRule returns a fresh id for a user-defined rule.
func NewUserRule() string {
	return "user_" + uuid.NewString()
}

// NewSubscription returns a fresh id for a confirmed subscription.
func NewSubscription() string {
	return "sub_" + uuid.NewString()
}
