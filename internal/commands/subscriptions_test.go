package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontovy/kontovy/internal/ledger"
	"github.com/kontovy/kontovy/internal/model"
)

func importSample(t *testing.T) string {
	t.Helper()
	dir, export := initProject(t)
	out, err := runKontovy(t, "import", export, "--project", dir)
	require.NoError(t, err, out)
	return dir
}

func TestSubscriptions_Candidates(t *testing.T) {
	dir := importSample(t)

	out, err := runKontovy(t, "subscriptions", "candidates", "--project", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "NETFLIX.COM")
	assert.Contains(t, out, "monthly")
}

func TestSubscriptions_ConfirmAndList(t *testing.T) {
	dir := importSample(t)

	out, err := runKontovy(t, "subscriptions", "confirm", "0", "--project", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Confirmed NETFLIX.COM as subscription")

	out, err = runKontovy(t, "subscriptions", "list", "--project", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "NETFLIX.COM")
	assert.Contains(t, out, "active")

	// The contributing transactions are tagged in the ledger.
	txns, err := ledger.Load(filepath.Join(dir, "data", "transactions.csv"))
	require.NoError(t, err)
	tagged := 0
	for _, txn := range txns {
		if txn.HasTag(model.TagRecurring) {
			tagged++
		}
	}
	assert.Equal(t, 2, tagged)
}

func TestSubscriptions_ConfirmAsFixedExpense(t *testing.T) {
	dir := importSample(t)

	out, err := runKontovy(t, "subscriptions", "confirm", "0", "--project", dir, "--as", "fixed-expense")
	require.NoError(t, err, out)
	assert.Contains(t, out, "fixed-expense")
}

func TestSubscriptions_Skip(t *testing.T) {
	dir := importSample(t)

	out, err := runKontovy(t, "subscriptions", "confirm", "0", "--project", dir, "--as", "skip")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Skipped")

	out, err = runKontovy(t, "subscriptions", "list", "--project", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "No confirmed subscriptions")
}

func TestSubscriptions_ConfirmOutOfRange(t *testing.T) {
	dir := importSample(t)

	out, err := runKontovy(t, "subscriptions", "confirm", "9", "--project", dir)
	require.Error(t, err)
	assert.Contains(t, out, "out of range")
}
