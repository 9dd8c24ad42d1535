package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontovy/kontovy/internal/auditlog"
	"github.com/kontovy/kontovy/internal/ledger"
	"github.com/kontovy/kontovy/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

const sampleExport = "Bokföringsdatum;Text;Belopp;Saldo\n" +
	"2024-01-15;NETFLIX.COM;-149,00;12 000,50\n" +
	"2024-01-20;ICA SUPERMARKET STAN;-432,10;11 568,40\n" +
	"2024-01-25;LÖN ACME AB;30 000,00;41 568,40\n" +
	"2024-02-15;NETFLIX.COM;-149,00;41 419,40\n"

// initProject scaffolds a project and drops a bank export next to it.
func initProject(t *testing.T) (dir, exportPath string) {
	t.Helper()
	dir = t.TempDir()
	_, err := runKontovy(t, "init", dir)
	require.NoError(t, err)

	exportPath = filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(exportPath, []byte(sampleExport), 0o644))
	return dir, exportPath
}

func TestImport_EndToEnd(t *testing.T) {
	dir, export := initProject(t)

	out, err := runKontovy(t, "import", export, "--project", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported 4 transactions")

	txns, err := ledger.Load(filepath.Join(dir, "data", "transactions.csv"))
	require.NoError(t, err)
	require.Len(t, txns, 4)

	byDesc := map[string]model.Transaction{}
	for _, txn := range txns {
		byDesc[txn.Description] = txn
	}

	netflix := byDesc["NETFLIX.COM"]
	assert.Equal(t, "entertainment", netflix.CategoryID)
	assert.Equal(t, "streaming", netflix.SubcategoryID)
	assert.True(t, netflix.Amount.Equal(dec("-149.00")), "amount %s", netflix.Amount)

	ica := byDesc["ICA SUPERMARKET STAN"]
	assert.Equal(t, "groceries", ica.CategoryID)

	salary := byDesc["LÖN ACME AB"]
	assert.Equal(t, "income", salary.CategoryID)
	assert.True(t, salary.HasTag(model.TagIncome))
	assert.True(t, salary.Balance.Equal(dec("41568.40")), "balance %s", salary.Balance)
}

func TestImport_ReportsRecurringCandidates(t *testing.T) {
	dir, export := initProject(t)

	out, err := runKontovy(t, "import", export, "--project", dir)
	require.NoError(t, err, out)

	// Two monthly NETFLIX charges on the same day qualify as a candidate.
	assert.Contains(t, out, "Recurring payment candidates:")
	assert.Contains(t, out, "NETFLIX.COM")
	assert.Contains(t, out, "monthly")
}

func TestImport_WritesAuditLog(t *testing.T) {
	dir, export := initProject(t)

	_, err := runKontovy(t, "import", export, "--project", dir)
	require.NoError(t, err)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "export.csv", entries[0].File)
	assert.Equal(t, 4, entries[0].RowsParsed)
	assert.Equal(t, 4, entries[0].Transactions)
	assert.Equal(t, 0, entries[0].RowsSkipped)
}

func TestImport_MissingColumnsSuggestsFlags(t *testing.T) {
	dir, _ := initProject(t)

	// Two look-alike text columns and no recognizable date leave the
	// mapping incomplete.
	bad := filepath.Join(dir, "bad.csv")
	content := "a;b\nfoo;bar\nbaz;qux\n"
	require.NoError(t, os.WriteFile(bad, []byte(content), 0o644))

	out, err := runKontovy(t, "import", bad, "--project", dir)
	require.Error(t, err)
	assert.Contains(t, out, "--date-col")
}

func TestImport_ExplicitMappingFlags(t *testing.T) {
	dir, _ := initProject(t)

	// Headerless export in an unusual column order.
	cfg := "dialect:\n  has_header: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kontovy.yaml"), []byte(cfg), 0o644))

	export := filepath.Join(dir, "raw.csv")
	content := "-55,00;2024-03-01;PRESSBYRAN\n-60,00;2024-03-02;PRESSBYRAN\n"
	require.NoError(t, os.WriteFile(export, []byte(content), 0o644))

	out, err := runKontovy(t, "import", export, "--project", dir,
		"--amount-col", "0", "--date-col", "1", "--description-col", "2")
	require.NoError(t, err, out)

	txns, err := ledger.Load(filepath.Join(dir, "data", "transactions.csv"))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "PRESSBYRAN", txns[0].Description)
}
