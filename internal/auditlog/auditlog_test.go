package auditlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	root := t.TempDir()

	first := Entry{
		Timestamp:    time.Date(2024, 1, 3, 9, 15, 0, 0, time.UTC),
		File:         "export.csv",
		Bank:         "seb",
		RowsParsed:   120,
		RowsSkipped:  2,
		Transactions: 118,
		Candidates:   4,
	}
	require.NoError(t, Append(root, []Entry{first}))

	// Second append must not duplicate the header.
	second := first
	second.File = "export-feb.csv"
	second.Candidates = 5
	require.NoError(t, Append(root, []Entry{second}))

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}

func TestReadMissingLog(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
