package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesAdd_PersistsAndLists(t *testing.T) {
	dir := t.TempDir()
	_, err := runKontovy(t, "init", dir)
	require.NoError(t, err)

	out, err := runKontovy(t, "rules", "add", "--project", dir,
		"--pattern", "AUDIBLE", "--category", "entertainment", "--subcategory", "streaming",
		"--priority", "65")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Added rule")

	out, err = runKontovy(t, "rules", "list", "--project", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "AUDIBLE")
	assert.Contains(t, out, "entertainment/streaming")
}

func TestRulesAdd_RejectsUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	_, err := runKontovy(t, "init", dir)
	require.NoError(t, err)

	out, err := runKontovy(t, "rules", "add", "--project", dir,
		"--pattern", "AUDIBLE", "--category", "no-such-category")
	require.Error(t, err)
	assert.Contains(t, out, "no-such-category")
}

func TestRulesAdd_RejectsInvalidRegex(t *testing.T) {
	dir := t.TempDir()
	_, err := runKontovy(t, "init", dir)
	require.NoError(t, err)

	_, err = runKontovy(t, "rules", "add", "--project", dir,
		"--pattern", "(unclosed", "--match", "regex", "--category", "entertainment")
	require.Error(t, err)
}
