package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontovy/kontovy/internal/model"
)

func TestUserRulesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-rules.yaml")

	rules := []model.CategoryRule{
		NewUserRule("MIN LOKALA BUTIK", model.MatchContains, "groceries", "", 60),
		NewUserRule("GYMKORT", model.MatchStartsWith, "health", "", 80),
	}
	require.NoError(t, SaveUserRules(path, rules))

	got, err := LoadUserRules(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range rules {
		assert.Equal(t, rules[i].ID, got[i].ID, "ids survive the round trip")
		assert.Equal(t, rules[i].Pattern, got[i].Pattern)
		assert.Equal(t, rules[i].Match, got[i].Match)
		assert.Equal(t, rules[i].CategoryID, got[i].CategoryID)
		assert.Equal(t, rules[i].Priority, got[i].Priority)
		assert.True(t, got[i].UserDefined)
	}
}

func TestLoadUserRulesMissingFile(t *testing.T) {
	got, err := LoadUserRules(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadUserRulesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: {not a list}"), 0o644))

	_, err := LoadUserRules(path)
	assert.Error(t, err)
}
