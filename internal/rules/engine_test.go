package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontovy/kontovy/internal/categories"
	"github.com/kontovy/kontovy/internal/model"
)

func registry() *categories.Service {
	return categories.NewService(categories.DefaultRegistry())
}

func rule(pattern string, match model.MatchKind, category string, priority int) model.CategoryRule {
	return model.CategoryRule{
		ID:         "test_" + pattern + string(match),
		Pattern:    pattern,
		Match:      match,
		CategoryID: category,
		Priority:   priority,
	}
}

func TestMatchKinds(t *testing.T) {
	eng, err := NewEngine([]model.CategoryRule{
		rule("SL", model.MatchExact, "transport", 75),
		rule("SL ", model.MatchStartsWith, "transport", 75),
		rule("NETFLIX", model.MatchContains, "entertainment", 80),
		rule(`^sj\s+\d+`, model.MatchRegex, "transport", 75),
	}, nil, registry())
	require.NoError(t, err)

	tests := []struct {
		desc    string
		want    string
		matched bool
	}{
		{"SL", "transport", true},
		{"SL STATION", "transport", true}, // starts_with "SL ", not exact "SL"
		{"SLOTTSCAFÉET", "", false},
		{"PAYMENT NETFLIX COM", "entertainment", true},
		{"SJ 12345", "transport", true},
		{"UNKNOWN MERCHANT", "", false},
	}
	for _, tt := range tests {
		cat, _, ok := eng.Match(tt.desc)
		assert.Equal(t, tt.matched, ok, "desc %q", tt.desc)
		assert.Equal(t, tt.want, cat, "desc %q", tt.desc)
	}
}

func TestExactDoesNotMatchLonger(t *testing.T) {
	eng, err := NewEngine([]model.CategoryRule{
		rule("SL", model.MatchExact, "transport", 75),
	}, nil, registry())
	require.NoError(t, err)

	_, _, ok := eng.Match("SL STATION")
	assert.False(t, ok)
}

func TestPriorityOrdering(t *testing.T) {
	eng, err := NewEngine([]model.CategoryRule{
		rule("ICA", model.MatchContains, "shopping", 70),
		rule("ICA", model.MatchContains, "groceries", 90),
	}, nil, registry())
	require.NoError(t, err)

	cat, _, ok := eng.Match("ICA SUPERMARKET")
	require.True(t, ok)
	assert.Equal(t, "groceries", cat)
}

func TestTieBreakKeepsDefinitionOrder(t *testing.T) {
	// Equal priority: built-ins keep their order, user rules come after.
	builtin := []model.CategoryRule{
		rule("COOP", model.MatchContains, "groceries", 70),
	}
	user := []model.CategoryRule{
		rule("COOP", model.MatchContains, "shopping", 70),
	}
	eng, err := NewEngine(builtin, user, registry())
	require.NoError(t, err)

	cat, _, ok := eng.Match("COOP KONSUM")
	require.True(t, ok)
	assert.Equal(t, "groceries", cat)

	// A higher-priority user rule overrides the built-in.
	user[0].Priority = 95
	eng, err = NewEngine(builtin, user, registry())
	require.NoError(t, err)
	cat, _, _ = eng.Match("COOP KONSUM")
	assert.Equal(t, "shopping", cat)
}

func TestUnknownTargetsRejected(t *testing.T) {
	_, err := NewEngine([]model.CategoryRule{
		rule("X", model.MatchContains, "no-such-category", 50),
	}, nil, registry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")

	bad := rule("X", model.MatchContains, "groceries", 50)
	bad.SubcategoryID = "streaming" // belongs to entertainment
	_, err = NewEngine([]model.CategoryRule{bad}, nil, registry())
	require.Error(t, err)
}

func TestInvalidRegexRejected(t *testing.T) {
	_, err := NewEngine([]model.CategoryRule{
		rule("(unclosed", model.MatchRegex, "groceries", 50),
	}, nil, registry())
	require.Error(t, err)
}

func TestCategorizeIdempotent(t *testing.T) {
	eng, err := NewEngine(Builtin(), nil, registry())
	require.NoError(t, err)

	txns := []model.Transaction{
		{ID: "t1", Description: "NETFLIX COM", Amount: decimal.NewFromInt(-99)},
		{ID: "t2", Description: "ICA SUPERMARKET", Amount: decimal.NewFromInt(-245)},
		{ID: "t3", Description: "MYSTERY SHOP 42", Amount: decimal.NewFromInt(-10)},
	}

	eng.Categorize(txns)
	first := make([]model.Transaction, len(txns))
	copy(first, txns)

	eng.Categorize(txns)
	for i := range txns {
		assert.Equal(t, first[i].CategoryID, txns[i].CategoryID)
		assert.Equal(t, first[i].SubcategoryID, txns[i].SubcategoryID)
		assert.Equal(t, first[i].Tags, txns[i].Tags)
	}

	assert.Equal(t, "entertainment", txns[0].CategoryID)
	assert.Equal(t, "streaming", txns[0].SubcategoryID)
	assert.Equal(t, "groceries", txns[1].CategoryID)
	assert.Empty(t, txns[2].CategoryID)
	assert.True(t, txns[2].HasTag(model.TagUncategorized))
}

func TestBuiltinRulesValid(t *testing.T) {
	// Every built-in rule must target a registered category.
	_, err := NewEngine(Builtin(), nil, registry())
	require.NoError(t, err)

	// Content-hash ids are unique.
	seen := make(map[string]bool)
	for _, r := range Builtin() {
		assert.False(t, seen[r.ID], "duplicate rule id %s", r.ID)
		seen[r.ID] = true
	}
}
