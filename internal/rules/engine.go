package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kontovy/kontovy/internal/model"
)

// CategoryChecker validates that a rule's target ids exist in the external
// category registry. The engine holds no registry state of its own.
type CategoryChecker interface {
	Exists(categoryID string) bool
	SubcategoryOf(subcategoryID, categoryID string) bool
}

// compiledRule pairs a rule with its compiled pattern. Regex patterns are
// compiled once here, never per transaction.
type compiledRule struct {
	rule    model.CategoryRule
	lowered string
	re      *regexp.Regexp
}

// Engine evaluates an ordered rule set against transaction descriptions.
// An Engine is a read-only snapshot: rule changes are not visible until a
// new Engine is built for the next pass.
type Engine struct {
	rules []compiledRule
}

// NewEngine combines built-in and user rules into an evaluation snapshot.
// Rules are ordered descending by priority; ties keep definition order, with
// user rules after built-ins at equal priority. Rule targets are validated
// against the registry and regex patterns are compiled up front.
func NewEngine(builtin, user []model.CategoryRule, registry CategoryChecker) (*Engine, error) {
	combined := make([]model.CategoryRule, 0, len(builtin)+len(user))
	combined = append(combined, builtin...)
	combined = append(combined, user...)

	compiled := make([]compiledRule, 0, len(combined))
	for _, r := range combined {
		if !registry.Exists(r.CategoryID) {
			return nil, fmt.Errorf("rule %s: unknown category %q", r.ID, r.CategoryID)
		}
		if r.SubcategoryID != "" && !registry.SubcategoryOf(r.SubcategoryID, r.CategoryID) {
			return nil, fmt.Errorf("rule %s: %q is not a subcategory of %q", r.ID, r.SubcategoryID, r.CategoryID)
		}

		cr := compiledRule{rule: r, lowered: strings.ToLower(r.Pattern)}
		if r.Match == model.MatchRegex {
			re, err := regexp.Compile("(?i)" + r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %s: compiling pattern %q: %w", r.ID, r.Pattern, err)
			}
			cr.re = re
		}
		compiled = append(compiled, cr)
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].rule.Priority > compiled[j].rule.Priority
	})

	return &Engine{rules: compiled}, nil
}

// Match evaluates rules in order against the description, case-insensitively.
// The first matching rule wins.
func (e *Engine) Match(description string) (categoryID, subcategoryID string, ok bool) {
	desc := strings.ToLower(strings.TrimSpace(description))
	for _, cr := range e.rules {
		if cr.matches(desc) {
			return cr.rule.CategoryID, cr.rule.SubcategoryID, true
		}
	}
	return "", "", false
}

func (cr compiledRule) matches(lowerDesc string) bool {
	switch cr.rule.Match {
	case model.MatchExact:
		return lowerDesc == cr.lowered
	case model.MatchStartsWith:
		return strings.HasPrefix(lowerDesc, cr.lowered)
	case model.MatchContains:
		return strings.Contains(lowerDesc, cr.lowered)
	case model.MatchRegex:
		return cr.re.MatchString(lowerDesc)
	default:
		return false
	}
}

// Categorize assigns categories to every transaction in place. A transaction
// with no matching rule keeps its previous assignment, if any, and is tagged
// uncategorized when it has none. Running the same pass twice over unchanged
// input is idempotent.
func (e *Engine) Categorize(txns []model.Transaction) {
	for i := range txns {
		cat, sub, ok := e.Match(txns[i].Description)
		if ok {
			txns[i].CategoryID = cat
			txns[i].SubcategoryID = sub
			txns[i].RemoveTag(model.TagUncategorized)
			continue
		}
		if txns[i].CategoryID == "" {
			txns[i].AddTag(model.TagUncategorized)
		}
	}
}
