package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kontovy/kontovy/internal/id"
	"github.com/kontovy/kontovy/internal/model"
)

// ruleFile is the on-disk form of the user rule set.
type ruleFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	ID          string `yaml:"id"`
	Pattern     string `yaml:"pattern"`
	Match       string `yaml:"match"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory,omitempty"`
	Priority    int    `yaml:"priority"`
}

// LoadUserRules reads user-defined rules from a YAML file. A missing file is
// an empty rule set, not an error.
func LoadUserRules(path string) ([]model.CategoryRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}

	rules := make([]model.CategoryRule, 0, len(rf.Rules))
	for _, e := range rf.Rules {
		rules = append(rules, model.CategoryRule{
			ID:            e.ID,
			Pattern:       e.Pattern,
			Match:         model.MatchKind(e.Match),
			CategoryID:    e.Category,
			SubcategoryID: e.Subcategory,
			Priority:      e.Priority,
			UserDefined:   true,
		})
	}
	return rules, nil
}

// SaveUserRules writes the user rule set to a YAML file.
func SaveUserRules(path string, rules []model.CategoryRule) error {
	rf := ruleFile{Rules: make([]ruleEntry, 0, len(rules))}
	for _, r := range rules {
		rf.Rules = append(rf.Rules, ruleEntry{
			ID:          r.ID,
			Pattern:     r.Pattern,
			Match:       string(r.Match),
			Category:    r.CategoryID,
			Subcategory: r.SubcategoryID,
			Priority:    r.Priority,
		})
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules file: %w", err)
	}
	return nil
}

// NewUserRule creates a user-defined rule with a fresh stable id.
func NewUserRule(pattern string, match model.MatchKind, categoryID, subcategoryID string, priority int) model.CategoryRule {
	return model.CategoryRule{
		ID:            id.NewUserRule(),
		Pattern:       pattern,
		Match:         match,
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		Priority:      priority,
		UserDefined:   true,
	}
}
