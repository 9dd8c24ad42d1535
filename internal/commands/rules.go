package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kontovy/kontovy/internal/config"
	"github.com/kontovy/kontovy/internal/model"
	"github.com/kontovy/kontovy/internal/rules"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Categorization rule management",
	}
	rulesCmd.AddCommand(newRulesListCommand())
	rulesCmd.AddCommand(newRulesAddCommand())
	return rulesCmd
}

func newRulesListCommand() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and user-defined rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runRulesList(absDir)
		},
	}
	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	return cmd
}

func runRulesList(projectDir string) error {
	cfg, err := config.Load(filepath.Join(projectDir, "kontovy.yaml"))
	if err != nil {
		return err
	}
	userRules, err := rules.LoadUserRules(filepath.Join(projectDir, cfg.Paths.Rules))
	if err != nil {
		return err
	}

	printRules("Built-in rules", rules.Builtin())
	printRules("User rules", userRules)
	return nil
}

func printRules(title string, rs []model.CategoryRule) {
	fmt.Printf("%s (%d):\n", title, len(rs))
	for _, r := range rs {
		target := r.CategoryID
		if r.SubcategoryID != "" {
			target += "/" + r.SubcategoryID
		}
		fmt.Printf("  %-20s %-12s p%-3d -> %s\n", r.Pattern, r.Match, r.Priority, target)
	}
}

func newRulesAddCommand() *cobra.Command {
	var projectDir string
	var pattern, match, category, subcategory string
	var priority int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user-defined categorization rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runRulesAdd(absDir, pattern, match, category, subcategory, priority)
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	cmd.Flags().StringVar(&pattern, "pattern", "", "pattern to match (required)")
	_ = cmd.MarkFlagRequired("pattern")
	cmd.Flags().StringVar(&match, "match", string(model.MatchContains), "match kind: exact, starts_with, contains, regex")
	cmd.Flags().StringVar(&category, "category", "", "target category id (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "target subcategory id")
	cmd.Flags().IntVar(&priority, "priority", 60, "rule priority")

	return cmd
}

func runRulesAdd(projectDir, pattern, match, category, subcategory string, priority int) error {
	cfg, err := config.Load(filepath.Join(projectDir, "kontovy.yaml"))
	if err != nil {
		return err
	}

	rulesPath := filepath.Join(projectDir, cfg.Paths.Rules)
	userRules, err := rules.LoadUserRules(rulesPath)
	if err != nil {
		return err
	}

	newRule := rules.NewUserRule(pattern, model.MatchKind(match), category, subcategory, priority)

	// Validate the combined set before persisting: target ids must exist
	// and regex patterns must compile.
	registry, err := loadRegistry(projectDir, cfg)
	if err != nil {
		return err
	}
	if _, err := rules.NewEngine(rules.Builtin(), append(userRules, newRule), registry); err != nil {
		return err
	}

	userRules = append(userRules, newRule)
	if err := rules.SaveUserRules(rulesPath, userRules); err != nil {
		return err
	}

	fmt.Printf("Added rule %s\n", newRule.ID)
	return nil
}
