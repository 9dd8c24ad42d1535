package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kontovy/kontovy/internal/auditlog"
	"github.com/kontovy/kontovy/internal/categories"
	"github.com/kontovy/kontovy/internal/config"
	"github.com/kontovy/kontovy/internal/importer"
	"github.com/kontovy/kontovy/internal/ledger"
	"github.com/kontovy/kontovy/internal/logging"
	"github.com/kontovy/kontovy/internal/model"
	"github.com/kontovy/kontovy/internal/recurring"
	"github.com/kontovy/kontovy/internal/rules"
)

// mappingFlags lets the user override the resolver's suggestion with an
// explicit column mapping.
type mappingFlags struct {
	date        int
	description int
	amount      int
	balance     int
	reference   int
}

func newImportCommand() *cobra.Command {
	var projectDir string
	var bank string
	var mf mappingFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runImport(absDir, args[0], bank, mf)
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	cmd.Flags().StringVar(&bank, "bank", "", "bank format id (e.g. seb, swedbank); overrides config")
	cmd.Flags().IntVar(&mf.date, "date-col", -1, "date column index, overriding auto-detection")
	cmd.Flags().IntVar(&mf.description, "description-col", -1, "description column index, overriding auto-detection")
	cmd.Flags().IntVar(&mf.amount, "amount-col", -1, "amount column index, overriding auto-detection")
	cmd.Flags().IntVar(&mf.balance, "balance-col", -1, "balance column index, overriding auto-detection")
	cmd.Flags().IntVar(&mf.reference, "reference-col", -1, "reference column index, overriding auto-detection")

	return cmd
}

func runImport(projectDir, file, bank string, mf mappingFlags) error {
	cfg, err := config.Load(filepath.Join(projectDir, "kontovy.yaml"))
	if err != nil {
		return err
	}
	logger := logging.Init(cfg.LogLevel)
	if bank == "" {
		bank = cfg.Bank
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading export file: %w", err)
	}

	table, err := importer.Parse(string(raw), cfg.ImporterDialect())
	if err != nil {
		return err
	}
	logger.Info("parsed export", slog.String("file", file), slog.Int("rows", table.RowCount()))

	mapping := importer.ResolveMapping(importer.Classify(table), table.Headers)
	applyMappingFlags(&mapping, mf)
	if !mapping.Complete() {
		return fmt.Errorf("could not resolve columns for: %v; supply them with --date-col, --description-col and --amount-col",
			mapping.MissingRoles())
	}

	result, err := importer.Normalize(table, importer.NormalizeOptions{Mapping: mapping, Bank: bank})
	if err != nil {
		return err
	}
	if result.Skipped > 0 {
		logger.Warn("skipped unparseable rows", slog.Int("count", result.Skipped))
	}

	registry, err := loadRegistry(projectDir, cfg)
	if err != nil {
		return err
	}
	userRules, err := rules.LoadUserRules(filepath.Join(projectDir, cfg.Paths.Rules))
	if err != nil {
		return err
	}
	engine, err := rules.NewEngine(rules.Builtin(), userRules, registry)
	if err != nil {
		return err
	}
	engine.Categorize(result.Transactions)

	detector := recurring.New(cfg.RecurringConfig())
	candidates := detector.Detect(result.Transactions)

	if err := ledger.Save(filepath.Join(projectDir, cfg.Paths.Ledger), result.Transactions); err != nil {
		return err
	}

	entry := auditlog.Entry{
		Timestamp:    time.Now().UTC(),
		File:         filepath.Base(file),
		Bank:         bank,
		RowsParsed:   table.RowCount(),
		RowsSkipped:  result.Skipped,
		Transactions: len(result.Transactions),
		Candidates:   len(candidates),
	}
	if err := auditlog.Append(projectDir, []auditlog.Entry{entry}); err != nil {
		logger.Warn("failed to write import log", slog.String("error", err.Error()))
	}

	printImportSummary(result, candidates)
	return nil
}

func applyMappingFlags(m *importer.ColumnMapping, mf mappingFlags) {
	if mf.date >= 0 {
		m.Date = mf.date
	}
	if mf.description >= 0 {
		m.Description = mf.description
	}
	if mf.amount >= 0 {
		m.Amount = mf.amount
	}
	if mf.balance >= 0 {
		m.Balance = mf.balance
	}
	if mf.reference >= 0 {
		m.Reference = mf.reference
	}
}

// loadRegistry reads the project's category registry, falling back to the
// built-in registry when the project has none.
func loadRegistry(projectDir string, cfg *config.Config) (*categories.Service, error) {
	path := filepath.Join(projectDir, cfg.Paths.Categories)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return categories.NewService(categories.DefaultRegistry()), nil
	}
	return categories.Load(path)
}

func printImportSummary(result importer.NormalizeResult, candidates []model.DetectedRecurringGroup) {
	uncategorized := 0
	for _, t := range result.Transactions {
		if t.HasTag(model.TagUncategorized) {
			uncategorized++
		}
	}

	fmt.Printf("Imported %d transactions (%d rows skipped, %d uncategorized)\n",
		len(result.Transactions), result.Skipped, uncategorized)

	if len(candidates) == 0 {
		return
	}
	fmt.Printf("\nRecurring payment candidates:\n")
	for i, c := range candidates {
		fmt.Printf("  [%d] %-30s %-9s day %-3d ~%s kr  (%d payments, confidence %d)\n",
			i, c.Recipient, c.Frequency, c.BillingDay, c.AverageAmount.StringFixed(2),
			c.Occurrences, c.Confidence)
	}
	fmt.Printf("\nConfirm candidates with: kontovy subscriptions confirm <n>\n")
}
