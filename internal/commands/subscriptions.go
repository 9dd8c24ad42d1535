package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kontovy/kontovy/internal/config"
	"github.com/kontovy/kontovy/internal/ledger"
	"github.com/kontovy/kontovy/internal/model"
	"github.com/kontovy/kontovy/internal/recurring"
	"github.com/kontovy/kontovy/internal/store"
	"github.com/kontovy/kontovy/internal/subscription"
)

func newSubscriptionsCommand() *cobra.Command {
	subsCmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Recurring payment candidates and confirmed subscriptions",
	}
	subsCmd.AddCommand(newSubsCandidatesCommand())
	subsCmd.AddCommand(newSubsConfirmCommand())
	subsCmd.AddCommand(newSubsListCommand())
	subsCmd.AddCommand(newSubsSetActiveCommand("pause", "Pause a subscription", false))
	subsCmd.AddCommand(newSubsSetActiveCommand("resume", "Resume a paused subscription", true))
	subsCmd.AddCommand(newSubsRemoveCommand())
	return subsCmd
}

func newSubsCandidatesCommand() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Detect recurring payment candidates from the imported transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			_, candidates, err := detectCandidates(absDir)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				fmt.Println("No recurring payment candidates found.")
				return nil
			}
			for i, c := range candidates {
				fmt.Printf("  [%d] %-30s %-9s day %-3d ~%s kr  (%d payments, confidence %d)\n",
					i, c.Recipient, c.Frequency, c.BillingDay, c.AverageAmount.StringFixed(2),
					c.Occurrences, c.Confidence)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	return cmd
}

func newSubsConfirmCommand() *cobra.Command {
	var projectDir string
	var as string

	cmd := &cobra.Command{
		Use:   "confirm <candidate>",
		Short: "Confirm a detected candidate as a subscription or fixed expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("candidate must be an index from `subscriptions candidates`: %w", err)
			}
			return runSubsConfirm(absDir, index, subscription.Decision(as))
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	cmd.Flags().StringVar(&as, "as", string(subscription.DecisionSubscription),
		"decision: subscription, fixed-expense or skip")
	return cmd
}

func runSubsConfirm(projectDir string, index int, decision subscription.Decision) error {
	cfg, txns, candidates, err := detectCandidatesWithConfig(projectDir)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(candidates) {
		return fmt.Errorf("candidate %d out of range (detected %d)", index, len(candidates))
	}

	kv, err := store.OpenSQLite(filepath.Join(projectDir, cfg.Paths.Store))
	if err != nil {
		return err
	}
	defer kv.Close()

	sub, err := subscription.NewService(kv).Confirm(candidates[index], decision)
	if err != nil {
		return err
	}
	if sub == nil {
		fmt.Printf("Skipped %s\n", candidates[index].Recipient)
		return nil
	}

	// Tag the contributing transactions and persist the updated set.
	subscription.Tag(txns, *sub)
	if err := ledger.Save(filepath.Join(projectDir, cfg.Paths.Ledger), txns); err != nil {
		return err
	}

	fmt.Printf("Confirmed %s as %s (%s)\n", sub.Name, sub.Kind, sub.ID)
	return nil
}

func newSubsListCommand() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List confirmed subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runSubsList(absDir)
		},
	}
	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	return cmd
}

func runSubsList(projectDir string) error {
	cfg, err := config.Load(filepath.Join(projectDir, "kontovy.yaml"))
	if err != nil {
		return err
	}

	kv, err := store.OpenSQLite(filepath.Join(projectDir, cfg.Paths.Store))
	if err != nil {
		return err
	}
	defer kv.Close()

	subs, err := subscription.NewService(kv).List()
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		fmt.Println("No confirmed subscriptions.")
		return nil
	}
	for _, s := range subs {
		state := "active"
		if !s.Active {
			state = "paused"
		}
		fmt.Printf("  %-30s %-14s %-9s day %-3d %s kr  [%s]\n",
			s.Name, s.Kind, s.Frequency, s.BillingDay, s.Amount.StringFixed(2), state)
	}
	return nil
}

func newSubsSetActiveCommand(use, short string, active bool) *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return withSubscriptionService(absDir, func(svc *subscription.Service) error {
				return svc.SetActive(args[0], active)
			})
		},
	}
	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	return cmd
}

func newSubsRemoveCommand() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a confirmed subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return withSubscriptionService(absDir, func(svc *subscription.Service) error {
				return svc.Remove(args[0])
			})
		},
	}
	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	return cmd
}

func withSubscriptionService(projectDir string, fn func(*subscription.Service) error) error {
	cfg, err := config.Load(filepath.Join(projectDir, "kontovy.yaml"))
	if err != nil {
		return err
	}
	kv, err := store.OpenSQLite(filepath.Join(projectDir, cfg.Paths.Store))
	if err != nil {
		return err
	}
	defer kv.Close()
	return fn(subscription.NewService(kv))
}

func detectCandidates(projectDir string) ([]model.Transaction, []model.DetectedRecurringGroup, error) {
	_, txns, candidates, err := detectCandidatesWithConfig(projectDir)
	return txns, candidates, err
}

func detectCandidatesWithConfig(projectDir string) (*config.Config, []model.Transaction, []model.DetectedRecurringGroup, error) {
	cfg, err := config.Load(filepath.Join(projectDir, "kontovy.yaml"))
	if err != nil {
		return nil, nil, nil, err
	}

	txns, err := ledger.Load(filepath.Join(projectDir, cfg.Paths.Ledger))
	if err != nil {
		return nil, nil, nil, err
	}

	detector := recurring.New(cfg.RecurringConfig())
	return cfg, txns, detector.Detect(txns), nil
}
