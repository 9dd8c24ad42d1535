package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kontovy/kontovy/internal/categories"
	"github.com/kontovy/kontovy/internal/config"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new kontovy project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir)
		},
	}
}

func runInit(dir string) error {
	for _, d := range []string{"rules", "categories", "data", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write kontovy.yaml.
	if err := os.WriteFile(filepath.Join(dir, "kontovy.yaml"), []byte(config.DefaultYAML), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the default category registry.
	svc := categories.NewService(categories.DefaultRegistry())
	if err := svc.Save(filepath.Join(dir, "categories", "registry.csv")); err != nil {
		return fmt.Errorf("writing category registry: %w", err)
	}

	// Write empty user rules.
	if err := os.WriteFile(filepath.Join(dir, "rules", "user-rules.yaml"), []byte("rules: []\n"), 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	fmt.Printf("Initialized kontovy project at %s\n", dir)
	return nil
}
