package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/expenseflow/expenseflow/internal/recordstore"
	"github.com/expenseflow/expenseflow/internal/seed"
	"github.com/expenseflow/expenseflow/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into the record store",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(cfg.App.Env, cfg.Logging.Level)
		lg := logger.LoggerWrapper()

		store, err := recordstore.NewFromConfig(cfg.Store, lg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open record store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		summary, err := seed.NewSeeder(store, lg).Run(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("seeded %s: %d users, %d rules, %d expenses\n",
			summary.Company, len(summary.Users), summary.Rules, summary.Expenses)
	},
}
