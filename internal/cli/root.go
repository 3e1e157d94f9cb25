package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ariefcatur/go-storefront/internal/config"
	"github.com/ariefcatur/go-storefront/internal/postgres"
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "Operator tooling for the storefront",
	Long: `storectl prepares and inspects the storefront database: it applies the
schema, creates admin accounts and reads or edits the store settings.

Configuration is read from the environment (and .env) exactly like the API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func connect(ctx context.Context) (*pgxpool.Pool, config.Config, error) {
	cfg := config.Load()
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, cfg, nil
}
