package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariefcatur/go-storefront/internal/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Long: `Applies the idempotent schema: products, orders, settings and admins.
Running it again adds columns that older databases are missing.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, _, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(cmd.Context(), db); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%d statements)\n", len(postgres.Schema))
	return nil
}
