package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariefcatur/go-storefront/internal/auth"
)

var (
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account for the dashboard",
	RunE:  runCreateAdmin,
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email (required)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password, at least 8 characters (required)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	if len(adminPassword) < 8 {
		return errors.New("password must have at least 8 characters")
	}

	db, _, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := &auth.Repo{DB: db}
	a, err := repo.Create(cmd.Context(), adminEmail, adminPassword)
	if errors.Is(err, auth.ErrAdminExists) {
		return fmt.Errorf("%s already has an account", auth.NormalizeEmail(adminEmail))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", a.Email, a.ID)
	return nil
}
