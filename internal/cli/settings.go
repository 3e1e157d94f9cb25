package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/settings"
)

var (
	setStoreName string
	setWhatsApp  string
	setEmail     string
	setAddress   string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the store settings, or change them with flags",
	Long: `Without flags, prints the merged settings record (creating it with
defaults when it does not exist). Any flag given is written back.`,
	RunE: runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().StringVar(&setStoreName, "store-name", "", "Store name shown in messages")
	settingsCmd.Flags().StringVar(&setWhatsApp, "whatsapp", "", "Contact WhatsApp number, stored as typed")
	settingsCmd.Flags().StringVar(&setEmail, "email", "", "Contact email")
	settingsCmd.Flags().StringVar(&setAddress, "address", "", "Contact address")
}

func runSettings(cmd *cobra.Command, args []string) error {
	db, cfg, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	// same cache the API reads on startup, so a restart sees this edit
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	store := settings.NewStore(&settings.Repo{DB: db}, redisx.SettingsCache(rdb, settings.GlobalID))
	cur := store.Load(cmd.Context())

	var p settings.Patch
	changed := false
	for flag, dst := range map[string]**string{
		"store-name": &p.StoreName,
		"whatsapp":   &p.WhatsAppNumber,
		"email":      &p.ContactEmail,
		"address":    &p.ContactAddress,
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			v := f.Value.String()
			*dst = &v
			changed = true
		}
	}
	if changed {
		if cur, err = store.Update(cmd.Context(), p); err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(struct {
		settings.Settings
		WhatsAppNormalized string `json:"whatsapp_normalized"`
		WhatsAppDisplay    string `json:"whatsapp_display"`
	}{cur, orders.NormalizePhone(cur.WhatsAppNumber), orders.FormatPhoneDisplay(cur.WhatsAppNumber)}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
