package settings

import (
	"errors"
	"time"
)

const GlobalID = "global"

var ErrNotFound = errors.New("settings not found")

// Settings is the storefront's singleton configuration record. WhatsAppNumber
// is kept as entered; it is normalized where it is used.
type Settings struct {
	ID             string    `json:"id"`
	StoreName      string    `json:"store_name"`
	WhatsAppNumber string    `json:"whatsapp_number"`
	ContactEmail   string    `json:"contact_email"`
	ContactAddress string    `json:"contact_address"`
	HoursMonFri    string    `json:"hours_mon_fri"`
	HoursSat       string    `json:"hours_sat"`
	PrimaryColor   string    `json:"primary_color"`
	SecondaryColor string    `json:"secondary_color"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func Defaults() Settings {
	return Settings{
		ID:             GlobalID,
		StoreName:      "ESTOFADOS ELITE",
		WhatsAppNumber: "21965091676",
		ContactEmail:   "contato@estofadoselite.com.br",
		ContactAddress: "Av. das Américas, 4200 - Barra da Tijuca, Rio de Janeiro - RJ",
		HoursMonFri:    "09h às 18h",
		HoursSat:       "09h às 13h",
		PrimaryColor:   "#d97706",
		SecondaryColor: "#0f172a",
	}
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	StoreName      *string `json:"store_name"`
	WhatsAppNumber *string `json:"whatsapp_number"`
	ContactEmail   *string `json:"contact_email"`
	ContactAddress *string `json:"contact_address"`
	HoursMonFri    *string `json:"hours_mon_fri"`
	HoursSat       *string `json:"hours_sat"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
}

// Merge overlays the non-empty fields of row on base. Fields the backing
// store left NULL or blank keep the base value.
func Merge(base Settings, row Patch) Settings {
	out := base
	set := func(dst *string, v *string) {
		if v != nil && *v != "" {
			*dst = *v
		}
	}
	set(&out.StoreName, row.StoreName)
	set(&out.WhatsAppNumber, row.WhatsAppNumber)
	set(&out.ContactEmail, row.ContactEmail)
	set(&out.ContactAddress, row.ContactAddress)
	set(&out.HoursMonFri, row.HoursMonFri)
	set(&out.HoursSat, row.HoursSat)
	set(&out.PrimaryColor, row.PrimaryColor)
	set(&out.SecondaryColor, row.SecondaryColor)
	out.ID = GlobalID
	return out
}
