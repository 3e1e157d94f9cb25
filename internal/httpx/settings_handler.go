package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/ariefcatur/go-storefront/internal/settings"
)

// SettingsHandler exposes the store settings, the contact handoff and the
// admin settings editor.
type SettingsHandler struct {
	Store   *settings.Store
	BaseURL string
}

func (h *SettingsHandler) Register(r chi.Router) {
	r = timed(r)
	r.Get("/settings", h.get)
	r.Post("/contact", h.contact)
}

// RegisterAdmin expects r to be already gated by an admin session.
func (h *SettingsHandler) RegisterAdmin(r chi.Router) {
	timed(r).Put("/admin/settings", h.update)
}

type settingsView struct {
	settings.Settings
	WhatsAppURL     string `json:"whatsapp_url"`
	WhatsAppDisplay string `json:"whatsapp_display"`
}

func (h *SettingsHandler) view(s settings.Settings) settingsView {
	return settingsView{
		Settings:        s,
		WhatsAppURL:     h.BaseURL + "/" + orders.NormalizePhone(s.WhatsAppNumber),
		WhatsAppDisplay: orders.FormatPhoneDisplay(s.WhatsAppNumber),
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.view(h.Store.Current()))
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var p settings.Patch
	if !decodeJSON(w, r, &p) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s, err := h.Store.Update(ctx, p)
	if err != nil {
		fail(w, "settings", err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

type contactReq struct {
	Name    string `json:"name" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

var validate = validator.New()

func (h *SettingsHandler) contact(w http.ResponseWriter, r *http.Request) {
	var req contactReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "name, subject and message are required")
		return
	}

	text := orders.RenderContactMessage(req.Name, req.Subject, req.Message)
	phone := orders.NormalizePhone(h.Store.Current().WhatsAppNumber)
	writeJSON(w, http.StatusOK, map[string]string{
		"message":      text,
		"whatsapp_url": orders.DeepLink(h.BaseURL, phone, text),
	})
}
