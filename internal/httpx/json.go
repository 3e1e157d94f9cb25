package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/ariefcatur/go-storefront/internal/cart"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/ariefcatur/go-storefront/internal/settings"
)

const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// fail maps domain errors onto status codes. Unknown errors are logged and
// reported as 500.
func fail(w http.ResponseWriter, tag string, err error) {
	var (
		pve *catalog.ValidationError
		ove *orders.ValidationError
		mce *catalog.MissingColumnError
		sve *settings.SaveError
	)
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, orders.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orders.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &pve), errors.As(err, &ove),
		errors.Is(err, catalog.ErrUnknownCategory),
		errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidVariant):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &mce), errors.As(err, &sve):
		log.Printf("[%s] %v", tag, err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("[%s] %v", tag, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
