package httpx

import (
	"net/http"
	"strings"
)

// HTMX request/response headers used by the UI shell.
const (
	HeaderHXRequest  = "Hx-Request"
	HeaderHXRedirect = "Hx-Redirect"
	HeaderHXTrigger  = "Hx-Trigger"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(HeaderHXRequest), "true")
}

// SetHXRedirect instructs htmx to perform a full-page navigation.
func SetHXRedirect(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderHXRedirect, url)
}

// SetHXTrigger fires a client-side event after the swap.
func SetHXTrigger(w http.ResponseWriter, event string) {
	w.Header().Set(HeaderHXTrigger, event)
}
