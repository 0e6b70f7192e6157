// Package httpx holds small response helpers shared by the handlers.
package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const flashCookieName = "flash"

// Flash is a one-shot message shown on the next rendered page.
// Category is one of success, danger, warning, info.
type Flash struct {
	Category string
	Message  string
}

// SetFlash stores the flash in a cookie so it survives the PRG redirect.
func SetFlash(w http.ResponseWriter, category, message string) {
	value := url.QueryEscape(category + "|" + message)
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: value, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// PopFlash reads and clears the flash cookie. The zero value with ok=false
// means no flash was pending.
func PopFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return Flash{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		raw = c.Value
	}
	category, message, found := strings.Cut(raw, "|")
	if !found {
		return Flash{Category: "info", Message: raw}, true
	}
	return Flash{Category: category, Message: message}, true
}
