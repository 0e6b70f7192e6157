// Package handlers contains the HTTP handlers, one struct per page group.
// All POST handlers follow Post/Redirect/Get with a flash cookie carrying the
// outcome message.
package handlers

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/auth"
	"github.com/gestor-app/gestor/internal/httpx"
	"github.com/gestor-app/gestor/internal/models"
	"github.com/gestor-app/gestor/internal/view"
)

// render injects any pending flash and executes the template.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if f, ok := httpx.PopFlash(w, r); ok {
		data["Flash"] = f
	}
	if err := view.Render(w, r, name, data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("erro ao renderizar a página"))
	}
}

// pathID parses the {id} path segment. ok=false means the reference is
// malformed and the caller should respond 404.
func pathID(r *http.Request) (uint, bool) {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// currentUser loads the authenticated user from the session context.
func currentUser(db *gorm.DB, r *http.Request) (*models.User, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok || uid == 0 {
		return nil, false
	}
	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		return nil, false
	}
	return &user, true
}
