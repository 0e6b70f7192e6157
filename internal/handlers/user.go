package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/auth"
	"github.com/gestor-app/gestor/internal/httpx"
	"github.com/gestor-app/gestor/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler { return &UserHandler{db: db} }

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := h.db.Order("id").Find(&users).Error; err != nil {
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	render(w, r, "users.html", map[string]any{"Users": users, "CurrentUserID": uid})
}

// Delete removes another account. Self-deletion belongs to the settings page,
// and the bootstrap admin is untouchable.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if uid, ok := auth.UserIDFromContext(r.Context()); ok && uid == id {
		httpx.SetFlash(w, "danger", "Você não pode excluir a sua própria conta.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	if id == models.AdminUserID {
		httpx.SetFlash(w, "danger", "O usuário admin não pode ser deletado.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.Delete(&user).Error; err != nil {
		httpx.SetFlash(w, "danger", "Não foi possível remover o usuário.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	httpx.SetFlash(w, "success", "Usuário removido com sucesso.")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
