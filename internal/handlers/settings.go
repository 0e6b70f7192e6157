package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/auth"
	"github.com/gestor-app/gestor/internal/forms"
	"github.com/gestor-app/gestor/internal/httpx"
	"github.com/gestor-app/gestor/internal/models"
)

// SettingsHandler serves the configurações page: three independent sub-forms
// (password change, email change, account deletion), each posting to its own
// endpoint and redirecting back.
type SettingsHandler struct {
	db       *gorm.DB
	sessions *auth.Sessions
}

func NewSettingsHandler(db *gorm.DB, sessions *auth.Sessions) *SettingsHandler {
	return &SettingsHandler{db: db, sessions: sessions}
}

func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(h.db, r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	render(w, r, "configuracoes.html", map[string]any{"User": user})
}

func (h *SettingsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(h.db, r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	f, v := forms.ParsePassword(r)
	switch {
	case v["confirmar_senha"] == "must_match":
		httpx.SetFlash(w, "danger", "As senhas devem ser iguais.")
	case !v.Empty():
		httpx.SetFlash(w, "danger", "A senha deve ter pelo menos 6 caracteres.")
	default:
		if err := user.SetPassword(f.NovaSenha); err != nil {
			httpx.SetFlash(w, "danger", "Não foi possível atualizar a senha.")
			break
		}
		if err := h.db.Model(user).Update("password_hash", user.PasswordHash).Error; err != nil {
			httpx.SetFlash(w, "danger", "Não foi possível atualizar a senha.")
			break
		}
		httpx.SetFlash(w, "success", "Sua senha foi atualizada com sucesso!")
	}
	http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
}

func (h *SettingsHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(h.db, r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	f, v := forms.ParseEmail(r)
	if !v.Empty() {
		httpx.SetFlash(w, "danger", "Informe um e-mail válido.")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	var taken int64
	if err := h.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", f.Email, user.ID).
		Count(&taken).Error; err == nil && taken > 0 {
		httpx.SetFlash(w, "danger", "Este e-mail já está em uso.")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	if err := h.db.Model(user).Update("email", f.Email).Error; err != nil {
		httpx.SetFlash(w, "danger", "Este e-mail já está em uso.")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	httpx.SetFlash(w, "success", "Seu e-mail foi atualizado com sucesso!")
	http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
}

// DeleteAccount removes the caller's own account and ends the session.
// The bootstrap admin (id 1) can never be deleted.
func (h *SettingsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(h.db, r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if _, v := forms.ParseDeleteAccount(r); !v.Empty() {
		httpx.SetFlash(w, "warning", "Confirme que entende que esta ação é irreversível.")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	if user.IsAdmin() {
		httpx.SetFlash(w, "danger", "O usuário admin não pode ser deletado.")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	if err := h.db.Delete(user).Error; err != nil {
		httpx.SetFlash(w, "danger", "Não foi possível deletar a conta.")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	h.sessions.Clear(w)
	httpx.SetFlash(w, "info", "Sua conta foi deletada com sucesso.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
