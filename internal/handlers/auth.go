package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/auth"
	"github.com/gestor-app/gestor/internal/forms"
	"github.com/gestor-app/gestor/internal/httpx"
	"github.com/gestor-app/gestor/internal/models"
)

type AuthHandler struct {
	db       *gorm.DB
	sessions *auth.Sessions
}

func NewAuthHandler(db *gorm.DB, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, "login.html", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	f, v := forms.ParseLogin(r)
	if !v.Empty() {
		render(w, r, "login.html", map[string]any{
			"Flash": httpx.Flash{Category: "warning", Message: "Preencha usuário e senha"},
			"Form":  f,
		})
		return
	}
	var user models.User
	err := h.db.Where("username = ?", f.Username).First(&user).Error
	if err != nil || !user.CheckPassword(f.Password) {
		render(w, r, "login.html", map[string]any{
			"Flash": httpx.Flash{Category: "danger", Message: "Usuário ou senha inválidos"},
			"Form":  f,
		})
		return
	}
	h.sessions.Create(w, user.ID)
	httpx.SetFlash(w, "success", "Logado com sucesso")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, "register.html", nil)
}

// Register creates the account but leaves the caller anonymous; logging in is
// an explicit second step.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	f, v := forms.ParseRegister(r)
	if !v.Empty() {
		render(w, r, "register.html", map[string]any{
			"Flash":  httpx.Flash{Category: "warning", Message: "Preencha todos os campos"},
			"Form":   f,
			"Errors": v,
		})
		return
	}
	var count int64
	if err := h.db.Model(&models.User{}).
		Where("username = ? OR email = ?", f.Username, f.Email).
		Count(&count).Error; err == nil && count > 0 {
		render(w, r, "register.html", map[string]any{
			"Flash": httpx.Flash{Category: "warning", Message: "Usuário ou e-mail já existe"},
			"Form":  f,
		})
		return
	}
	user := models.User{Username: f.Username, Email: f.Email}
	if err := user.SetPassword(f.Password); err != nil {
		render(w, r, "register.html", map[string]any{
			"Flash": httpx.Flash{Category: "danger", Message: "Não foi possível criar a conta"},
			"Form":  f,
		})
		return
	}
	if err := h.db.Create(&user).Error; err != nil {
		// unique index race: treat like the pre-check
		render(w, r, "register.html", map[string]any{
			"Flash": httpx.Flash{Category: "warning", Message: "Usuário ou e-mail já existe"},
			"Form":  f,
		})
		return
	}
	httpx.SetFlash(w, "success", "Cadastro concluído. Faça login!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	httpx.SetFlash(w, "info", "Você saiu")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
