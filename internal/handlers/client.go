package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/forms"
	"github.com/gestor-app/gestor/internal/httpx"
	"github.com/gestor-app/gestor/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{db: db} }

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search_query"))
	dbq := h.db.Order("nome")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		dbq = dbq.Where("lower(nome) LIKE ? OR lower(email) LIKE ?", like, like)
	}
	var clientes []models.Client
	if err := dbq.Find(&clientes).Error; err != nil {
		http.Error(w, "erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	render(w, r, "clientes.html", map[string]any{
		"Clientes":    clientes,
		"SearchQuery": query,
	})
}

func (h *ClientHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, "client_form.html", nil)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, v := forms.ParseClient(r)
	if !v.Empty() {
		render(w, r, "client_form.html", map[string]any{"Form": f, "Errors": v})
		return
	}
	var cliente models.Client
	f.Apply(&cliente)
	if err := h.db.Create(&cliente).Error; err != nil {
		render(w, r, "client_form.html", map[string]any{
			"Form":  f,
			"Flash": httpx.Flash{Category: "danger", Message: "Não foi possível salvar o cliente"},
		})
		return
	}
	httpx.SetFlash(w, "success", "Cliente criado com sucesso")
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}

func (h *ClientHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var cliente models.Client
	if err := h.db.First(&cliente, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	render(w, r, "client_form.html", map[string]any{"Client": cliente})
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var cliente models.Client
	if err := h.db.First(&cliente, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	f, v := forms.ParseClient(r)
	if !v.Empty() {
		render(w, r, "client_form.html", map[string]any{"Client": cliente, "Form": f, "Errors": v})
		return
	}
	f.Apply(&cliente)
	if err := h.db.Save(&cliente).Error; err != nil {
		render(w, r, "client_form.html", map[string]any{
			"Client": cliente,
			"Form":   f,
			"Flash":  httpx.Flash{Category: "danger", Message: "Não foi possível salvar o cliente"},
		})
		return
	}
	httpx.SetFlash(w, "success", "Cliente atualizado")
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var cliente models.Client
	if err := h.db.First(&cliente, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.Delete(&cliente).Error; err != nil {
		httpx.SetFlash(w, "danger", "Não foi possível remover o cliente")
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	httpx.SetFlash(w, "success", "Cliente removido")
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}
