package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/forms"
	"github.com/gestor-app/gestor/internal/httpx"
	"github.com/gestor-app/gestor/internal/models"
)

type SupplierHandler struct {
	db *gorm.DB
}

func NewSupplierHandler(db *gorm.DB) *SupplierHandler { return &SupplierHandler{db: db} }

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search_query"))
	dbq := h.db.Order("nome")
	if query != "" {
		dbq = dbq.Where("lower(nome) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	var fornecedores []models.Supplier
	if err := dbq.Find(&fornecedores).Error; err != nil {
		http.Error(w, "erro ao listar fornecedores", http.StatusInternalServerError)
		return
	}
	render(w, r, "suppliers.html", map[string]any{
		"Fornecedores": fornecedores,
		"SearchQuery":  query,
	})
}

func (h *SupplierHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, "supplier_form.html", nil)
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, v := forms.ParseSupplier(r)
	if !v.Empty() {
		render(w, r, "supplier_form.html", map[string]any{"Form": f, "Errors": v})
		return
	}
	var fornecedor models.Supplier
	f.Apply(&fornecedor)
	if err := h.db.Create(&fornecedor).Error; err != nil {
		render(w, r, "supplier_form.html", map[string]any{
			"Form":  f,
			"Flash": httpx.Flash{Category: "danger", Message: "Não foi possível salvar o fornecedor"},
		})
		return
	}
	httpx.SetFlash(w, "success", "Fornecedor criado com sucesso")
	http.Redirect(w, r, "/fornecedores", http.StatusSeeOther)
}

func (h *SupplierHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var fornecedor models.Supplier
	if err := h.db.First(&fornecedor, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	render(w, r, "supplier_form.html", map[string]any{"Supplier": fornecedor})
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var fornecedor models.Supplier
	if err := h.db.First(&fornecedor, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	f, v := forms.ParseSupplier(r)
	if !v.Empty() {
		render(w, r, "supplier_form.html", map[string]any{"Supplier": fornecedor, "Form": f, "Errors": v})
		return
	}
	f.Apply(&fornecedor)
	if err := h.db.Save(&fornecedor).Error; err != nil {
		render(w, r, "supplier_form.html", map[string]any{
			"Supplier": fornecedor,
			"Form":     f,
			"Flash":    httpx.Flash{Category: "danger", Message: "Não foi possível salvar o fornecedor"},
		})
		return
	}
	httpx.SetFlash(w, "success", "Fornecedor atualizado")
	http.Redirect(w, r, "/fornecedores", http.StatusSeeOther)
}

// Delete refuses to remove a supplier that still has products attached; the
// row is left untouched in that case.
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var fornecedor models.Supplier
	if err := h.db.First(&fornecedor, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	var produtos int64
	if err := h.db.Model(&models.Product{}).Where("fornecedor_id = ?", id).Count(&produtos).Error; err != nil {
		httpx.SetFlash(w, "danger", "Não foi possível remover o fornecedor")
		http.Redirect(w, r, "/fornecedores", http.StatusSeeOther)
		return
	}
	if produtos > 0 {
		httpx.SetFlash(w, "danger", "Não é possível excluir fornecedor com produtos associados.")
		http.Redirect(w, r, "/fornecedores", http.StatusSeeOther)
		return
	}
	if err := h.db.Delete(&fornecedor).Error; err != nil {
		httpx.SetFlash(w, "danger", "Não foi possível remover o fornecedor")
		http.Redirect(w, r, "/fornecedores", http.StatusSeeOther)
		return
	}
	httpx.SetFlash(w, "success", "Fornecedor removido")
	http.Redirect(w, r, "/fornecedores", http.StatusSeeOther)
}
