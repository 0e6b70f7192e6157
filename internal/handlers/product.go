package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/forms"
	"github.com/gestor-app/gestor/internal/httpx"
	"github.com/gestor-app/gestor/internal/models"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{db: db} }

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search_query"))
	dbq := h.db.Preload("Fornecedor").Order("nome")
	if query != "" {
		dbq = dbq.Where("lower(nome) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	var produtos []models.Product
	if err := dbq.Find(&produtos).Error; err != nil {
		http.Error(w, "erro ao listar produtos", http.StatusInternalServerError)
		return
	}
	render(w, r, "products.html", map[string]any{
		"Produtos":    produtos,
		"SearchQuery": query,
	})
}

// suppliers loads the supplier choices for the form select.
func (h *ProductHandler) suppliers() []models.Supplier {
	var fornecedores []models.Supplier
	h.db.Order("nome").Find(&fornecedores)
	return fornecedores
}

func (h *ProductHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, "product_form.html", map[string]any{"Fornecedores": h.suppliers()})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, v := forms.ParseProduct(r)
	if v.Empty() {
		// the supplier select must reference a real supplier
		var fornecedor models.Supplier
		if err := h.db.First(&fornecedor, f.FornecedorID).Error; err != nil {
			v["fornecedor_id"] = "invalid_supplier"
		}
	}
	if !v.Empty() {
		render(w, r, "product_form.html", map[string]any{"Form": f, "Errors": v, "Fornecedores": h.suppliers()})
		return
	}
	var produto models.Product
	f.Apply(&produto)
	if err := h.db.Create(&produto).Error; err != nil {
		render(w, r, "product_form.html", map[string]any{
			"Form":         f,
			"Fornecedores": h.suppliers(),
			"Flash":        httpx.Flash{Category: "danger", Message: "Não foi possível salvar o produto"},
		})
		return
	}
	httpx.SetFlash(w, "success", "Produto criado com sucesso")
	http.Redirect(w, r, "/produtos", http.StatusSeeOther)
}

func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var produto models.Product
	if err := h.db.First(&produto, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	render(w, r, "product_form.html", map[string]any{"Product": produto, "Fornecedores": h.suppliers()})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var produto models.Product
	if err := h.db.First(&produto, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	f, v := forms.ParseProduct(r)
	if v.Empty() {
		var fornecedor models.Supplier
		if err := h.db.First(&fornecedor, f.FornecedorID).Error; err != nil {
			v["fornecedor_id"] = "invalid_supplier"
		}
	}
	if !v.Empty() {
		render(w, r, "product_form.html", map[string]any{"Product": produto, "Form": f, "Errors": v, "Fornecedores": h.suppliers()})
		return
	}
	f.Apply(&produto)
	if err := h.db.Save(&produto).Error; err != nil {
		render(w, r, "product_form.html", map[string]any{
			"Product":      produto,
			"Form":         f,
			"Fornecedores": h.suppliers(),
			"Flash":        httpx.Flash{Category: "danger", Message: "Não foi possível salvar o produto"},
		})
		return
	}
	httpx.SetFlash(w, "success", "Produto atualizado")
	http.Redirect(w, r, "/produtos", http.StatusSeeOther)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var produto models.Product
	if err := h.db.First(&produto, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.Delete(&produto).Error; err != nil {
		httpx.SetFlash(w, "danger", "Não foi possível remover o produto")
		http.Redirect(w, r, "/produtos", http.StatusSeeOther)
		return
	}
	httpx.SetFlash(w, "success", "Produto removido")
	http.Redirect(w, r, "/produtos", http.StatusSeeOther)
}
