package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/forms"
	"github.com/gestor-app/gestor/internal/httpx"
	"github.com/gestor-app/gestor/internal/models"
	"github.com/gestor-app/gestor/internal/services"
)

type SaleHandler struct {
	db    *gorm.DB
	sales *services.SaleService
}

func NewSaleHandler(db *gorm.DB, sales *services.SaleService) *SaleHandler {
	return &SaleHandler{db: db, sales: sales}
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	var vendas []models.Sale
	if err := h.db.Preload("Cliente").Preload("Produto").
		Order("created_at desc").Find(&vendas).Error; err != nil {
		http.Error(w, "erro ao listar vendas", http.StatusInternalServerError)
		return
	}
	render(w, r, "sales.html", map[string]any{"Vendas": vendas})
}

// New renders the sale form. Only products with stock left are offered.
func (h *SaleHandler) New(w http.ResponseWriter, r *http.Request) {
	var clientes []models.Client
	h.db.Order("nome").Find(&clientes)
	var produtos []models.Product
	h.db.Where("estoque > 0").Order("nome").Find(&produtos)
	render(w, r, "sale_form.html", map[string]any{
		"Clientes": clientes,
		"Produtos": produtos,
	})
}

// Create validates the form, applies the sale through the service and maps
// each failure to its own flash message. Nothing is committed on failure.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, v := forms.ParseSale(r)
	switch {
	case v["form"] == "missing_fields":
		httpx.SetFlash(w, "warning", "Todos os campos são obrigatórios")
	case v["quantidade"] == "invalid_number":
		httpx.SetFlash(w, "danger", "A quantidade deve ser um número válido")
	case v["quantidade"] == "must_be_positive":
		httpx.SetFlash(w, "danger", "A quantidade deve ser maior que zero")
	case !v.Empty():
		httpx.SetFlash(w, "danger", "Dados da venda inválidos")
	default:
		_, err := h.sales.Create(f.ClienteID, f.ProdutoID, f.Quantidade)
		var stockErr *services.InsufficientStockError
		switch {
		case err == nil:
			httpx.SetFlash(w, "success", "Venda registrada com sucesso")
			http.Redirect(w, r, "/vendas", http.StatusSeeOther)
			return
		case errors.Is(err, services.ErrProductNotFound):
			httpx.SetFlash(w, "danger", "Produto não encontrado")
		case errors.As(err, &stockErr):
			httpx.SetFlash(w, "danger", fmt.Sprintf("Estoque insuficiente. Disponível: %d", stockErr.Available))
		case errors.Is(err, services.ErrInvalidQuantity):
			httpx.SetFlash(w, "danger", "A quantidade deve ser maior que zero")
		default:
			httpx.SetFlash(w, "danger", "Não foi possível registrar a venda")
		}
	}
	http.Redirect(w, r, "/vendas/nova", http.StatusSeeOther)
}

func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.sales.Delete(id); err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			http.NotFound(w, r)
			return
		}
		httpx.SetFlash(w, "danger", "Não foi possível remover a venda")
		http.Redirect(w, r, "/vendas", http.StatusSeeOther)
		return
	}
	httpx.SetFlash(w, "success", "Venda removida")
	http.Redirect(w, r, "/vendas", http.StatusSeeOther)
}
