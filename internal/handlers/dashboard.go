package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler { return &DashboardHandler{db: db} }

// Home sends the bare root to the dashboard; RequireAuth already took care of
// anonymous callers.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var clientesCount, usersCount, produtosCount, fornecedoresCount int64
	h.db.Model(&models.Client{}).Count(&clientesCount)
	h.db.Model(&models.User{}).Count(&usersCount)
	h.db.Model(&models.Product{}).Count(&produtosCount)
	h.db.Model(&models.Supplier{}).Count(&fornecedoresCount)

	var vendasTotal float64
	h.db.Model(&models.Sale{}).Select("COALESCE(SUM(total), 0)").Scan(&vendasTotal)

	var ultimosClientes []models.Client
	h.db.Order("created_at desc").Limit(5).Find(&ultimosClientes)
	var ultimosProdutos []models.Product
	h.db.Order("created_at desc").Limit(5).Find(&ultimosProdutos)
	var ultimasVendas []models.Sale
	h.db.Preload("Cliente").Preload("Produto").Order("created_at desc").Limit(5).Find(&ultimasVendas)

	data := map[string]any{
		"ClientesCount":     clientesCount,
		"UsersCount":        usersCount,
		"ProdutosCount":     produtosCount,
		"FornecedoresCount": fornecedoresCount,
		"VendasTotal":       vendasTotal,
		"UltimosClientes":   ultimosClientes,
		"UltimosProdutos":   ultimosProdutos,
		"UltimasVendas":     ultimasVendas,
	}
	if user, ok := currentUser(h.db, r); ok {
		data["User"] = user
	}
	render(w, r, "dashboard.html", data)
}
