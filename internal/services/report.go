package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/models"
)

type MonthlyTotal struct {
	Mes   string
	Total float64
}

type ProductRanking struct {
	Nome            string
	TotalQuantidade int64
}

type ClientRanking struct {
	Nome       string
	TotalGasto float64
}

// Report bundles the three aggregations computed over the same filtered
// sale set.
type Report struct {
	VendasMensais        []MonthlyTotal
	ProdutosMaisVendidos []ProductRanking
	ClientesTop          []ClientRanking
}

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService { return &ReportService{db: db} }

// Summary computes monthly sale totals, the top 5 products by quantity sold
// and the top 5 clients by amount spent. Both date bounds are optional and
// inclusive; the end bound covers the whole calendar day.
func (s *ReportService) Summary(start, end *time.Time) (*Report, error) {
	rep := &Report{}

	if err := s.filtered(start, end).
		Select(s.monthExpr() + " AS mes, SUM(total) AS total").
		Group("mes").
		Order("mes").
		Scan(&rep.VendasMensais).Error; err != nil {
		return nil, err
	}

	if err := s.filtered(start, end).
		Select("products.nome AS nome, SUM(sales.quantidade) AS total_quantidade").
		Joins("JOIN products ON products.id = sales.produto_id").
		Group("products.nome").
		Order("total_quantidade DESC").
		Limit(5).
		Scan(&rep.ProdutosMaisVendidos).Error; err != nil {
		return nil, err
	}

	if err := s.filtered(start, end).
		Select("clients.nome AS nome, SUM(sales.total) AS total_gasto").
		Joins("JOIN clients ON clients.id = sales.cliente_id").
		Group("clients.nome").
		Order("total_gasto DESC").
		Limit(5).
		Scan(&rep.ClientesTop).Error; err != nil {
		return nil, err
	}

	return rep, nil
}

func (s *ReportService) filtered(start, end *time.Time) *gorm.DB {
	q := s.db.Model(&models.Sale{})
	if start != nil {
		q = q.Where("sales.created_at >= ?", *start)
	}
	if end != nil {
		// inclusive: anything up to the end of that calendar day
		q = q.Where("sales.created_at < ?", end.AddDate(0, 0, 1))
	}
	return q
}

// monthExpr yields the YYYY-MM grouping expression for the active dialect.
func (s *ReportService) monthExpr() string {
	if s.db.Dialector.Name() == "postgres" {
		return "to_char(sales.created_at, 'YYYY-MM')"
	}
	return "strftime('%Y-%m', sales.created_at)"
}
