package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/models"
)

var (
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrInvalidQuantity = errors.New("quantidade deve ser maior que zero")
	ErrSaleNotFound    = errors.New("venda não encontrada")
)

// InsufficientStockError carries the quantity still available so the
// user-facing message can name it.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente: disponível %d", e.Available)
}

// SaleService owns the sale lifecycle. Stock movement and the sale row are
// always committed together or not at all.
type SaleService struct {
	db *gorm.DB
	// restock controls whether deleting a sale returns its quantity to the
	// product. SALE_DELETE_RESTOCK=0 keeps the stock decremented.
	restock bool
}

func NewSaleService(db *gorm.DB, restock bool) *SaleService {
	return &SaleService{db: db, restock: restock}
}

// Create validates the request and applies the sale atomically. The stock
// decrement is a conditional update (estoque >= quantidade in the WHERE
// clause) so concurrent sales cannot drive estoque below zero regardless of
// isolation level; zero rows affected means insufficient stock.
func (s *SaleService) Create(clienteID, produtoID uint, quantidade int) (*models.Sale, error) {
	if quantidade <= 0 {
		return nil, ErrInvalidQuantity
	}
	var sale models.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var produto models.Product
		if err := tx.First(&produto, produtoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND estoque >= ?", produtoID, quantidade).
			UpdateColumn("estoque", gorm.Expr("estoque - ?", quantidade))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InsufficientStockError{Available: produto.Estoque}
		}
		sale = models.Sale{
			ClienteID:  clienteID,
			ProdutoID:  produtoID,
			Quantidade: quantidade,
			Total:      produto.Preco * float64(quantidade),
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// Delete removes a sale and, unless configured for the legacy behavior,
// returns the sold quantity to the product's stock in the same transaction.
func (s *SaleService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}
		if err := tx.Delete(&sale).Error; err != nil {
			return err
		}
		if !s.restock {
			return nil
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", sale.ProdutoID).
			UpdateColumn("estoque", gorm.Expr("estoque + ?", sale.Quantidade)).Error
	})
}
