package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Client{}, &models.Supplier{}, &models.Product{}, &models.Sale{}))
	return db
}

func seedSaleFixtures(t *testing.T, db *gorm.DB, estoque int, preco float64) (models.Client, models.Product) {
	t.Helper()
	fornecedor := models.Supplier{Nome: "Distribuidora Sul"}
	require.NoError(t, db.Create(&fornecedor).Error)
	cliente := models.Client{Nome: "Ana"}
	require.NoError(t, db.Create(&cliente).Error)
	produto := models.Product{Nome: "Caderno", Preco: preco, Estoque: estoque, FornecedorID: fornecedor.ID}
	require.NoError(t, db.Create(&produto).Error)
	return cliente, produto
}

func TestSaleCreateDecrementsStockAndComputesTotal(t *testing.T) {
	db := setupTestDB(t)
	cliente, produto := seedSaleFixtures(t, db, 10, 5.00)
	svc := NewSaleService(db, true)

	sale, err := svc.Create(cliente.ID, produto.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 15.00, sale.Total)
	require.Equal(t, 3, sale.Quantidade)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, produto.ID).Error)
	require.Equal(t, 7, reloaded.Estoque)
}

func TestSaleCreateInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	cliente, produto := seedSaleFixtures(t, db, 10, 5.00)
	svc := NewSaleService(db, true)

	_, err := svc.Create(cliente.ID, produto.ID, 20)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, 10, stockErr.Available)

	// nothing committed: stock unchanged, no sale row
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, produto.ID).Error)
	require.Equal(t, 10, reloaded.Estoque)
	var sales int64
	db.Model(&models.Sale{}).Count(&sales)
	require.Zero(t, sales)
}

func TestSaleCreateRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	cliente, produto := seedSaleFixtures(t, db, 10, 5.00)
	svc := NewSaleService(db, true)

	for _, qty := range []int{0, -3} {
		_, err := svc.Create(cliente.ID, produto.ID, qty)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, produto.ID).Error)
	require.Equal(t, 10, reloaded.Estoque)
}

func TestSaleCreateUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	cliente, _ := seedSaleFixtures(t, db, 10, 5.00)
	svc := NewSaleService(db, true)

	_, err := svc.Create(cliente.ID, 9999, 1)
	require.ErrorIs(t, err, ErrProductNotFound)
	var sales int64
	db.Model(&models.Sale{}).Count(&sales)
	require.Zero(t, sales)
}

func TestSaleCreateTotalTracksPriceAtSaleTime(t *testing.T) {
	db := setupTestDB(t)
	cliente, produto := seedSaleFixtures(t, db, 100, 2.50)
	svc := NewSaleService(db, true)

	sale, err := svc.Create(cliente.ID, produto.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 10.00, sale.Total)

	// later price edits do not rewrite the recorded total
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", produto.ID).Update("preco", 99.0).Error)
	var reloaded models.Sale
	require.NoError(t, db.First(&reloaded, sale.ID).Error)
	require.Equal(t, 10.00, reloaded.Total)
}

func TestSaleCreateConcurrentNeverOversells(t *testing.T) {
	db := setupTestDB(t)
	cliente, produto := seedSaleFixtures(t, db, 5, 1.00)
	svc := NewSaleService(db, true)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(cliente.ID, produto.ID, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			var stockErr *InsufficientStockError
			// sqlite may also surface busy errors under contention; only
			// stock errors and nil count toward the invariant check
			if !errors.As(err, &stockErr) {
				continue
			}
		}
	}
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, produto.ID).Error)
	require.GreaterOrEqual(t, reloaded.Estoque, 0)
	require.Equal(t, 5-succeeded, reloaded.Estoque)
}

func TestSaleDeleteRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	cliente, produto := seedSaleFixtures(t, db, 10, 5.00)
	svc := NewSaleService(db, true)

	sale, err := svc.Create(cliente.ID, produto.ID, 4)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(sale.ID))
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, produto.ID).Error)
	require.Equal(t, 10, reloaded.Estoque)
	var sales int64
	db.Model(&models.Sale{}).Count(&sales)
	require.Zero(t, sales)
}

func TestSaleDeleteLegacyKeepsStock(t *testing.T) {
	db := setupTestDB(t)
	cliente, produto := seedSaleFixtures(t, db, 10, 5.00)
	svc := NewSaleService(db, false)

	sale, err := svc.Create(cliente.ID, produto.ID, 4)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(sale.ID))
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, produto.ID).Error)
	require.Equal(t, 6, reloaded.Estoque)
}

func TestSaleDeleteUnknown(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, true)
	require.ErrorIs(t, svc.Delete(42), ErrSaleNotFound)
}
