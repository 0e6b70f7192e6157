package models

import "time"

// Sale is immutable once created. Total captures preco × quantidade at the
// time of the sale, so later price edits do not rewrite history.
type Sale struct {
	ID         uint `gorm:"primaryKey"`
	ClienteID  uint `gorm:"not null;index"`
	Cliente    Client
	ProdutoID  uint `gorm:"not null;index"`
	Produto    Product
	Quantidade int     `gorm:"not null"`
	Total      float64 `gorm:"not null"`
	CreatedAt  time.Time
}
