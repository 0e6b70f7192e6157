package models

import "time"

type Product struct {
	ID           uint    `gorm:"primaryKey"`
	Nome         string  `gorm:"size:120;not null;index"`
	Preco        float64 `gorm:"not null"`
	Descricao    string  `gorm:"type:text"`
	Estoque      int     `gorm:"not null;default:0;check:estoque >= 0"`
	FornecedorID uint    `gorm:"index"`
	Fornecedor   Supplier
	CreatedAt    time.Time
}
