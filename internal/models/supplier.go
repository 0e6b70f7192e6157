package models

import "time"

// Supplier entity. Deletion is refused while any Product references it.
type Supplier struct {
	ID        uint      `gorm:"primaryKey"`
	Nome      string    `gorm:"size:120;not null;index"`
	Email     string    `gorm:"size:120"`
	Telefone  string    `gorm:"size:50"`
	Endereco  string    `gorm:"size:255"`
	Produtos  []Product `gorm:"foreignKey:FornecedorID"`
	CreatedAt time.Time
}
