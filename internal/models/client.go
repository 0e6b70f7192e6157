package models

import "time"

// Client entity. Field names follow the business vocabulary (Portuguese),
// which also keeps the column names aligned with the reporting queries.
type Client struct {
	ID        uint   `gorm:"primaryKey"`
	Nome      string `gorm:"size:120;not null;index"`
	Email     string `gorm:"size:120"`
	Telefone  string `gorm:"size:50"`
	Notas     string `gorm:"type:text"`
	Vendas    []Sale `gorm:"foreignKey:ClienteID"`
	CreatedAt time.Time
}
