package domain

import "time"

// Product is catalog reference data; the order workflow treats it as read-only.
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:100;index;not null" json:"nombre"`
	Description string    `gorm:"type:text" json:"descripcion"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"precio"`
	Stock       int       `gorm:"default:0" json:"stock"`
	Category    string    `gorm:"size:50;not null" json:"categoria"`
	ImageURL    string    `gorm:"size:500" json:"imagen_url"`
	Active      bool      `json:"activo"`
	CreatedAt   time.Time `json:"creado_en"`

	Lines []OrderLine `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}
