package domain

import "time"

// Order status enumeration. Status is the only order field that changes after
// creation; no transition endpoint exists yet, only the data shape.
const (
	OrderStatusPending   = "pendiente"
	OrderStatusPaid      = "pagado"
	OrderStatusShipped   = "enviado"
	OrderStatusDelivered = "entregado"
)

// Order is one checkout header. Lines are created in the same transaction as
// the header, never before it.
type Order struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	CustomerID int64     `gorm:"index;not null" json:"cliente_id"`
	Status     string    `gorm:"size:20;default:pendiente" json:"estado"`
	Total      float64   `gorm:"type:decimal(10,2);default:0" json:"total"`
	CreatedAt  time.Time `json:"fecha"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}

// OrderLine is one product-quantity record of an order. UnitPrice is captured
// from the product row at write time, not read live afterwards.
type OrderLine struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	OrderID   int64   `gorm:"index;not null" json:"pedido_id"`
	ProductID int64   `gorm:"index;not null" json:"producto_id"`
	Quantity  int     `gorm:"default:1" json:"cantidad"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"precio_unitario"`
}
