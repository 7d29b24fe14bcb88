package domain

import "time"

// Customer is a registered store account. Password holds a bcrypt hash and is
// never serialized.
type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"nombre" form:"nombre"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email" form:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"creado_en"`

	Orders []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}
