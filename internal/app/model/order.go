package model

import (
	"time"
)

// Order is immutable once created. The customer record is denormalized and
// item name/price are snapshots frozen at checkout time; later product edits
// never touch them.
type Order struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	OrderID   string    `gorm:"uniqueIndex;not null" json:"orderId"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `gorm:"not null" json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	Total     float64   `gorm:"not null" json:"total"`
	CreatedAt time.Time `json:"createdAt"`

	Items []OrderItem `gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem references the product by its legacy numeric id and captures a
// name/price snapshot at checkout.
type OrderItem struct {
	ID              uint    `gorm:"primarykey" json:"-"`
	OrderRef        uint    `gorm:"not null;index" json:"-"`
	ProductLegacyID int     `gorm:"not null;index" json:"productId"`
	Name            string  `gorm:"not null" json:"name"`
	Price           float64 `gorm:"not null" json:"price"`
	Quantity        int     `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// CustomerFullName joins first and last name with a single space; the
// purchase matcher compares reviewer names against this.
func (o *Order) CustomerFullName() string {
	return o.FirstName + " " + o.LastName
}
