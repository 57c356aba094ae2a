package model

import (
	"time"
)

// Product is a catalog entry. LegacyID is the stable numeric identifier
// carried over from the legacy flat-file catalog; it is unique, immutable
// and allocated sequentially (max existing + 1).
//
// Rating and ReviewsCount are a cached view derived from the comment set.
// They are recomputed in full whenever a rated comment is added and must
// never be edited by hand.
type Product struct {
	ID            uint      `gorm:"primarykey" json:"-"`
	LegacyID      int       `gorm:"uniqueIndex;not null" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Categories    []string  `gorm:"serializer:json" json:"category"`
	Images        []string  `gorm:"serializer:json" json:"image"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Rating        int       `gorm:"default:0" json:"rating"`
	ReviewsCount  int       `gorm:"default:0" json:"reviewsCount"`
	SellerTag     string    `json:"sellerTag"`
	DeliveryDate  string    `json:"deliveryDate"`
	DateAdded     time.Time `json:"dateAdded"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
