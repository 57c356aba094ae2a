package model

import (
	"time"
)

// Comment is a product review or plain comment. Rating is required when
// posted through the review endpoint and optional through the comment
// endpoint; unrated comments are excluded from rating aggregation.
//
// VerifiedPurchase is computed once at creation against the order history
// and never re-evaluated, even if matching orders appear later.
type Comment struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	ProductID        uint      `gorm:"not null;index" json:"product_id"`
	Username         string    `gorm:"not null" json:"username"`
	Rating           *int      `json:"rating,omitempty"`
	Comment          string    `gorm:"type:text;not null" json:"comment"`
	VerifiedPurchase bool      `gorm:"default:false" json:"verifiedPurchase"`
	CreatedAt        time.Time `json:"createdAt"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
