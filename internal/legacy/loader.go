// Package legacy reads the flat-file product catalog the storefront ran on
// before the database existed. The file is a JSON array of products, each
// with an embedded (possibly empty) review list; the migration pipeline
// reconciles it into the normalized store at startup.
package legacy

import (
	"encoding/json"
	"os"
	"time"
)

type Review struct {
	User      string     `json:"user"`
	Rating    *int       `json:"rating,omitempty"`
	Comment   string     `json:"comment"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type Product struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Category      []string   `json:"category"`
	Image         []string   `json:"image"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	OriginalPrice *float64   `json:"originalPrice,omitempty"`
	Rating        int        `json:"rating"`
	ReviewsCount  int        `json:"reviewsCount"`
	SellerTag     string     `json:"sellerTag"`
	DeliveryDate  string     `json:"deliveryDate"`
	DateAdded     *time.Time `json:"dateAdded,omitempty"`
	Reviews       []Review   `json:"reviews"`
}

// LoadProducts reads the legacy catalog from path. Callers treat a read or
// parse failure as "no legacy data" rather than fatal.
func LoadProducts(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}
