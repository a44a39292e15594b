package domain

import (
	"time"

	catalog "github.com/AbdelkaderTk/go-shop/internal/catalog/domain"
)

type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

type CartItem struct {
	ProductID int64     `bson:"product_id" json:"product_id"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

// ResolvedItem pairs a cart line with its live catalog product. This is the
// read projection checkout snapshots from; prices here are current, not frozen.
type ResolvedItem struct {
	Product  *catalog.Product
	Quantity int
}
