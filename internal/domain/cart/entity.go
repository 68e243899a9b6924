// internal/domain/cart/entity.go
package cart

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
)

// CartItem represents one line item inside a cart. Price and discount are
// captured from the catalog at mutation time so later catalog changes do not
// silently reprice the cart.
type CartItem struct {
	Product    primitive.ObjectID `bson:"product" json:"product"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
	Discount   float64            `bson:"discount" json:"discount"` // percent, 0-100
	FinalPrice float64            `bson:"finalPrice" json:"finalPrice"`
}

// FinalPrice applies the discount percentage to a price
func FinalPrice(price, discount float64) float64 {
	return price * (1 - discount/100)
}

// ComputeFinalPrice derives the item's finalPrice from its snapshot
func (ci *CartItem) ComputeFinalPrice() {
	ci.FinalPrice = FinalPrice(ci.Price, ci.Discount)
}

// Cart represents the per-user cart aggregate. Items are embedded and not
// independently addressable. Version guards concurrent saves: every persisted
// mutation is conditional on the version read.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	Items      []CartItem         `bson:"items" json:"items"`
	TotalItems int                `bson:"totalItems" json:"totalItems"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Version    int64              `bson:"version" json:"-"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updated_at"`
}

// NewCart creates an empty cart for a user
func NewCart(userID primitive.ObjectID) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Normalize is the pre-save step: any item missing its finalPrice gets it
// re-derived, and the aggregates are recomputed unconditionally so the
// persisted state is self-consistent regardless of caller correctness.
// totalItems counts distinct line items, not summed quantity.
func (c *Cart) Normalize() {
	for i := range c.Items {
		if c.Items[i].FinalPrice == 0 && c.Items[i].Price != 0 {
			c.Items[i].ComputeFinalPrice()
		}
	}

	c.TotalItems = len(c.Items)

	total := 0.0
	for _, item := range c.Items {
		total += item.FinalPrice * float64(item.Quantity)
	}
	c.TotalPrice = total
	c.UpdatedAt = time.Now().UTC()
}

// Merge adds quantity of a product to the cart, matching existing line items
// by product id. Under the "reprice" strategy an existing line is refreshed
// to the current catalog price and discount; under "snapshot" the values
// captured on first add are kept. New products always append a line with the
// current price. Callers must Normalize afterwards.
func (c *Cart) Merge(productID primitive.ObjectID, quantity int, price, discount float64, strategy string) {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items[i].Quantity += quantity
			if strategy != config.PricingSnapshot {
				c.Items[i].Price = price
				c.Items[i].Discount = discount
				c.Items[i].ComputeFinalPrice()
			}
			return
		}
	}

	item := CartItem{
		Product:  productID,
		Quantity: quantity,
		Price:    price,
		Discount: discount,
	}
	item.ComputeFinalPrice()
	c.Items = append(c.Items, item)
}

// Remove deletes the line item for a product, reporting whether it was found.
// Callers must Normalize afterwards.
func (c *Cart) Remove(productID primitive.ObjectID) bool {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart. Callers must Normalize afterwards.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// DistinctItemCount returns the number of distinct products in the cart
func (c *Cart) DistinctItemCount() int {
	seen := make(map[primitive.ObjectID]struct{}, len(c.Items))
	for _, item := range c.Items {
		seen[item.Product] = struct{}{}
	}
	return len(seen)
}
