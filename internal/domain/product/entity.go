// internal/domain/product/entity.go
package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents the product document
type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Images      Image                `bson:"images" json:"images"`
	Brand       string               `bson:"brand" json:"brand"`
	Category    []primitive.ObjectID `bson:"category" json:"category"`
	Price       float64              `bson:"price" json:"price"`
	Discount    float64              `bson:"discount" json:"discount"` // percent, 0-100
	Stock       int                  `bson:"stock" json:"stock"`
	Tags        []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	Ratings     Ratings              `bson:"ratings" json:"ratings"`
	IsActive    bool                 `bson:"isActive" json:"is_active"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy,omitempty" json:"created_by,omitempty"`
	UpdatedBy   primitive.ObjectID   `bson:"updatedBy,omitempty" json:"updated_by,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updated_at"`
}

// Image represents a product image
type Image struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt,omitempty" json:"alt,omitempty"`
}

// Ratings represents aggregated product ratings
type Ratings struct {
	Average float64 `bson:"average" json:"average"` // 0-5
	Count   int     `bson:"count" json:"count"`
}

// FinalPrice returns the price after the discount percentage is applied
func (p *Product) FinalPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

// Category represents the category document. The slug is derived from the
// name and recomputed whenever the name changes.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool               `bson:"isActive" json:"is_active"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"created_by,omitempty"`
	UpdatedBy   primitive.ObjectID `bson:"updatedBy,omitempty" json:"updated_by,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}
