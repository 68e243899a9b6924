// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/domain/product"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/infrastructure/database/mongo"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/pkg/apperror"
)

// Service handles cart business logic
type Service struct {
	db     *mongo.Database
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *mongo.Database, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddItemRequest represents add to cart request
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

// CartItemResponse is a line item with its product reference resolved to the
// full document. Product is nil when the catalog entry has been deleted;
// dangling references are tolerated at read time rather than guarded on
// delete.
type CartItemResponse struct {
	Product    *product.Product   `json:"product"`
	ProductID  primitive.ObjectID `json:"productId"`
	Quantity   int                `json:"quantity"`
	Price      float64            `json:"price"`
	Discount   float64            `json:"discount"`
	FinalPrice float64            `json:"finalPrice"`
}

// CartResponse represents a cart with resolved items and totals
type CartResponse struct {
	ID         primitive.ObjectID `json:"id"`
	User       primitive.ObjectID `json:"user"`
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	TotalPrice float64            `json:"totalPrice"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (s *Service) carts() *driver.Collection {
	return s.db.Collection(mongo.CollectionCarts)
}

func (s *Service) products() *driver.Collection {
	return s.db.Collection(mongo.CollectionProducts)
}

// GetCart returns the user's cart with product references resolved
func (s *Service) GetCart(ctx context.Context, userID string) (*CartResponse, error) {
	c, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NewNotFoundError("Cart not found")
	}
	return s.resolve(ctx, c)
}

// AddItem adds quantity of a product to the user's cart, creating the cart
// lazily on first use. Existing line items merge by product id; the pricing
// strategy decides whether the snapshot is refreshed. The save is guarded by
// optimistic versioning and retried a bounded number of times.
func (s *Service) AddItem(ctx context.Context, userID string, req *AddItemRequest) (*CartResponse, error) {
	if req.ProductID == "" || userID == "" {
		return nil, apperror.NewValidationError("Product ID and user ID are required")
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid user ID")
	}
	pid, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid product ID")
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	// The product must exist before any cart is created or touched
	var p product.Product
	err = s.products().FindOne(ctx, bson.M{"_id": pid}).Decode(&p)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Product not found")
		}
		return nil, apperror.NewDatabaseError("failed to look up product", err)
	}

	for attempt := 0; attempt < s.maxRetries(); attempt++ {
		c, err := s.findCart(ctx, userID)
		if err != nil {
			return nil, err
		}

		if c == nil {
			c = NewCart(uid)
			c.Merge(pid, quantity, p.Price, p.Discount, s.config.Cart.PricingStrategy)
			c.Normalize()
			c.Version = 1
			if _, err := s.carts().InsertOne(ctx, c); err != nil {
				if driver.IsDuplicateKeyError(err) {
					// Lost the race to create the cart; merge into the winner
					continue
				}
				return nil, apperror.NewDatabaseError("failed to create cart", err)
			}
			return s.resolve(ctx, c)
		}

		c.Merge(pid, quantity, p.Price, p.Discount, s.config.Cart.PricingStrategy)
		c.Normalize()

		saved, err := s.saveVersioned(ctx, c)
		if err != nil {
			return nil, err
		}
		if saved {
			return s.resolve(ctx, c)
		}
	}

	return nil, apperror.NewConflictError("Cart was modified concurrently, please retry")
}

// CountItems returns the number of distinct products in the user's cart
func (s *Service) CountItems(ctx context.Context, userID string) (int, error) {
	c, err := s.findCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, apperror.NewNotFoundError("Cart not found")
	}
	return c.DistinctItemCount(), nil
}

// RemoveItem deletes one line item and recomputes the totals
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*CartResponse, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid product ID")
	}

	for attempt := 0; attempt < s.maxRetries(); attempt++ {
		c, err := s.findCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apperror.NewNotFoundError("Cart not found")
		}

		if !c.Remove(pid) {
			return nil, apperror.NewNotFoundError("Item not found in cart")
		}
		c.Normalize()

		saved, err := s.saveVersioned(ctx, c)
		if err != nil {
			return nil, err
		}
		if saved {
			return s.resolve(ctx, c)
		}
	}

	return nil, apperror.NewConflictError("Cart was modified concurrently, please retry")
}

// ClearCart empties the item list and zeroes the totals. The cart document
// itself is kept.
func (s *Service) ClearCart(ctx context.Context, userID string) (*CartResponse, error) {
	for attempt := 0; attempt < s.maxRetries(); attempt++ {
		c, err := s.findCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apperror.NewNotFoundError("Cart not found")
		}

		c.Clear()
		c.Normalize()

		saved, err := s.saveVersioned(ctx, c)
		if err != nil {
			return nil, err
		}
		if saved {
			return s.resolve(ctx, c)
		}
	}

	return nil, apperror.NewConflictError("Cart was modified concurrently, please retry")
}

// findCart loads the user's cart, returning nil when none exists
func (s *Service) findCart(ctx context.Context, userID string) (*Cart, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid user ID")
	}

	var c Cart
	err = s.carts().FindOne(ctx, bson.M{"user": uid}).Decode(&c)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to retrieve cart", err)
	}
	return &c, nil
}

// saveVersioned replaces the cart conditional on the version it was read at.
// A false return means another writer got there first.
func (s *Service) saveVersioned(ctx context.Context, c *Cart) (bool, error) {
	readVersion := c.Version
	c.Version = readVersion + 1

	filter := bson.M{"_id": c.ID, "version": readVersion}
	res, err := s.carts().ReplaceOne(ctx, filter, c)
	if err != nil {
		c.Version = readVersion
		return false, apperror.NewDatabaseError("failed to save cart", err)
	}
	if res.MatchedCount == 0 {
		c.Version = readVersion
		return false, nil
	}
	return true, nil
}

// resolve attaches full product documents to the cart's line items with a
// single batch fetch. Deleted products leave a nil Product on the line.
func (s *Service) resolve(ctx context.Context, c *Cart) (*CartResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.Product)
	}

	byID := map[primitive.ObjectID]*product.Product{}
	if len(ids) > 0 {
		cursor, err := s.products().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to resolve cart products", err)
		}
		var docs []product.Product
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, apperror.NewDatabaseError("failed to decode cart products", err)
		}
		for i := range docs {
			byID[docs[i].ID] = &docs[i]
		}
	}

	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemResponse{
			Product:    byID[item.Product],
			ProductID:  item.Product,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Discount:   item.Discount,
			FinalPrice: item.FinalPrice,
		}
	}

	return &CartResponse{
		ID:         c.ID,
		User:       c.User,
		Items:      items,
		TotalItems: c.TotalItems,
		TotalPrice: c.TotalPrice,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}, nil
}

func (s *Service) maxRetries() int {
	if s.config.Cart.MaxSaveRetries < 1 {
		return 1
	}
	return s.config.Cart.MaxSaveRetries
}
