// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/infrastructure/database/mongo"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/pkg/apperror"
)

// Service handles product business logic
type Service struct {
	db     *mongo.Database
	config *config.Config
}

// NewService creates a new product service
func NewService(db *mongo.Database, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductCreateRequest represents product creation data. Categories are
// referred to by name and resolved to ids on write.
type ProductCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Images      Image    `json:"images" binding:"required"`
	Brand       string   `json:"brand"`
	Category    []string `json:"category" binding:"required,min=1"`
	Price       float64  `json:"price" binding:"required,gte=0"`
	Discount    float64  `json:"discount" binding:"gte=0,lte=100"`
	Stock       *int     `json:"stock" binding:"required,gte=0"`
	Tags        []string `json:"tags"`
	Ratings     *Ratings `json:"ratings"`
}

// ProductUpdateRequest represents partial product update data
type ProductUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Images      *Image   `json:"images"`
	Brand       *string  `json:"brand"`
	Category    []string `json:"category"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Discount    *float64 `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Tags        []string `json:"tags"`
	Ratings     *Ratings `json:"ratings"`
}

// Pagination represents pagination information
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// SearchResult represents a paginated product search response
type SearchResult struct {
	Pagination
	Products []Product `json:"products"`
}

// TotalPages computes ceil(total/limit) page arithmetic shared by both
// catalog searches.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func (s *Service) products() *driver.Collection {
	return s.db.Collection(mongo.CollectionProducts)
}

func (s *Service) categories() *driver.Collection {
	return s.db.Collection(mongo.CollectionCategories)
}

// GetProducts retrieves all products
func (s *Service) GetProducts(ctx context.Context) ([]Product, error) {
	cursor, err := s.products().Find(ctx, bson.M{})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to retrieve products", err)
	}

	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode products", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by id
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid product ID")
	}

	var p Product
	err = s.products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Product not found")
		}
		return nil, apperror.NewDatabaseError("failed to retrieve product", err)
	}
	return &p, nil
}

// CreateProduct creates a new product. Category names in the payload are
// resolved to category ids; every name must exist.
func (s *Service) CreateProduct(ctx context.Context, req *ProductCreateRequest, creatorID string) (*Product, error) {
	creator, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid user ID")
	}

	if req.Images.URL == "" {
		return nil, apperror.NewValidationError("Product image URL is required")
	}

	categoryIDs, err := s.resolveCategoryNames(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	brand := req.Brand
	if brand == "" {
		brand = "No brand"
	}

	now := time.Now().UTC()
	p := Product{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
		Brand:       brand,
		Category:    categoryIDs,
		Price:       req.Price,
		Discount:    req.Discount,
		Stock:       *req.Stock,
		Tags:        req.Tags,
		IsActive:    true,
		CreatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Ratings != nil {
		p.Ratings = *req.Ratings
	}

	if _, err := s.products().InsertOne(ctx, p); err != nil {
		return nil, apperror.NewDatabaseError("failed to create product", err)
	}
	return &p, nil
}

// UpdateProduct applies a partial update. When categories are provided the
// list is resolved by name and replaced wholesale.
func (s *Service) UpdateProduct(ctx context.Context, id string, req *ProductUpdateRequest, updaterID string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid product ID")
	}
	updater, err := primitive.ObjectIDFromHex(updaterID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid user ID")
	}

	set := bson.M{
		"updatedBy": updater,
		"updatedAt": time.Now().UTC(),
	}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Images != nil {
		set["images"] = *req.Images
	}
	if req.Brand != nil {
		set["brand"] = *req.Brand
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Discount != nil {
		set["discount"] = *req.Discount
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}
	if req.Ratings != nil {
		set["ratings"] = *req.Ratings
	}
	if req.Category != nil {
		categoryIDs, err := s.resolveCategoryNames(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		set["category"] = categoryIDs
	}

	var updated Product
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.products().FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Product not found")
		}
		return nil, apperror.NewDatabaseError("failed to update product", err)
	}
	return &updated, nil
}

// DeleteProduct removes a product by id. No referential cleanup happens:
// carts that still reference the product resolve it lazily at read time.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NewValidationError("Invalid product ID")
	}

	res, err := s.products().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperror.NewDatabaseError("failed to delete product", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError("Product not found")
	}
	return nil
}

// SearchProducts matches products case-insensitively by name substring and
// paginates the result set.
func (s *Service) SearchProducts(ctx context.Context, title string, page, limit int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}

	filter := bson.M{}
	if title != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(title), "$options": "i"}
	}

	total, err := s.products().CountDocuments(ctx, filter)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to count products", err)
	}

	skip := int64((page - 1) * limit)
	opts := options.Find().SetSkip(skip).SetLimit(int64(limit))
	cursor, err := s.products().Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to search products", err)
	}

	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode products", err)
	}

	return &SearchResult{
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   TotalPages(total, limit),
			TotalItems:   total,
			ItemsPerPage: limit,
		},
		Products: products,
	}, nil
}

// resolveCategoryNames maps category names to ids; every name must resolve
func (s *Service) resolveCategoryNames(ctx context.Context, names []string) ([]primitive.ObjectID, error) {
	unique := make(map[string]struct{}, len(names))
	for _, n := range names {
		unique[n] = struct{}{}
	}

	cursor, err := s.categories().Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to look up categories", err)
	}

	var found []Category
	if err := cursor.All(ctx, &found); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode categories", err)
	}

	if len(found) != len(unique) {
		return nil, apperror.NewValidationError(fmt.Sprintf("Category not found: %d of %d names matched", len(found), len(unique)))
	}

	ids := make([]primitive.ObjectID, len(found))
	for i, c := range found {
		ids[i] = c.ID
	}
	return ids, nil
}
