// internal/domain/product/category_service.go
package product

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/infrastructure/database/mongo"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/pkg/apperror"
)

// CategoryService handles category business logic
type CategoryService struct {
	db     *mongo.Database
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *mongo.Database, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// CategoryUpdateRequest represents category update data
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// CategorySearchRequest represents category search filters
type CategorySearchRequest struct {
	Title     string `form:"title"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=5"`
	IsActive  *bool  `form:"isActive"`
	SortField string `form:"sortField,default=createdAt"`
	SortOrder string `form:"sortOrder,default=DESC"`
}

// CategorySearchResult represents a paginated category search response
type CategorySearchResult struct {
	Pagination Pagination `json:"pagination"`
	Categories []Category `json:"data"`
}

// Slugify derives the URL-safe identifier from a category name: lowercase,
// ASCII-normalized, special characters stripped.
func Slugify(name string) string {
	return slug.Make(name)
}

func (s *CategoryService) collection() *driver.Collection {
	return s.db.Collection(mongo.CollectionCategories)
}

// GetCategories retrieves all active categories
func (s *CategoryService) GetCategories(ctx context.Context) ([]Category, error) {
	cursor, err := s.collection().Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to retrieve categories", err)
	}

	categories := []Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode categories", err)
	}
	return categories, nil
}

// CreateCategory creates a category with a slug derived from its name.
// Name and slug must both be unique.
func (s *CategoryService) CreateCategory(ctx context.Context, req *CategoryCreateRequest, creatorID string) (*Category, error) {
	creator, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid user ID")
	}

	name := req.Name
	catSlug := Slugify(name)
	if catSlug == "" {
		return nil, apperror.NewValidationError("Category name must contain slug-safe characters")
	}

	if err := s.ensureUnique(ctx, name, catSlug, primitive.NilObjectID); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now().UTC()
	c := Category{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Slug:        catSlug,
		Description: req.Description,
		IsActive:    isActive,
		CreatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.collection().InsertOne(ctx, c); err != nil {
		if driver.IsDuplicateKeyError(err) {
			return nil, apperror.NewConflictError("Category name or slug already exists")
		}
		return nil, apperror.NewDatabaseError("failed to create category", err)
	}
	return &c, nil
}

// UpdateCategoryBySlug updates a category addressed by its current slug.
// Renaming recomputes the slug with the same uniqueness check.
func (s *CategoryService) UpdateCategoryBySlug(ctx context.Context, currentSlug string, req *CategoryUpdateRequest, updaterID string) (*Category, error) {
	updater, err := primitive.ObjectIDFromHex(updaterID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid user ID")
	}

	var existing Category
	err = s.collection().FindOne(ctx, bson.M{"slug": currentSlug}).Decode(&existing)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Category not found")
		}
		return nil, apperror.NewDatabaseError("failed to retrieve category", err)
	}

	set := bson.M{
		"updatedBy": updater,
		"updatedAt": time.Now().UTC(),
	}
	if req.Name != nil {
		newSlug := Slugify(*req.Name)
		if newSlug == "" {
			return nil, apperror.NewValidationError("Category name must contain slug-safe characters")
		}
		if err := s.ensureUnique(ctx, *req.Name, newSlug, existing.ID); err != nil {
			return nil, err
		}
		set["name"] = *req.Name
		set["slug"] = newSlug
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	var updated Category
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.collection().FindOneAndUpdate(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to update category", err)
	}
	return &updated, nil
}

// DeleteCategoryByID removes a category. Products keep whatever category ids
// they hold; missing references are tolerated at read time.
func (s *CategoryService) DeleteCategoryByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NewValidationError("Invalid category ID")
	}

	res, err := s.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperror.NewDatabaseError("failed to delete category", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError("Category not found")
	}
	return nil
}

// SearchCategories filters by title (name or slug substring) and active
// state, sorts on a caller-chosen field, and paginates.
func (s *CategoryService) SearchCategories(ctx context.Context, req *CategorySearchRequest) (*CategorySearchResult, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 5
	}

	filter := bson.M{}
	if req.IsActive != nil {
		filter["isActive"] = *req.IsActive
	}
	if req.Title != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(req.Title), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"slug": pattern},
		}
	}

	sortOrder := -1
	if req.SortOrder == "ASC" || req.SortOrder == "asc" {
		sortOrder = 1
	}
	sortField := req.SortField
	if sortField == "" {
		sortField = "createdAt"
	}

	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to count categories", err)
	}

	skip := int64((req.Page - 1) * req.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortOrder}}).
		SetSkip(skip).
		SetLimit(int64(req.Limit))

	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to search categories", err)
	}

	categories := []Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode categories", err)
	}

	return &CategorySearchResult{
		Pagination: Pagination{
			CurrentPage:  req.Page,
			TotalPages:   TotalPages(total, req.Limit),
			TotalItems:   total,
			ItemsPerPage: req.Limit,
		},
		Categories: categories,
	}, nil
}

// ensureUnique rejects a name/slug pair that collides with another category
func (s *CategoryService) ensureUnique(ctx context.Context, name, catSlug string, exclude primitive.ObjectID) error {
	filter := bson.M{"$or": bson.A{
		bson.M{"name": name},
		bson.M{"slug": catSlug},
	}}
	if exclude != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": exclude}
	}

	var existing Category
	err := s.collection().FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		return apperror.NewConflictError("Category name or slug already exists")
	}
	if !errors.Is(err, driver.ErrNoDocuments) {
		return apperror.NewDatabaseError("failed to check category uniqueness", err)
	}
	return nil
}
