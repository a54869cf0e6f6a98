package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"catalog_service/internal/common"
	"catalog_service/internal/domain/model"
	"catalog_service/internal/domain/repository"

	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "catalog:products"

type ProductService struct {
	productRepo repository.ProductRepository
	rdb         *redis.Client
	cacheTTL    time.Duration
}

// NewProductService wires the product repository and an optional Redis client
// used to cache the public catalog listing. A nil client disables caching.
func NewProductService(productRepo repository.ProductRepository, rdb *redis.Client, cacheTTL time.Duration) *ProductService {
	return &ProductService{productRepo: productRepo, rdb: rdb, cacheTTL: cacheTTL}
}

type CreateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

// ListAll returns every product, owner withheld by the model's projection.
// An optional category narrows the listing, matched on slugified form so
// "Home Decor" and "home-decor" select the same products. Only the unfiltered
// listing is cached.
func (s *ProductService) ListAll(ctx context.Context, category string) ([]model.Product, error) {
	if category == "" {
		if cached, ok := s.cachedCatalog(ctx); ok {
			return cached, nil
		}
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if category == "" {
		s.storeCatalog(ctx, products)
		return products, nil
	}

	wanted := slug.Make(category)
	filtered := []model.Product{}
	for _, p := range products {
		if slug.Make(p.Category) == wanted {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *ProductService) ListOwned(ctx context.Context, ownerID int64) ([]model.Product, error) {
	products, err := s.productRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Create(ctx context.Context, ownerID int64, req CreateProductRequest) error {
	var missing []string
	if req.Name == nil {
		missing = append(missing, "name")
	}
	if req.Category == nil {
		missing = append(missing, "category")
	}
	if req.Price == nil {
		missing = append(missing, "price")
	}
	if req.Description == nil {
		missing = append(missing, "description")
	}
	if req.ImageURL == nil {
		missing = append(missing, "image_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s: %w", strings.Join(missing, ", "), common.ErrValidation)
	}

	product := &model.Product{
		Name:        *req.Name,
		Category:    *req.Category,
		Price:       *req.Price,
		Description: *req.Description,
		ImageURL:    *req.ImageURL,
		OwnerID:     ownerID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		// Never leak the persistence failure to the caller.
		log.Printf("Error adding product: %v", err)
		return common.ErrInternalServer
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ProductService) Update(ctx context.Context, ownerID, productID int64, req UpdateProductRequest) error {
	product, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, ownerID, productID int64) error {
	product, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.invalidateCatalog(ctx)
	return nil
}

// ownedProduct is the single gate in front of every mutation. A product that
// does not exist and a product owned by someone else both come back as
// common.ErrNotFound, so callers cannot probe which ids exist.
func (s *ProductService) ownedProduct(ctx context.Context, ownerID, productID int64) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return product, nil
}

func (s *ProductService) cachedCatalog(ctx context.Context) ([]model.Product, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Catalog cache read failed: %v", err)
		}
		return nil, false
	}
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Printf("Catalog cache decode failed: %v", err)
		return nil, false
	}
	return products, true
}

func (s *ProductService) storeCatalog(ctx context.Context, products []model.Product) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, catalogCacheKey, data, s.cacheTTL).Err(); err != nil {
		log.Printf("Catalog cache write failed: %v", err)
	}
}

func (s *ProductService) invalidateCatalog(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		log.Printf("Catalog cache invalidation failed: %v", err)
	}
}
