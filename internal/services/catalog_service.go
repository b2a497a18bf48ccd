package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/stylahq/styla-backend/internal/cache"
	"github.com/stylahq/styla-backend/internal/models"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService serves the read-only product catalog. Products are managed
// externally; the only write path is the boot-time seed.
type CatalogService struct {
	db    *gorm.DB
	cache *cache.ProductCache
}

func NewCatalogService(db *gorm.DB, productCache *cache.ProductCache) *CatalogService {
	return &CatalogService{db: db, cache: productCache}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if products, ok := s.cache.Get(ctx); ok {
		return products, nil
	}

	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, err
	}

	s.cache.Set(ctx, products)
	return products, nil
}

func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

type seedProduct struct {
	Name      string  `json:"name"`
	BrandName string  `json:"brandName"`
	Price     int     `json:"price"`
	Category  string  `json:"category"`
	Image     *string `json:"image"`
}

// SeedFromFile inserts the catalog from a JSON file when the product table
// is still empty. Repeated boots are a no-op.
func (s *CatalogService) SeedFromFile(ctx context.Context, path string) error {
	var count int64
	if err := s.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var seeds []seedProduct
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return err
	}

	products := make([]models.Product, 0, len(seeds))
	for _, seed := range seeds {
		category := seed.Category
		if category == "" {
			category = "top"
		}
		products = append(products, models.Product{
			ID:        uuid.NewString(),
			Name:      seed.Name,
			BrandName: seed.BrandName,
			Price:     seed.Price,
			Category:  category,
			Image:     seed.Image,
		})
	}
	if len(products) == 0 {
		return nil
	}

	if err := s.db.Create(&products).Error; err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	slog.Info("product catalog seeded", "count", len(products))
	return nil
}
