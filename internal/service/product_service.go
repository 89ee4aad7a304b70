package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/repository"
)

type productService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewProductService(repo repository.Repository, logger *zap.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger,
	}
}

// List returns the catalog, seeding the fixed sample set on the first
// call against an empty store. A second call returns the same products
// without duplicating them.
func (s *productService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.Product().List(ctx)
	if err != nil {
		return nil, err
	}

	if len(products) > 0 {
		return products, nil
	}

	seed := sampleProducts()
	if err := s.repo.Product().CreateBatch(ctx, seed); err != nil {
		return nil, err
	}

	s.logger.Info("Seeded product catalog", zap.Int("count", len(seed)))
	return seed, nil
}

func sampleProducts() []models.Product {
	items := []struct {
		name     string
		price    float64
		imageURL string
		stock    int
		category string
	}{
		{"Wireless Headphones", 79.99, "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400", 45, "Electronics"},
		{"Smart Watch", 199.99, "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400", 32, "Electronics"},
		{"Laptop Backpack", 49.99, "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400", 67, "Accessories"},
		{"USB-C Hub", 34.99, "https://images.unsplash.com/photo-1625948515291-69613efd103f?w=400", 89, "Electronics"},
		{"Desk Lamp", 29.99, "https://images.unsplash.com/photo-1513506003901-1e6a229e2d15?w=400", 54, "Home"},
		{"Bluetooth Speaker", 59.99, "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=400", 41, "Electronics"},
		{"Phone Stand", 19.99, "https://images.unsplash.com/photo-1588508065123-287b28e013da?w=400", 76, "Accessories"},
		{"Wireless Mouse", 24.99, "https://images.unsplash.com/photo-1527814050087-3793815479db?w=400", 93, "Electronics"},
		{"Notebook Set", 14.99, "https://images.unsplash.com/photo-1517842645767-c639042777db?w=400", 128, "Stationery"},
		{"Water Bottle", 22.99, "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400", 85, "Lifestyle"},
		{"Yoga Mat", 39.99, "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=400", 47, "Fitness"},
		{"Coffee Mug", 12.99, "https://images.unsplash.com/photo-1514228742587-6b1558fcca3d?w=400", 112, "Home"},
	}

	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		products = append(products, models.Product{
			ID:       uuid.New().String(),
			Name:     item.name,
			Price:    item.price,
			ImageURL: item.imageURL,
			Stock:    item.stock,
			Category: item.category,
		})
	}

	return products
}
