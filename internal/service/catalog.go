package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fazrilrizki/simple-pos/internal/events"
	"github.com/fazrilrizki/simple-pos/internal/models"
	"github.com/fazrilrizki/simple-pos/internal/repo"
	"github.com/fazrilrizki/simple-pos/internal/transport"
	"github.com/fazrilrizki/simple-pos/pkg/logging"
)

// ProductIndexer keeps the search index in step with catalog mutations.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, product models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type CatalogService struct {
	Repo    *repo.GormRepo
	Events  EventPublisher
	Indexer ProductIndexer
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	product := &models.Product{
		ID:         uuid.New(),
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
	}

	product, err := s.Repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	s.syncIndex(ctx, product, false)
	s.publishProductEvent(ctx, events.ProductCreated, product)

	return product, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uuid.UUID) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	product, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		return nil, err
	}

	s.syncIndex(ctx, product, false)
	s.publishProductEvent(ctx, events.ProductUpdated, product)

	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.syncIndex(ctx, &models.Product{ID: id}, true)
	s.publishProductEvent(ctx, events.ProductDeleted, &models.Product{ID: id})

	return nil
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	return s.Repo.CreateCategory(ctx, &models.Category{ID: uuid.New(), Name: req.Name})
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteCategory(ctx, id)
}

// Index sync is best effort, the database stays the source of truth.
func (s *CatalogService) syncIndex(ctx context.Context, product *models.Product, deleted bool) {
	if s.Indexer == nil {
		return
	}

	var err error
	if deleted {
		err = s.Indexer.DeleteProduct(ctx, product.ID)
	} else {
		err = s.Indexer.IndexProduct(ctx, *product)
	}
	if err != nil {
		logging.FromContext(ctx).Warn("product_index_sync_failed", "product_id", product.ID, "error", err)
	}
}

func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, product *models.Product) {
	if s.Events == nil {
		return
	}

	event := events.ProductEvent{
		Type:       eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.PublishEvent(ctx, events.TopicProductEvents, product.ID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("publish_product_event_failed", "type", eventType, "product_id", product.ID, "error", err)
	}
}
