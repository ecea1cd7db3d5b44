package product

import (
	"context"

	"go.uber.org/zap"
	"product-store/constant"
	"product-store/model"
	productRepo "product-store/repository/product"
	"product-store/utils/errors"
	"product-store/utils/logger"
)

// Lifecycle event actions published after successful writes
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// EventPublisher receives product lifecycle events. Publishing is best
// effort: failures are logged and never fail the request.
type EventPublisher interface {
	PublishProductEvent(action string, product *model.ProductEntity) error
}

type ProductApp interface {
	ListProducts(ctx context.Context) ([]model.ProductEntity, error)
	GetProduct(ctx context.Context, id int64) (*model.ProductEntity, error)
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.ProductEntity, error)
	UpdateProduct(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.ProductEntity, error)
	DeleteProduct(ctx context.Context, id int64) (*model.ProductEntity, error)
}

type productAppImpl struct {
	productRepo productRepo.ProductRepository
	events      EventPublisher
}

// NewProductApp wires the repository and an optional event publisher
// (nil disables publishing).
func NewProductApp(productRepo productRepo.ProductRepository, events EventPublisher) ProductApp {
	return &productAppImpl{productRepo: productRepo, events: events}
}

func (s *productAppImpl) ListProducts(ctx context.Context) ([]model.ProductEntity, error) {
	items, err := s.productRepo.List(ctx)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return items, nil
}

func (s *productAppImpl) GetProduct(ctx context.Context, id int64) (*model.ProductEntity, error) {
	result, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if result == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	return result, nil
}

func (s *productAppImpl) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.ProductEntity, error) {
	// A zero price is treated the same as an absent one
	if req.Name == "" || req.ImageURL == "" || req.Price.IsZero() {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	result, err := s.productRepo.Create(ctx, req.Name, req.Price, req.ImageURL)
	if err != nil {
		logger.Error("[CreateProduct] error productRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publish(EventCreated, result)
	return result, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.ProductEntity, error) {
	result, err := s.productRepo.Update(ctx, id, req.Name, req.Price, req.ImageURL)
	if err != nil {
		logger.Error("[UpdateProduct] error productRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if result == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	s.publish(EventUpdated, result)
	return result, nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, id int64) (*model.ProductEntity, error) {
	result, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("[DeleteProduct] error productRepo.Delete", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if result == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	s.publish(EventDeleted, result)
	return result, nil
}

func (s *productAppImpl) publish(action string, product *model.ProductEntity) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(action, product); err != nil {
		logger.Warn("[publish] error events.PublishProductEvent",
			zap.String("action", action),
			zap.String("error", err.Error()))
	}
}
