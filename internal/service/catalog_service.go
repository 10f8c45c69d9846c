package service

import (
	"context"
	"errors"
	"fmt"

	"fsstock/internal/catalog"
	"fsstock/internal/dto"
	"fsstock/internal/model"
	"fsstock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService exposes the merged product catalog: the built-in products
// plus any products a farm has defined itself.
type CatalogService interface {
	List(ctx context.Context, farmID *uuid.UUID) ([]dto.CatalogProductResponse, error)
	CreateUserProduct(ctx context.Context, farmID uuid.UUID, req dto.CreateUserProductRequest) (*dto.CatalogProductResponse, error)
	// Resolve returns the display name for a product id, or ok=false when the
	// id is unknown to both the built-in catalog and the farm.
	Resolve(ctx context.Context, farmID uuid.UUID, productID string) (string, bool)
}

type catalogService struct {
	builtin *catalog.Catalog
	repo    repository.UserProductRepository
}

func NewCatalogService(builtin *catalog.Catalog, repo repository.UserProductRepository) CatalogService {
	return &catalogService{builtin: builtin, repo: repo}
}

func (s *catalogService) List(ctx context.Context, farmID *uuid.UUID) ([]dto.CatalogProductResponse, error) {
	builtins := s.builtin.All()
	out := make([]dto.CatalogProductResponse, 0, len(builtins))
	for _, p := range builtins {
		out = append(out, dto.CatalogProductResponse{
			ProductID:              p.ProductID,
			Name:                   p.Name,
			Icon:                   p.Icon,
			DefaultMaxPricePer1000: p.DefaultMaxPricePer1000,
		})
	}

	if farmID != nil {
		own, err := s.repo.ListByFarm(ctx, *farmID)
		if err != nil {
			return nil, err
		}
		for _, p := range own {
			out = append(out, dto.CatalogProductResponse{
				ProductID:              p.ProductID,
				Name:                   p.Name,
				Icon:                   p.Icon,
				DefaultMaxPricePer1000: p.DefaultMaxPricePer1000,
				UserDefined:            true,
			})
		}
	}
	return out, nil
}

func (s *catalogService) CreateUserProduct(ctx context.Context, farmID uuid.UUID, req dto.CreateUserProductRequest) (*dto.CatalogProductResponse, error) {
	if _, exists := s.builtin.Get(req.ProductID); exists {
		return nil, fmt.Errorf("product id %q already exists in the built-in catalog", req.ProductID)
	}
	if _, err := s.repo.FindByFarmAndProduct(ctx, farmID, req.ProductID); err == nil {
		return nil, fmt.Errorf("product id %q already defined for this farm", req.ProductID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.UserProduct{
		FarmID:                 farmID,
		ProductID:              req.ProductID,
		Name:                   req.Name,
		Icon:                   req.Icon,
		DefaultMaxPricePer1000: req.DefaultMaxPricePer1000,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &dto.CatalogProductResponse{
		ProductID:              p.ProductID,
		Name:                   p.Name,
		Icon:                   p.Icon,
		DefaultMaxPricePer1000: p.DefaultMaxPricePer1000,
		UserDefined:            true,
	}, nil
}

func (s *catalogService) Resolve(ctx context.Context, farmID uuid.UUID, productID string) (string, bool) {
	if p, ok := s.builtin.Get(productID); ok {
		return p.Name, true
	}
	if p, err := s.repo.FindByFarmAndProduct(ctx, farmID, productID); err == nil {
		return p.Name, true
	}
	return "", false
}
