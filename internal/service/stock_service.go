package service

import (
	"context"
	"errors"
	"fmt"

	"fsstock/internal/dto"
	"fsstock/internal/model"
	"fsstock/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type StockService interface {
	List(ctx context.Context, farmID uuid.UUID) (*dto.StockListResponse, error)
	Upsert(ctx context.Context, farmID uuid.UUID, productID string, req dto.UpsertStockRequest) (*dto.StockEntryResponse, error)
	Delete(ctx context.Context, farmID uuid.UUID, productID string) error
}

type stockService struct {
	repo     repository.StockRepository
	farmRepo repository.FarmRepository
	catalog  CatalogService
	rdb      *redis.Client
}

func NewStockService(repo repository.StockRepository, farmRepo repository.FarmRepository, catalog CatalogService, rdb *redis.Client) StockService {
	return &stockService{repo: repo, farmRepo: farmRepo, catalog: catalog, rdb: rdb}
}

func (s *stockService) entryToResponse(ctx context.Context, e *model.StockEntry) dto.StockEntryResponse {
	name, _ := s.catalog.Resolve(ctx, e.FarmID, e.ProductID)
	return dto.StockEntryResponse{
		ProductID:       e.ProductID,
		ProductName:     name,
		QtyL:            e.QtyL,
		MaxPricePer1000: e.MaxPricePer1000,
		CapPerTripL:     e.CapPerTripL,
		MinKeepL:        e.MinKeepL,
		Enabled:         e.Enabled,
	}
}

func (s *stockService) List(ctx context.Context, farmID uuid.UUID) (*dto.StockListResponse, error) {
	if _, err := s.farmRepo.FindByID(ctx, farmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("farm not found")
		}
		return nil, err
	}

	entries, err := s.repo.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StockListResponse{
		FarmID:  farmID.String(),
		Entries: make([]dto.StockEntryResponse, 0, len(entries)),
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, s.entryToResponse(ctx, &entries[i]))
	}
	return resp, nil
}

func (s *stockService) Upsert(ctx context.Context, farmID uuid.UUID, productID string, req dto.UpsertStockRequest) (*dto.StockEntryResponse, error) {
	if _, err := s.farmRepo.FindByID(ctx, farmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("farm not found")
		}
		return nil, err
	}
	if _, known := s.catalog.Resolve(ctx, farmID, productID); !known {
		return nil, fmt.Errorf("unknown product id %q", productID)
	}
	if req.MinKeepL.GreaterThan(req.QtyL) {
		return nil, errors.New("min_keep_l cannot exceed qty_l")
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	entry := &model.StockEntry{
		FarmID:          farmID,
		ProductID:       productID,
		QtyL:            req.QtyL,
		MaxPricePer1000: req.MaxPricePer1000,
		CapPerTripL:     req.CapPerTripL,
		MinKeepL:        req.MinKeepL,
		Enabled:         enabled,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	// A cached plan no longer reflects the registry.
	invalidatePlanCache(ctx, s.rdb, farmID)

	resp := s.entryToResponse(ctx, entry)
	return &resp, nil
}

func (s *stockService) Delete(ctx context.Context, farmID uuid.UUID, productID string) error {
	if _, err := s.repo.FindByFarmAndProduct(ctx, farmID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("stock entry not found")
		}
		return err
	}
	if err := s.repo.Delete(ctx, farmID, productID); err != nil {
		return err
	}
	invalidatePlanCache(ctx, s.rdb, farmID)
	return nil
}
