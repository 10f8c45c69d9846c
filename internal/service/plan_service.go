package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fsstock/internal/config"
	"fsstock/internal/dto"
	"fsstock/internal/model"
	"fsstock/internal/planner"
	"fsstock/internal/repository"
	"fsstock/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanService computes trip plans from a farm's stock registry, stores the
// last plan per farm, and applies stored plans to the registry.
type PlanService interface {
	Compute(ctx context.Context, farmID uuid.UUID, req dto.ComputePlanRequest) (*dto.PlanResponse, error)
	Last(ctx context.Context, farmID uuid.UUID) (*dto.PlanResponse, error)
	Apply(ctx context.Context, farmID uuid.UUID) (*dto.ApplyPlanResponse, error)
}

type planService struct {
	planRepo   repository.PlanRepository
	stockRepo  repository.StockRepository
	farmRepo   repository.FarmRepository
	rdb        *redis.Client
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewPlanService(
	planRepo repository.PlanRepository,
	stockRepo repository.StockRepository,
	farmRepo repository.FarmRepository,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) PlanService {
	return &planService{
		planRepo:   planRepo,
		stockRepo:  stockRepo,
		farmRepo:   farmRepo,
		rdb:        rdb,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// ── Plan cache ───────────────────────────────────────────────────────────────

func planCacheKey(farmID uuid.UUID) string { return "plan:" + farmID.String() }

func invalidatePlanCache(ctx context.Context, rdb *redis.Client, farmID uuid.UUID) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, planCacheKey(farmID)).Err(); err != nil {
		log.Warn().Err(err).Str("farm_id", farmID.String()).Msg("plan cache invalidation failed")
	}
}

func (s *planService) cachePlan(ctx context.Context, farmID uuid.UUID, resp *dto.PlanResponse) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	ttl := time.Duration(s.cfg.PlanCacheTTLSeconds) * time.Second
	if err := s.rdb.Set(ctx, planCacheKey(farmID), data, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("farm_id", farmID.String()).Msg("plan cache write failed")
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Compute ──────────────────────────────────────────────────────────────────

func (s *planService) Compute(ctx context.Context, farmID uuid.UUID, req dto.ComputePlanRequest) (*dto.PlanResponse, error) {
	if _, err := s.farmRepo.FindByID(ctx, farmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("farm not found")
		}
		return nil, err
	}

	entries, err := s.stockRepo.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}

	products := make([]planner.Product, 0, len(entries))
	for _, e := range entries {
		products = append(products, planner.Product{
			ProductID:    e.ProductID,
			StockL:       e.QtyL,
			MinKeepL:     e.MinKeepL,
			CapPerTripL:  e.CapPerTripL,
			PricePer1000: e.MaxPricePer1000,
			Enabled:      e.Enabled,
		})
	}

	plan := planner.MinTrips(products, req.TargetEUR)

	payload, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	rec := &model.PlanRecord{
		FarmID:          farmID,
		Feasible:        plan.Feasible,
		TargetEUR:       plan.TargetEUR,
		TotalRevenueEUR: plan.TotalRevenueEUR,
		TotalTrips:      plan.TotalTrips,
		Reason:          string(plan.Reason),
		Payload:         payload,
	}
	if err := s.planRepo.Save(ctx, rec); err != nil {
		return nil, err
	}

	resp := &dto.PlanResponse{
		FarmID:     farmID.String(),
		Plan:       plan,
		ComputedAt: time.Now().UTC(),
	}
	s.cachePlan(ctx, farmID, resp)

	log.Info().
		Str("farm_id", farmID.String()).
		Bool("feasible", plan.Feasible).
		Int("trips", plan.TotalTrips).
		Str("revenue_eur", plan.TotalRevenueEUR.String()).
		Msg("trip plan computed")

	return resp, nil
}

// ── Last ─────────────────────────────────────────────────────────────────────

func (s *planService) Last(ctx context.Context, farmID uuid.UUID) (*dto.PlanResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, planCacheKey(farmID)).Bytes(); err == nil {
			var resp dto.PlanResponse
			if err := json.Unmarshal(raw, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	rec, err := s.planRepo.FindByFarm(ctx, farmID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("no plan computed for this farm")
		}
		return nil, err
	}

	var plan planner.Plan
	if err := json.Unmarshal(rec.Payload, &plan); err != nil {
		return nil, fmt.Errorf("decode stored plan: %w", err)
	}
	resp := &dto.PlanResponse{
		FarmID:     farmID.String(),
		Plan:       plan,
		ComputedAt: rec.UpdatedAt.UTC(),
	}
	s.cachePlan(ctx, farmID, resp)
	return resp, nil
}

// ── Apply ────────────────────────────────────────────────────────────────────

// Apply subtracts each line's sold quantity from the farm's stock in one
// transaction, removes entries whose stock reaches exactly zero, and clears
// the stored plan. Stale plans (registry no longer holds what the plan would
// sell) are rejected and must be recomputed.
func (s *planService) Apply(ctx context.Context, farmID uuid.UUID) (*dto.ApplyPlanResponse, error) {
	rec, err := s.planRepo.FindByFarm(ctx, farmID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("no plan to apply")
		}
		return nil, err
	}

	var plan planner.Plan
	if err := json.Unmarshal(rec.Payload, &plan); err != nil {
		return nil, fmt.Errorf("decode stored plan: %w", err)
	}
	if !plan.Feasible {
		return nil, errors.New("stored plan is not feasible and cannot be applied")
	}

	entries, err := s.stockRepo.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string]model.StockEntry, len(entries))
	for _, e := range entries {
		byProduct[e.ProductID] = e
	}

	resp := &dto.ApplyPlanResponse{
		FarmID:       farmID.String(),
		AppliedTrips: plan.TotalTrips,
	}
	type depleted struct {
		productID string
		leftL     decimal.Decimal
	}
	var atThreshold []depleted

	txErr := runTx(ctx, s.stockRepo.DB(), func(tx *gorm.DB) error {
		for _, line := range plan.Lines {
			entry, ok := byProduct[line.ProductID]
			if !ok {
				return fmt.Errorf("plan is stale: product %q no longer stocked", line.ProductID)
			}
			newQty := entry.QtyL.Sub(line.SoldL)
			if newQty.IsNegative() {
				return fmt.Errorf("plan is stale: product %q holds %s L, plan sells %s L",
					line.ProductID, entry.QtyL.String(), line.SoldL.String())
			}

			if newQty.IsZero() {
				if err := s.stockRepo.DeleteTx(tx, farmID, line.ProductID); err != nil {
					return err
				}
				resp.RemovedProducts = append(resp.RemovedProducts, line.ProductID)
			} else {
				if err := s.stockRepo.SetQtyTx(tx, farmID, line.ProductID, newQty); err != nil {
					return err
				}
				resp.UpdatedProducts = append(resp.UpdatedProducts, line.ProductID)
			}

			if newQty.LessThanOrEqual(entry.MinKeepL) {
				atThreshold = append(atThreshold, depleted{productID: line.ProductID, leftL: newQty})
			}
		}
		// The stored plan is consumed by applying it.
		return s.planRepo.DeleteByFarmTx(tx, farmID)
	})
	if txErr != nil {
		return nil, txErr
	}

	invalidatePlanCache(ctx, s.rdb, farmID)

	if len(atThreshold) > 0 && s.dispatcher != nil && s.cfg.AlertEmail != "" {
		var b strings.Builder
		fmt.Fprintf(&b, "Trip plan applied on farm %s.\n\nProducts now at or below their keep threshold:\n", farmID)
		for _, d := range atThreshold {
			fmt.Fprintf(&b, "  - %s: %s L remaining\n", d.productID, d.leftL.String())
		}
		payload := worker.EmailJobPayload{
			ToEmail: s.cfg.AlertEmail,
			Subject: "fsstock: low stock after plan application",
			Body:    b.String(),
		}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Warn().Err(err).Msg("failed to enqueue low-stock alert")
		}
	}

	log.Info().
		Str("farm_id", farmID.String()).
		Int("trips", plan.TotalTrips).
		Int("updated", len(resp.UpdatedProducts)).
		Int("removed", len(resp.RemovedProducts)).
		Msg("trip plan applied")

	return resp, nil
}
