package repository

import (
	"context"

	"fsstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockRepository interface {
	Upsert(ctx context.Context, e *model.StockEntry) error
	FindByFarmAndProduct(ctx context.Context, farmID uuid.UUID, productID string) (*model.StockEntry, error)
	ListByFarm(ctx context.Context, farmID uuid.UUID) ([]model.StockEntry, error)
	Delete(ctx context.Context, farmID uuid.UUID, productID string) error

	// Used inside the apply-plan transaction — callers pass the tx instance.
	SetQtyTx(tx *gorm.DB, farmID uuid.UUID, productID string, qty decimal.Decimal) error
	DeleteTx(tx *gorm.DB, farmID uuid.UUID, productID string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) Upsert(ctx context.Context, e *model.StockEntry) error {
	existing, err := r.FindByFarmAndProduct(ctx, e.FarmID, e.ProductID)
	if err == nil {
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(e).Error
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *stockRepo) FindByFarmAndProduct(ctx context.Context, farmID uuid.UUID, productID string) (*model.StockEntry, error) {
	var e model.StockEntry
	err := r.db.WithContext(ctx).
		Where("farm_id = ? AND product_id = ?", farmID, productID).
		First(&e).Error
	return &e, err
}

func (r *stockRepo) ListByFarm(ctx context.Context, farmID uuid.UUID) ([]model.StockEntry, error) {
	var entries []model.StockEntry
	err := r.db.WithContext(ctx).
		Where("farm_id = ?", farmID).
		Order("product_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *stockRepo) Delete(ctx context.Context, farmID uuid.UUID, productID string) error {
	return r.db.WithContext(ctx).
		Where("farm_id = ? AND product_id = ?", farmID, productID).
		Delete(&model.StockEntry{}).Error
}

func (r *stockRepo) SetQtyTx(tx *gorm.DB, farmID uuid.UUID, productID string, qty decimal.Decimal) error {
	return tx.Model(&model.StockEntry{}).
		Where("farm_id = ? AND product_id = ?", farmID, productID).
		Update("qty_l", qty).Error
}

func (r *stockRepo) DeleteTx(tx *gorm.DB, farmID uuid.UUID, productID string) error {
	return tx.Where("farm_id = ? AND product_id = ?", farmID, productID).
		Delete(&model.StockEntry{}).Error
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
