package repository

import (
	"context"

	"fsstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanRepository interface {
	// Save replaces the farm's stored plan (at most one per farm).
	Save(ctx context.Context, rec *model.PlanRecord) error
	FindByFarm(ctx context.Context, farmID uuid.UUID) (*model.PlanRecord, error)
	DeleteByFarm(ctx context.Context, farmID uuid.UUID) error
	DeleteByFarmTx(tx *gorm.DB, farmID uuid.UUID) error
}

type planRepo struct{ db *gorm.DB }

func NewPlanRepository(db *gorm.DB) PlanRepository { return &planRepo{db: db} }

func (r *planRepo) Save(ctx context.Context, rec *model.PlanRecord) error {
	existing, err := r.FindByFarm(ctx, rec.FarmID)
	if err == nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(rec).Error
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *planRepo) FindByFarm(ctx context.Context, farmID uuid.UUID) (*model.PlanRecord, error) {
	var rec model.PlanRecord
	err := r.db.WithContext(ctx).Where("farm_id = ?", farmID).First(&rec).Error
	return &rec, err
}

func (r *planRepo) DeleteByFarm(ctx context.Context, farmID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("farm_id = ?", farmID).Delete(&model.PlanRecord{}).Error
}

func (r *planRepo) DeleteByFarmTx(tx *gorm.DB, farmID uuid.UUID) error {
	return tx.Where("farm_id = ?", farmID).Delete(&model.PlanRecord{}).Error
}
