package repository

import (
	"context"

	"fsstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FarmRepository interface {
	Create(ctx context.Context, f *model.Farm) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Farm, error)
	List(ctx context.Context) ([]model.Farm, error)
	Update(ctx context.Context, f *model.Farm) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type farmRepo struct{ db *gorm.DB }

func NewFarmRepository(db *gorm.DB) FarmRepository { return &farmRepo{db: db} }

func (r *farmRepo) Create(ctx context.Context, f *model.Farm) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *farmRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Farm, error) {
	var f model.Farm
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *farmRepo) List(ctx context.Context) ([]model.Farm, error) {
	var farms []model.Farm
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&farms).Error
	return farms, err
}

func (r *farmRepo) Update(ctx context.Context, f *model.Farm) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *farmRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Farm{}, id).Error
}
