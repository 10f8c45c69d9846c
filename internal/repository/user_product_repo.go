package repository

import (
	"context"

	"fsstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserProductRepository interface {
	Create(ctx context.Context, p *model.UserProduct) error
	FindByFarmAndProduct(ctx context.Context, farmID uuid.UUID, productID string) (*model.UserProduct, error)
	ListByFarm(ctx context.Context, farmID uuid.UUID) ([]model.UserProduct, error)
	Delete(ctx context.Context, farmID uuid.UUID, productID string) error
}

type userProductRepo struct{ db *gorm.DB }

func NewUserProductRepository(db *gorm.DB) UserProductRepository { return &userProductRepo{db: db} }

func (r *userProductRepo) Create(ctx context.Context, p *model.UserProduct) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *userProductRepo) FindByFarmAndProduct(ctx context.Context, farmID uuid.UUID, productID string) (*model.UserProduct, error) {
	var p model.UserProduct
	err := r.db.WithContext(ctx).
		Where("farm_id = ? AND product_id = ?", farmID, productID).
		First(&p).Error
	return &p, err
}

func (r *userProductRepo) ListByFarm(ctx context.Context, farmID uuid.UUID) ([]model.UserProduct, error) {
	var products []model.UserProduct
	err := r.db.WithContext(ctx).
		Where("farm_id = ?", farmID).
		Order("product_id ASC").
		Find(&products).Error
	return products, err
}

func (r *userProductRepo) Delete(ctx context.Context, farmID uuid.UUID, productID string) error {
	return r.db.WithContext(ctx).
		Where("farm_id = ? AND product_id = ?", farmID, productID).
		Delete(&model.UserProduct{}).Error
}
