package dto

import "github.com/shopspring/decimal"

type CreateUserProductRequest struct {
	ProductID              string          `json:"product_id"                 validate:"required,min=2,max=64"`
	Name                   string          `json:"name"                       validate:"required,min=1,max=120"`
	Icon                   string          `json:"icon"`
	DefaultMaxPricePer1000 decimal.Decimal `json:"default_max_price_per_1000" validate:"gte=0"`
}

type CatalogProductResponse struct {
	ProductID              string          `json:"product_id"`
	Name                   string          `json:"name"`
	Icon                   string          `json:"icon,omitempty"`
	DefaultMaxPricePer1000 decimal.Decimal `json:"default_max_price_per_1000"`
	UserDefined            bool            `json:"user_defined"`
}
