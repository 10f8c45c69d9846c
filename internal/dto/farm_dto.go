package dto

import "time"

type CreateFarmRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

type RenameFarmRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

type FarmResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
