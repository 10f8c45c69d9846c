package service

import (
	"context"
	"errors"

	"fsstock/internal/dto"
	"fsstock/internal/model"
	"fsstock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FarmService interface {
	Create(ctx context.Context, req dto.CreateFarmRequest) (*dto.FarmResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.FarmResponse, error)
	List(ctx context.Context) ([]dto.FarmResponse, error)
	Rename(ctx context.Context, id uuid.UUID, req dto.RenameFarmRequest) (*dto.FarmResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type farmService struct {
	repo repository.FarmRepository
}

func NewFarmService(repo repository.FarmRepository) FarmService {
	return &farmService{repo: repo}
}

func farmToResponse(f *model.Farm) dto.FarmResponse {
	return dto.FarmResponse{
		ID:        f.ID.String(),
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
	}
}

func (s *farmService) Create(ctx context.Context, req dto.CreateFarmRequest) (*dto.FarmResponse, error) {
	f := &model.Farm{Name: req.Name}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	resp := farmToResponse(f)
	return &resp, nil
}

func (s *farmService) Get(ctx context.Context, id uuid.UUID) (*dto.FarmResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("farm not found")
		}
		return nil, err
	}
	resp := farmToResponse(f)
	return &resp, nil
}

func (s *farmService) List(ctx context.Context) ([]dto.FarmResponse, error) {
	farms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FarmResponse, 0, len(farms))
	for i := range farms {
		out = append(out, farmToResponse(&farms[i]))
	}
	return out, nil
}

func (s *farmService) Rename(ctx context.Context, id uuid.UUID, req dto.RenameFarmRequest) (*dto.FarmResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("farm not found")
		}
		return nil, err
	}
	f.Name = req.Name
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	resp := farmToResponse(f)
	return &resp, nil
}

func (s *farmService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("farm not found")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
