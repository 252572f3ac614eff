package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/midas-hq/midas/internal/core/domain"
	"github.com/midas-hq/midas/internal/core/ports"
)

// RegistryService manages condominium records. Plain CRUD: the registry is
// an administrative collaborator behind the gateway, not a business engine.
type RegistryService struct {
	repo ports.CondominiumRepository
}

func NewRegistryService(repo ports.CondominiumRepository) *RegistryService {
	return &RegistryService{repo: repo}
}

func (s *RegistryService) Create(ctx context.Context, condo *domain.Condominium) (*domain.Condominium, error) {
	now := time.Now().UTC()
	condo.ID = uuid.NewString()
	condo.CreatedAt = now
	condo.UpdatedAt = now
	return s.repo.Create(ctx, condo)
}

func (s *RegistryService) Get(ctx context.Context, id string) (*domain.Condominium, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RegistryService) List(ctx context.Context) ([]domain.Condominium, error) {
	return s.repo.FindAll(ctx)
}

// Update replaces the stored record, preserving its creation time.
func (s *RegistryService) Update(ctx context.Context, condo *domain.Condominium) (*domain.Condominium, error) {
	existing, err := s.repo.FindByID(ctx, condo.ID)
	if err != nil {
		return nil, err
	}
	condo.CreatedAt = existing.CreatedAt
	condo.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, condo)
}

func (s *RegistryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
