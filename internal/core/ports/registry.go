package ports

import (
	"context"

	"github.com/midas-hq/midas/internal/core/domain"
)

// CondominiumRepository persists the registry aggregate.
type CondominiumRepository interface {
	Create(ctx context.Context, condo *domain.Condominium) (*domain.Condominium, error)
	FindByID(ctx context.Context, id string) (*domain.Condominium, error)
	FindAll(ctx context.Context) ([]domain.Condominium, error)
	Update(ctx context.Context, condo *domain.Condominium) (*domain.Condominium, error)
	Delete(ctx context.Context, id string) error
}

// RegistryService exposes condominium CRUD to the transport layer.
type RegistryService interface {
	Create(ctx context.Context, condo *domain.Condominium) (*domain.Condominium, error)
	Get(ctx context.Context, id string) (*domain.Condominium, error)
	List(ctx context.Context) ([]domain.Condominium, error)
	Update(ctx context.Context, condo *domain.Condominium) (*domain.Condominium, error)
	Delete(ctx context.Context, id string) error
}
