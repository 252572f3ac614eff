package ports

import (
	"context"

	"github.com/midas-hq/midas/internal/core/domain"
)

// ReceivableRepository persists accounts-receivable entries.
type ReceivableRepository interface {
	Create(ctx context.Context, rcv *domain.Receivable) (*domain.Receivable, error)
	FindAll(ctx context.Context, condominiumID string) ([]domain.Receivable, error)
}

// FinanceService exposes receivable management to the transport layer.
type FinanceService interface {
	CreateReceivable(ctx context.Context, rcv *domain.Receivable) (*domain.Receivable, error)
	ListReceivables(ctx context.Context, condominiumID string) ([]domain.Receivable, error)
}
