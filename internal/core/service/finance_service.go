package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/midas-hq/midas/internal/core/domain"
	"github.com/midas-hq/midas/internal/core/ports"
)

// FinanceService manages accounts receivable. Billing business rules are out
// of scope; this only records and lists entries.
type FinanceService struct {
	repo ports.ReceivableRepository
}

func NewFinanceService(repo ports.ReceivableRepository) *FinanceService {
	return &FinanceService{repo: repo}
}

func (s *FinanceService) CreateReceivable(ctx context.Context, rcv *domain.Receivable) (*domain.Receivable, error) {
	rcv.ID = uuid.NewString()
	if rcv.Status == "" {
		rcv.Status = domain.ReceivableOpen
	}
	rcv.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, rcv)
}

// ListReceivables returns entries, optionally filtered by condominium.
func (s *FinanceService) ListReceivables(ctx context.Context, condominiumID string) ([]domain.Receivable, error) {
	return s.repo.FindAll(ctx, condominiumID)
}
