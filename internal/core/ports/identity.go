package ports

import (
	"context"
	"time"

	"github.com/midas-hq/midas/internal/core/domain"
)

// UserRepository persists identity credentials. Email uniqueness is the
// store's job: concurrent signups with the same email must yield exactly one
// success, the rest surfacing domain.ErrEmailExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// IdentityService implements account creation and RS256 token issuance.
type IdentityService interface {
	Signup(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, expiresIn time.Duration, err error)
}
