package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/midas-hq/midas/internal/auth"
	"github.com/midas-hq/midas/internal/core/domain"
	"github.com/midas-hq/midas/internal/core/ports"
)

// IdentityService implements signup and login. Tokens come out of the
// issuer; credentials go into the repository. Nothing here holds state.
type IdentityService struct {
	repo   ports.UserRepository
	issuer *auth.Issuer
}

func NewIdentityService(repo ports.UserRepository, issuer *auth.Issuer) *IdentityService {
	return &IdentityService{repo: repo, issuer: issuer}
}

// Signup creates an account. The role defaults to resident; unknown roles
// are rejected before any hashing happens. Duplicate emails surface as
// domain.ErrEmailExists straight from the store's uniqueness constraint.
func (s *IdentityService) Signup(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleResident
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrUnknownRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Roles:        domain.Roles{role},
		CreatedAt:    time.Now().UTC(),
	}

	return s.repo.Create(ctx, user)
}

// Login verifies credentials and issues a signed token. An unknown email and
// a wrong password are indistinguishable to the caller: both come back as
// domain.ErrInvalidCredentials.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, time.Duration, error) {
	if email == "" || password == "" {
		return "", 0, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", 0, domain.ErrInvalidCredentials
		}
		return "", 0, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", 0, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", 0, err
	}
	return token, s.issuer.TTL(), nil
}
