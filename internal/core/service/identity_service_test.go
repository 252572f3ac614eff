package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/midas-hq/midas/internal/auth"
	"github.com/midas-hq/midas/internal/core/domain"
)

// stubUserRepo enforces email uniqueness under a lock, mirroring what the
// database index guarantees in production.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailExists
	}
	clone := *user
	r.users[user.Email] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func newTestIssuer(t *testing.T, ttl time.Duration) (*auth.Issuer, *auth.Verifier) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	privDER, _ := x509.MarshalPKCS8PrivateKey(key)
	pubDER, _ := x509.MarshalPKIXPublicKey(&key.PublicKey)
	privPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}))
	pubPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))

	keys, err := auth.NewKeyMaterial("", privPEM, pubPEM)
	if err != nil {
		t.Fatalf("key material: %v", err)
	}
	issuer, err := auth.NewIssuer(keys, ttl)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	verifier, err := auth.NewVerifier(keys)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	return issuer, verifier
}

func TestIdentityService_Signup_Defaults(t *testing.T) {
	issuer, _ := newTestIssuer(t, time.Hour)
	svc := NewIdentityService(newStubUserRepo(), issuer)

	user, err := svc.Signup(context.Background(), "ana@condo.example", "s3cret-pass", "")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatalf("password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !user.Roles.Has(domain.RoleResident) || len(user.Roles) != 1 {
		t.Fatalf("expected default resident role, got %v", user.Roles)
	}
}

func TestIdentityService_Signup_UnknownRole(t *testing.T) {
	issuer, _ := newTestIssuer(t, time.Hour)
	svc := NewIdentityService(newStubUserRepo(), issuer)

	if _, err := svc.Signup(context.Background(), "bob@condo.example", "pass", "janitor"); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestIdentityService_Signup_MissingFields(t *testing.T) {
	issuer, _ := newTestIssuer(t, time.Hour)
	svc := NewIdentityService(newStubUserRepo(), issuer)

	if _, err := svc.Signup(context.Background(), "", "pass", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), "x@condo.example", "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIdentityService_Signup_ConcurrentSameEmail(t *testing.T) {
	issuer, _ := newTestIssuer(t, time.Hour)
	svc := NewIdentityService(newStubUserRepo(), issuer)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Signup(context.Background(), "race@condo.example", "pass-123", domain.RoleManager)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var created, conflicts int
	for err := range results {
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrEmailExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 || conflicts != attempts-1 {
		t.Fatalf("expected exactly one success, got %d successes and %d conflicts", created, conflicts)
	}
}

func TestIdentityService_Login_RoundTrip(t *testing.T) {
	issuer, verifier := newTestIssuer(t, 45*time.Minute)
	svc := NewIdentityService(newStubUserRepo(), issuer)

	user, err := svc.Signup(context.Background(), "carla@condo.example", "goodpass", domain.RoleCollector)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	token, expiresIn, err := svc.Login(context.Background(), "carla@condo.example", "goodpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if expiresIn != 45*time.Minute {
		t.Fatalf("expected ttl 45m, got %v", expiresIn)
	}

	p, err := verifier.Verify("Bearer " + token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if p.Subject != user.ID || p.Email != user.Email {
		t.Fatalf("principal mismatch: %+v vs user %+v", p, user)
	}
	if !p.Roles.Has(domain.RoleCollector) {
		t.Fatalf("expected collector role in principal, got %v", p.Roles)
	}
}

func TestIdentityService_Login_NoExistenceLeak(t *testing.T) {
	issuer, _ := newTestIssuer(t, time.Hour)
	svc := NewIdentityService(newStubUserRepo(), issuer)

	if _, err := svc.Signup(context.Background(), "dave@condo.example", "goodpass", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "dave@condo.example", "badpass")
	_, _, noUser := svc.Login(context.Background(), "ghost@condo.example", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noUser)
	}
	// Both failure classes must be the same error so callers cannot probe
	// which emails are registered.
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("login failures must be indistinguishable: %v vs %v", wrongPass, noUser)
	}
}
