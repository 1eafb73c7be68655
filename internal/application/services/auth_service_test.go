package services_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/24kewang/schedule-manager/internal/application/services"
	"github.com/24kewang/schedule-manager/internal/domain/entities"
	"github.com/24kewang/schedule-manager/internal/infrastructure/config"
	"github.com/24kewang/schedule-manager/internal/infrastructure/logger"
	"github.com/24kewang/schedule-manager/internal/ports"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

type fakeAuthRepo struct {
	mu     sync.Mutex
	tokens map[string]*ports.RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: make(map[string]*ports.RefreshToken)}
}

func (r *fakeAuthRepo) CreateRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[tokenHash] = &ports.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeAuthRepo) GetRefreshToken(_ context.Context, tokenHash string) (*ports.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, entities.ErrUnauthorized
	}
	copied := *token
	return &copied, nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenHash]
	if !ok {
		return entities.ErrUnauthorized
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (r *fakeAuthRepo) RevokeAllUserTokens(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeAuthRepo) CleanupExpiredTokens(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, token := range r.tokens {
		if token.ExpiresAt.Before(time.Now()) {
			delete(r.tokens, hash)
		}
	}
	return nil
}

func newAuthService() (*services.AuthService, *fakeUserRepo, *fakeAuthRepo) {
	userRepo := newFakeUserRepo()
	authRepo := newFakeAuthRepo()
	svc := services.NewAuthService(userRepo, authRepo, config.JWTConfig{
		Secret:           "test-secret-not-for-production",
		ExpiresIn:        15 * time.Minute,
		RefreshExpiresIn: 24 * time.Hour,
		Issuer:           "schedule-manager-test",
	}, logger.NewNop())
	return svc, userRepo, authRepo
}

func register(t *testing.T, svc *services.AuthService) *ports.AuthResponse {
	t.Helper()

	resp, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "student@example.com",
		Username: "student",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	return resp
}

func TestRegister_IssuesTokensAndSanitizesUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	resp := register(t, svc)

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if resp.TokenType != "Bearer" {
		t.Fatalf("expected Bearer token type, got %q", resp.TokenType)
	}
	if resp.User.PasswordHash != "" {
		t.Fatal("expected the password hash to be stripped from the response")
	}
	if resp.User.Role != entities.UserRoleStudent {
		t.Fatalf("expected the student role, got %q", resp.User.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	register(t, svc)

	_, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "student@example.com",
		Username: "someone-else",
		Password: "password123",
	})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected a duplicate email error, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	register(t, svc)

	_, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "student@example.com",
		Password: "wrong",
	})
	if err == nil {
		t.Fatal("expected login to fail")
	}
}

func TestLogin_ThenValidateToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	registered := register(t, svc)

	resp, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "student@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != registered.User.ID.String() {
		t.Fatalf("expected claims for %s, got %s", registered.User.ID, claims.UserID)
	}
	if claims.Role != entities.UserRoleStudent {
		t.Fatalf("expected the student role, got %q", claims.Role)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected validation to fail")
	}
}

func TestRefreshToken_RotatesAndRevokesOld(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	registered := register(t, svc)

	refreshed, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Fatal("expected a fresh refresh token")
	}

	// The old token is single-use.
	if _, err := svc.RefreshToken(context.Background(), registered.RefreshToken); err == nil {
		t.Fatal("expected the old refresh token to be rejected")
	}
}

func TestCleanupExpiredTokens_DropsOnlyExpired(t *testing.T) {
	t.Parallel()

	svc, _, authRepo := newAuthService()
	registered := register(t, svc)

	userID := registered.User.ID
	if err := authRepo.CreateRefreshToken(context.Background(), userID, "stale-hash", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("failed to seed expired token: %v", err)
	}

	if err := svc.CleanupExpiredTokens(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := authRepo.GetRefreshToken(context.Background(), "stale-hash"); err == nil {
		t.Fatal("expected the expired token to be gone")
	}

	// The live token survives the sweep.
	if _, err := svc.RefreshToken(context.Background(), registered.RefreshToken); err != nil {
		t.Fatalf("expected the live refresh token to still work: %v", err)
	}
}

func TestLogout_RevokesRefreshTokens(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	registered := register(t, svc)

	if err := svc.Logout(context.Background(), registered.User.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), registered.RefreshToken); err == nil {
		t.Fatal("expected the refresh token to be revoked")
	}
}
