package serviceimpl

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/services"
	"tasktrack/pkg/config"
)

func testAuthSettings() AuthSettings {
	return AuthSettings{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			AccessTTL:  time.Hour,
			RefreshTTL: 24 * time.Hour,
		},
		Google: config.OAuthProviderConfig{ClientID: "gid", ClientSecret: "gsecret", RedirectURL: "http://localhost/cb"},
	}
}

func newTestUserService(cache *fakeCache, users ...*models.User) (*UserServiceImpl, *fakeUserRepo) {
	repo := newFakeUserRepo(users...)
	var svc *UserServiceImpl
	if cache == nil {
		svc = NewUserService(repo, nil, testAuthSettings()).(*UserServiceImpl)
	} else {
		svc = NewUserService(repo, cache, testAuthSettings()).(*UserServiceImpl)
	}
	return svc, repo
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     "Anna@Example.com",
		Username:  "anna",
		Password:  "password123",
		FirstName: "Anna",
		LastName:  "Bianchi",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestUserService(nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("Register() did not issue tokens")
	}
	if resp.User.Email != "anna@example.com" {
		t.Errorf("email = %q, want lower-cased", resp.User.Email)
	}

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Email: "anna@example.com", Username: "other", Password: "password123"}); !errors.Is(err, services.ErrConflict) {
		t.Errorf("duplicate email error = %v, want conflict", err)
	}

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	user, err := svc.ValidateToken(ctx, login.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if user.Username != "anna" {
		t.Errorf("Username = %q", user.Username)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "wrong"}); !errors.Is(err, services.ErrUnauthenticated) {
		t.Errorf("wrong password error = %v, want unauthenticated", err)
	}
}

func TestLoginRejectsOAuthAccountWithoutPassword(t *testing.T) {
	subject := "g-1"
	svc, _ := newTestUserService(nil, &models.User{
		ID: uuid.New(), Email: "g@example.com", Username: "g", Provider: models.ProviderGoogle,
		ProviderSubject: &subject, IsActive: true,
	})
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "g@example.com", Password: ""}); !errors.Is(err, services.ErrUnauthenticated) {
		t.Errorf("error = %v, want unauthenticated", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	svc, _ := newTestUserService(nil, &models.User{
		ID: uuid.New(), Email: "off@example.com", Username: "off", Password: string(hash), IsActive: false,
	})
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "off@example.com", Password: "password123"}); !errors.Is(err, services.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestRefreshIsSingleUse(t *testing.T) {
	cache := newFakeCache()
	svc, _ := newTestUserService(cache)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatal(err)
	}

	pair, err := svc.Refresh(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatal("no access token")
	}
	if _, err := svc.Refresh(ctx, resp.RefreshToken); !errors.Is(err, services.ErrUnauthenticated) {
		t.Errorf("reused refresh token error = %v, want unauthenticated", err)
	}
	if _, err := svc.Refresh(ctx, resp.AccessToken); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	cache := newFakeCache()
	svc, _ := newTestUserService(cache)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatal(err)
	}
	user, err := svc.ValidateToken(ctx, resp.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, user); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.ValidateToken(ctx, resp.AccessToken); err == nil {
		t.Error("revoked token still valid")
	}
}

func TestOAuthURLs(t *testing.T) {
	svc, _ := newTestUserService(nil)

	raw, err := svc.GetGoogleOAuthURL("state-1")
	if err != nil {
		t.Fatalf("GetGoogleOAuthURL() error = %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if q.Get("client_id") != "gid" || q.Get("state") != "state-1" || q.Get("response_type") != "code" {
		t.Errorf("query = %v", q)
	}

	if _, err := svc.GetGitHubOAuthURL("s"); !errors.Is(err, services.ErrUnavailable) {
		t.Errorf("unconfigured GitHub error = %v, want unavailable", err)
	}
}

func TestLoginWithOAuth(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	existing := &models.User{
		ID: uuid.New(), Email: "luca@example.com", Username: "luca", Password: string(hash),
		Provider: models.ProviderPassword, IsActive: true,
	}
	svc, repo := newTestUserService(nil, existing)
	ctx := context.Background()

	// matching email links the account
	resp, err := svc.LoginWithOAuth(ctx, &dto.OAuthProfile{
		Provider: models.ProviderGitHub, Subject: "42", Email: "luca@example.com", Avatar: "http://a/1.png",
	})
	if err != nil {
		t.Fatalf("LoginWithOAuth() error = %v", err)
	}
	if resp.User.ID != existing.ID.String() {
		t.Errorf("linked user = %s, want %s", resp.User.ID, existing.ID)
	}
	linked := repo.users[existing.ID]
	if linked.ProviderSubject == nil || *linked.ProviderSubject != "42" || linked.Avatar != "http://a/1.png" {
		t.Errorf("account not linked: %+v", linked)
	}

	// unknown identity registers a new user
	resp, err = svc.LoginWithOAuth(ctx, &dto.OAuthProfile{
		Provider: models.ProviderGoogle, Subject: "g-7", Email: "a.very.long.local.part@example.com", FirstName: "Neo",
	})
	if err != nil {
		t.Fatalf("LoginWithOAuth() error = %v", err)
	}
	if len(resp.User.Username) > maxUsernameLen {
		t.Errorf("username %q longer than %d", resp.User.Username, maxUsernameLen)
	}
	if !strings.HasPrefix(resp.User.Username, "a.very.long") {
		t.Errorf("username %q not derived from the email", resp.User.Username)
	}
	if len(repo.users) != 2 {
		t.Errorf("users = %d, want 2", len(repo.users))
	}

	if _, err := svc.LoginWithOAuth(ctx, &dto.OAuthProfile{Provider: models.ProviderGoogle}); !errors.Is(err, services.ErrInvalidInput) {
		t.Errorf("incomplete profile error = %v, want invalid input", err)
	}
}
