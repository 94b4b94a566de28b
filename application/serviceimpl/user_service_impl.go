package serviceimpl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/ports"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
	"tasktrack/pkg/config"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	githubAuthURL  = "https://github.com/login/oauth/authorize"
	maxUsernameLen = 20
)

var (
	errInvalidCredentials = services.NewError(services.ErrUnauthenticated, "invalid email or password")
	errInvalidToken       = services.NewError(services.ErrUnauthenticated, "invalid or expired token")
	errAccountDisabled    = services.NewError(services.ErrForbidden, "account is disabled")
)

// AuthSettings token and OAuth settings of the user service
type AuthSettings struct {
	JWT    config.JWTConfig
	Google config.OAuthProviderConfig
	GitHub config.OAuthProviderConfig
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	// cache optional, nil disables token revocation
	cache    ports.CachePort
	settings AuthSettings
	now      func() time.Time
}

func NewUserService(userRepo repositories.UserRepository, cache ports.CachePort, settings AuthSettings) services.UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		cache:    cache,
		settings: settings,
		now:      time.Now,
	}
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	existingUser, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		logger.WarnContext(ctx, "Email already exists", "email", req.Email)
		return nil, services.NewError(services.ErrConflict, "email already exists")
	}

	existingUser, _ = s.userRepo.GetByUsername(ctx, req.Username)
	if existingUser != nil {
		logger.WarnContext(ctx, "Username already exists", "username", req.Username)
		return nil, services.NewError(services.ErrConflict, "username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Username:  req.Username,
		Password:  string(hashedPassword),
		Provider:  models.ProviderPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      "user",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "User created successfully", "user_id", user.ID, "email", user.Email)
	return s.loginResponse(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.WarnContext(ctx, "Login failed - email not found", "email", req.Email)
		return nil, errInvalidCredentials
	}

	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed - account disabled", "user_id", user.ID)
		return nil, errAccountDisabled
	}

	// OAuth accounts have no password hash, bcrypt rejects the empty hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return nil, errInvalidCredentials
	}

	logger.InfoContext(ctx, "User logged in successfully", "user_id", user.ID, "email", user.Email)
	return s.loginResponse(user)
}

func (s *UserServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := utils.ValidateTokenOfType(refreshToken, s.settings.JWT.Secret, utils.TokenTypeRefresh)
	if err != nil {
		return nil, errInvalidToken
	}
	if s.isRevoked(ctx, claims.TokenID) {
		logger.WarnContext(ctx, "Refresh with revoked token", "user_id", claims.ID)
		return nil, errInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.ID)
	if err != nil {
		return nil, errInvalidToken
	}
	if !user.IsActive {
		return nil, errAccountDisabled
	}

	// refresh tokens are single use
	s.revoke(ctx, claims.TokenID, claims.ExpiresAt)

	pair, err := s.issueTokens(user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to issue tokens", "user_id", user.ID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Token refreshed", "user_id", user.ID)
	return pair, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, user *utils.UserContext) error {
	if user == nil {
		return errInvalidToken
	}
	s.revoke(ctx, user.TokenID, user.ExpiresAt)
	logger.InfoContext(ctx, "User logged out", "user_id", user.ID)
	return nil
}

func (s *UserServiceImpl) ValidateToken(ctx context.Context, token string) (*utils.UserContext, error) {
	userCtx, err := utils.ValidateTokenStringToUUID(token, s.settings.JWT.Secret)
	if err != nil {
		return nil, err
	}
	if s.isRevoked(ctx, userCtx.TokenID) {
		return nil, utils.ErrInvalidToken
	}
	return userCtx, nil
}

func (s *UserServiceImpl) isRevoked(ctx context.Context, jti string) bool {
	if s.cache == nil || jti == "" {
		return false
	}
	n, err := s.cache.Exists(ctx, revokedKey(jti))
	if err != nil {
		logger.WarnContext(ctx, "Revocation lookup failed", "error", err)
		return false
	}
	return n > 0
}

// revoke keeps the jti only until the token would have expired anyway
func (s *UserServiceImpl) revoke(ctx context.Context, jti string, expiresAt time.Time) {
	if s.cache == nil || jti == "" {
		return
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, revokedKey(jti), "1", ttl); err != nil {
		logger.WarnContext(ctx, "Failed to revoke token", "error", err)
	}
}

func (s *UserServiceImpl) issueTokens(user *models.User) (*dto.TokenPair, error) {
	now := s.now()
	claims := utils.UserContext{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}

	access, err := utils.GenerateToken(claims, utils.TokenTypeAccess, s.settings.JWT.Secret, s.settings.JWT.AccessTTL, now)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(claims, utils.TokenTypeRefresh, s.settings.JWT.Secret, s.settings.JWT.RefreshTTL, now)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		ExpiresAt:    access.ExpiresAt,
	}, nil
}

func (s *UserServiceImpl) loginResponse(user *models.User) (*dto.LoginResponse, error) {
	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		TokenPair: *pair,
		User:      *dto.UserToUserResponse(user),
	}, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		logger.WarnContext(ctx, "User not found for profile update", "user_id", userID)
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to update user profile", "user_id", userID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "User profile updated", "user_id", userID)
	return user, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	users, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list users", "offset", offset, "limit", limit, "error", err)
		return nil, 0, err
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count users", "error", err)
		return nil, 0, err
	}

	return users, count, nil
}

// ==================== OAuth ====================

func (s *UserServiceImpl) GetGoogleOAuthURL(state string) (string, error) {
	cfg := s.settings.Google
	if !cfg.Enabled() {
		return "", services.NewError(services.ErrUnavailable, "google login is not configured")
	}

	params := url.Values{}
	params.Add("client_id", cfg.ClientID)
	params.Add("redirect_uri", cfg.RedirectURL)
	params.Add("response_type", "code")
	params.Add("scope", "openid email profile")
	params.Add("access_type", "offline")
	params.Add("state", state)

	return fmt.Sprintf("%s?%s", googleAuthURL, params.Encode()), nil
}

func (s *UserServiceImpl) GetGitHubOAuthURL(state string) (string, error) {
	cfg := s.settings.GitHub
	if !cfg.Enabled() {
		return "", services.NewError(services.ErrUnavailable, "github login is not configured")
	}

	params := url.Values{}
	params.Add("client_id", cfg.ClientID)
	params.Add("redirect_uri", cfg.RedirectURL)
	params.Add("scope", "read:user user:email")
	params.Add("state", state)

	return fmt.Sprintf("%s?%s", githubAuthURL, params.Encode()), nil
}

// LoginWithOAuth matches by provider identity first, then links by email, else registers
func (s *UserServiceImpl) LoginWithOAuth(ctx context.Context, profile *dto.OAuthProfile) (*dto.LoginResponse, error) {
	if profile == nil || profile.Subject == "" || profile.Email == "" {
		return nil, services.NewError(services.ErrInvalidInput, "provider returned an incomplete profile")
	}

	user, err := s.userRepo.GetByProvider(ctx, profile.Provider, profile.Subject)
	if err == nil && user != nil {
		if !user.IsActive {
			logger.WarnContext(ctx, "OAuth login failed - account disabled", "provider", profile.Provider, "user_id", user.ID)
			return nil, errAccountDisabled
		}
		logger.InfoContext(ctx, "OAuth login successful", "provider", profile.Provider, "user_id", user.ID)
		return s.loginResponse(user)
	}

	subject := profile.Subject
	existingUser, _ := s.userRepo.GetByEmail(ctx, profile.Email)
	if existingUser != nil {
		if !existingUser.IsActive {
			return nil, errAccountDisabled
		}
		existingUser.Provider = profile.Provider
		existingUser.ProviderSubject = &subject
		if existingUser.Avatar == "" && profile.Avatar != "" {
			existingUser.Avatar = profile.Avatar
		}
		existingUser.UpdatedAt = s.now()

		if err := s.userRepo.Update(ctx, existingUser); err != nil {
			logger.ErrorContext(ctx, "Failed to link OAuth account", "user_id", existingUser.ID, "error", err)
			return nil, err
		}

		logger.InfoContext(ctx, "OAuth account linked", "provider", profile.Provider, "user_id", existingUser.ID)
		return s.loginResponse(existingUser)
	}

	now := s.now()
	user = &models.User{
		ID:              uuid.New(),
		Email:           strings.ToLower(profile.Email),
		Username:        generateUniqueUsername(profile.Email),
		Provider:        profile.Provider,
		ProviderSubject: &subject,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		Avatar:          profile.Avatar,
		Role:            "user",
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create OAuth user", "provider", profile.Provider, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "OAuth user registered", "provider", profile.Provider, "user_id", user.ID, "email", user.Email)
	return s.loginResponse(user)
}

// generateUniqueUsername local part of the email plus a random suffix, within the username limit
func generateUniqueUsername(email string) string {
	base := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		base = email[:at]
	}
	suffix := "_" + utils.GenerateRandomString(6)
	if limit := maxUsernameLen - len(suffix); len(base) > limit {
		base = base[:limit]
	}
	if base == "" {
		base = "user"
	}
	return base + suffix
}
