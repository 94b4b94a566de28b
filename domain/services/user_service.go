package services

import (
	"context"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/pkg/utils"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Refresh exchanges a refresh token for a new pair and revokes the old one
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	// Logout revokes the access token jti until it would have expired
	Logout(ctx context.Context, user *utils.UserContext) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	// ValidateToken parses an access token and checks revocation
	ValidateToken(ctx context.Context, token string) (*utils.UserContext, error)

	// OAuth
	GetGoogleOAuthURL(state string) (string, error)
	GetGitHubOAuthURL(state string) (string, error)
	LoginWithOAuth(ctx context.Context, profile *dto.OAuthProfile) (*dto.LoginResponse, error)
}
