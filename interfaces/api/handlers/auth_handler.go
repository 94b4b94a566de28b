package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/services"
	"tasktrack/pkg/config"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

const oauthStateCookie = "oauth_state"

// OAuthEndpoints provider URLs used after the consent screen
type OAuthEndpoints struct {
	GoogleToken    string
	GoogleUserInfo string
	GitHubToken    string
	GitHubUser     string
	GitHubEmails   string
}

func DefaultOAuthEndpoints() OAuthEndpoints {
	return OAuthEndpoints{
		GoogleToken:    "https://oauth2.googleapis.com/token",
		GoogleUserInfo: "https://www.googleapis.com/oauth2/v2/userinfo",
		GitHubToken:    "https://github.com/login/oauth/access_token",
		GitHubUser:     "https://api.github.com/user",
		GitHubEmails:   "https://api.github.com/user/emails",
	}
}

type AuthHandler struct {
	userService   services.UserService
	googleConfig  config.OAuthProviderConfig
	githubConfig  config.OAuthProviderConfig
	frontendURL   string
	secureCookies bool
	endpoints     OAuthEndpoints
	httpClient    *http.Client
}

func NewAuthHandler(userService services.UserService, cfg *config.Config, endpoints OAuthEndpoints) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		googleConfig:  cfg.Google,
		githubConfig:  cfg.GitHub,
		frontendURL:   strings.TrimRight(cfg.App.FrontendURL, "/"),
		secureCookies: cfg.IsProduction(),
		endpoints:     endpoints,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ============================================================================
// Password auth
// ============================================================================

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Registration attempt", "email", req.Email, "username", req.Username)

	resp, err := h.userService.Register(ctx, &req)
	if err != nil {
		return serviceError(c, "Registration", err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", resp.User.ID, "email", resp.User.Email)
	return utils.CreatedResponse(c, resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Login attempt", "email", req.Email)

	resp, err := h.userService.Login(ctx, &req)
	if err != nil {
		return serviceError(c, "Login", err)
	}

	logger.InfoContext(ctx, "Login successful", "user_id", resp.User.ID)
	return utils.SuccessResponse(c, resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	pair, err := h.userService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return serviceError(c, "Token refresh", err)
	}
	return utils.SuccessResponse(c, pair)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok, err := currentUser(c)
	if !ok {
		return err
	}

	if err := h.userService.Logout(c.UserContext(), user); err != nil {
		return serviceError(c, "Logout", err)
	}

	logger.InfoContext(c.UserContext(), "User logged out", "user_id", user.ID)
	return utils.SuccessResponse(c, dto.MessageResponse{Message: "logged out"})
}

// ============================================================================
// Google OAuth
// ============================================================================

// GoogleLogin redirect to the Google consent screen
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state := h.setStateCookie(c)

	oauthURL, err := h.userService.GetGoogleOAuthURL(state)
	if err != nil {
		return serviceError(c, "Google OAuth", err)
	}

	logger.InfoContext(c.UserContext(), "Redirecting to Google OAuth")
	return c.Redirect(oauthURL, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	return h.callback(c, "google", func(ctx context.Context, code string) (*dto.OAuthProfile, error) {
		token, err := h.exchangeGoogleCode(ctx, code)
		if err != nil {
			return nil, err
		}
		info, err := h.getGoogleUserInfo(ctx, token.AccessToken)
		if err != nil {
			return nil, err
		}
		return &dto.OAuthProfile{
			Provider:  models.ProviderGoogle,
			Subject:   info.ID,
			Email:     info.Email,
			FirstName: info.GivenName,
			LastName:  info.FamilyName,
			Avatar:    info.Picture,
		}, nil
	})
}

func (h *AuthHandler) exchangeGoogleCode(ctx context.Context, code string) (*dto.GoogleTokenResponse, error) {
	data := url.Values{}
	data.Set("client_id", h.googleConfig.ClientID)
	data.Set("client_secret", h.googleConfig.ClientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", h.googleConfig.RedirectURL)

	var tokenResp dto.GoogleTokenResponse
	if err := h.postForm(ctx, h.endpoints.GoogleToken, data, &tokenResp); err != nil {
		return nil, err
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("google token response without access token")
	}
	return &tokenResp, nil
}

func (h *AuthHandler) getGoogleUserInfo(ctx context.Context, accessToken string) (*dto.GoogleUserInfo, error) {
	var userInfo dto.GoogleUserInfo
	if err := h.getJSON(ctx, h.endpoints.GoogleUserInfo, accessToken, &userInfo); err != nil {
		return nil, err
	}
	return &userInfo, nil
}

// ============================================================================
// GitHub OAuth
// ============================================================================

func (h *AuthHandler) GitHubLogin(c *fiber.Ctx) error {
	state := h.setStateCookie(c)

	oauthURL, err := h.userService.GetGitHubOAuthURL(state)
	if err != nil {
		return serviceError(c, "GitHub OAuth", err)
	}

	logger.InfoContext(c.UserContext(), "Redirecting to GitHub OAuth")
	return c.Redirect(oauthURL, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) GitHubCallback(c *fiber.Ctx) error {
	return h.callback(c, "github", func(ctx context.Context, code string) (*dto.OAuthProfile, error) {
		data := url.Values{}
		data.Set("client_id", h.githubConfig.ClientID)
		data.Set("client_secret", h.githubConfig.ClientSecret)
		data.Set("code", code)
		data.Set("redirect_uri", h.githubConfig.RedirectURL)

		var tokenResp dto.GitHubTokenResponse
		if err := h.postForm(ctx, h.endpoints.GitHubToken, data, &tokenResp); err != nil {
			return nil, err
		}
		if tokenResp.Error != "" || tokenResp.AccessToken == "" {
			return nil, fmt.Errorf("github token exchange: %s", tokenResp.Error)
		}

		var info dto.GitHubUserInfo
		if err := h.getJSON(ctx, h.endpoints.GitHubUser, tokenResp.AccessToken, &info); err != nil {
			return nil, err
		}

		// the profile e-mail is empty when the user keeps it private
		email := info.Email
		if email == "" {
			var emails []dto.GitHubEmail
			if err := h.getJSON(ctx, h.endpoints.GitHubEmails, tokenResp.AccessToken, &emails); err != nil {
				return nil, err
			}
			for _, e := range emails {
				if e.Primary && e.Verified {
					email = e.Email
					break
				}
			}
		}

		firstName, lastName := splitName(info.Name)
		if firstName == "" {
			firstName = info.Login
		}
		return &dto.OAuthProfile{
			Provider:  models.ProviderGitHub,
			Subject:   strconv.FormatInt(info.ID, 10),
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			Avatar:    info.AvatarURL,
		}, nil
	})
}

// ============================================================================
// Shared callback flow
// ============================================================================

func (h *AuthHandler) setStateCookie(c *fiber.Ctx) string {
	state := utils.GenerateOAuthState()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: "Lax",
		MaxAge:   300,
	})
	return state
}

func (h *AuthHandler) loginError(c *fiber.Ctx, reason string) error {
	return c.Redirect(h.frontendURL+"/login?error="+url.QueryEscape(reason), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) callback(c *fiber.Ctx, provider string, resolve func(ctx context.Context, code string) (*dto.OAuthProfile, error)) error {
	ctx := c.UserContext()

	if errorParam := c.Query("error"); errorParam != "" {
		logger.WarnContext(ctx, "OAuth provider error", "provider", provider, "error", errorParam)
		return h.loginError(c, errorParam)
	}

	code := c.Query("code")
	if code == "" {
		logger.WarnContext(ctx, "No code in OAuth callback", "provider", provider)
		return h.loginError(c, "no_code")
	}

	savedState := c.Cookies(oauthStateCookie)
	if savedState == "" || savedState != c.Query("state") {
		logger.WarnContext(ctx, "Invalid OAuth state", "provider", provider)
		return h.loginError(c, "invalid_state")
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
	})

	profile, err := resolve(ctx, code)
	if err != nil {
		logger.ErrorContext(ctx, "OAuth code exchange failed", "provider", provider, "error", err)
		return h.loginError(c, "token_exchange_failed")
	}

	resp, err := h.userService.LoginWithOAuth(ctx, profile)
	if err != nil {
		logger.WarnContext(ctx, "OAuth login failed", "provider", provider, "error", err)
		return h.loginError(c, err.Error())
	}

	logger.InfoContext(ctx, "OAuth login successful", "provider", provider, "user_id", resp.User.ID)

	q := url.Values{}
	q.Set("access_token", resp.AccessToken)
	q.Set("refresh_token", resp.RefreshToken)
	q.Set("expires_at", dto.FormatTime(resp.ExpiresAt))
	return c.Redirect(h.frontendURL+"/auth/callback?"+q.Encode(), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) postForm(ctx context.Context, endpoint string, data url.Values, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return h.do(req, target)
}

func (h *AuthHandler) getJSON(ctx context.Context, endpoint, accessToken string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	return h.do(req, target)
}

func (h *AuthHandler) do(req *http.Request, target interface{}) error {
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Host, resp.StatusCode)
	}
	return json.Unmarshal(body, target)
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
