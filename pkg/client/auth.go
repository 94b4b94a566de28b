package client

import (
	"context"
	"errors"
	"net/http"

	"tasktrack/domain/dto"
)

// OAuth providers accepted by AuthAPI.OAuthURL
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

type AuthAPI struct {
	c *Client
}

// Subscribe listens to SIGNED_IN, SIGNED_OUT and TOKEN_REFRESHED; call the returned func to stop
func (a *AuthAPI) Subscribe(fn AuthListener) func() {
	return a.c.events.subscribe(fn)
}

func (a *AuthAPI) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := a.c.do(ctx, &request{
		method: http.MethodPost, path: "/auth/register", body: req, out: &resp, public: true,
	}); err != nil {
		return nil, err
	}
	a.signIn(resp.TokenPair)
	return &resp, nil
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := a.c.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   dto.LoginRequest{Email: email, Password: password},
		out:    &resp,
		public: true,
	}); err != nil {
		return nil, err
	}
	a.signIn(resp.TokenPair)
	return &resp, nil
}

// OAuthURL browser entry point of the provider flow; the server redirects back
// to the frontend with the token pair, which CompleteOAuth then installs
func (a *AuthAPI) OAuthURL(provider string) string {
	return a.c.baseURL + apiPrefix + "/auth/" + provider
}

// CompleteOAuth installs a token pair obtained from the OAuth callback
func (a *AuthAPI) CompleteOAuth(pair dto.TokenPair) {
	a.signIn(pair)
}

// Refresh exchanges the stored refresh token for a new pair
func (a *AuthAPI) Refresh(ctx context.Context) (*dto.TokenPair, error) {
	refresh := a.c.Tokens().RefreshToken
	if refresh == "" {
		return nil, ErrUnauthorized
	}
	return a.refresh(ctx, refresh)
}

func (a *AuthAPI) refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	var pair dto.TokenPair
	if err := a.c.do(ctx, &request{
		method: http.MethodPost,
		path:   refreshPath,
		body:   dto.RefreshTokenRequest{RefreshToken: refreshToken},
		out:    &pair,
		public: true,
	}); err != nil {
		return nil, err
	}

	tokens := tokensFrom(pair)
	a.c.SetTokens(tokens)
	a.c.events.emit(TokenRefreshed, tokens)
	return &pair, nil
}

// Logout revokes the session server side; local tokens are dropped even when that fails
func (a *AuthAPI) Logout(ctx context.Context) error {
	var err error
	if a.c.accessToken() != "" {
		err = a.c.send(ctx, http.MethodPost, "/auth/logout", nil, nil)
		if errors.Is(err, ErrUnauthorized) {
			err = nil
		}
	}

	a.c.SetTokens(Tokens{})
	a.c.events.emit(SignedOut, Tokens{})
	return err
}

// Me profile of the signed in user
func (a *AuthAPI) Me(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := a.c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AuthAPI) signIn(pair dto.TokenPair) {
	tokens := tokensFrom(pair)
	a.c.SetTokens(tokens)
	a.c.events.emit(SignedIn, tokens)
}

func tokensFrom(pair dto.TokenPair) Tokens {
	return Tokens{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}
