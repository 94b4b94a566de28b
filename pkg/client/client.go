package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"tasktrack/pkg/logger"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 30 * time.Second
	refreshPath    = "/auth/refresh"
)

// Tokens the session credentials held by the client
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Client typed SDK over the TaskTrack REST API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.RWMutex
	tokens Tokens

	// serialises refreshes so concurrent 401s trigger one refresh
	refreshMu sync.Mutex

	events *eventBus

	Auth        *AuthAPI
	Users       *UsersAPI
	Boards      *BoardsAPI
	Tasks       *TasksAPI
	Comments    *CommentsAPI
	Attachments *AttachmentsAPI
	Priorities  *PrioritiesAPI
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTokens starts the client with a stored session
func WithTokens(t Tokens) Option {
	return func(c *Client) {
		c.tokens = t
	}
}

// New baseURL is the server root, e.g. http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		events:     newEventBus(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthAPI{c: c}
	c.Users = &UsersAPI{c: c}
	c.Boards = &BoardsAPI{c: c}
	c.Tasks = &TasksAPI{c: c}
	c.Comments = &CommentsAPI{c: c}
	c.Attachments = &AttachmentsAPI{c: c}
	c.Priorities = &PrioritiesAPI{c: c}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetTokens replaces the session without emitting an auth event
func (c *Client) SetTokens(t Tokens) {
	c.mu.Lock()
	c.tokens = t
	c.mu.Unlock()
}

func (c *Client) Tokens() Tokens {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens.AccessToken
}

// ========== Envelope ==========

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *PageMeta       `json:"meta,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details,omitempty"`
	} `json:"error,omitempty"`
}

// PageMeta pagination block of list endpoints
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// request one API call; body is JSON encoded unless it is a *multipartBody
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
	meta   *PageMeta
	// public calls never carry the bearer token and are never retried after a refresh
	public bool
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, &request{method: http.MethodGet, path: path, query: query, out: out})
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, &request{method: method, path: path, body: body, out: out})
}

func (c *Client) do(ctx context.Context, r *request) error {
	stale := c.accessToken()
	err := c.roundTrip(ctx, r, stale)
	if err == nil || r.public || !isStatus(err, http.StatusUnauthorized) {
		return err
	}

	token, refreshErr := c.refreshAfter(ctx, stale)
	if refreshErr != nil {
		logger.DebugContext(ctx, "Token refresh failed", "error", refreshErr)
		return err
	}
	return c.roundTrip(ctx, r, token)
}

func (c *Client) roundTrip(ctx context.Context, r *request, token string) error {
	endpoint := c.baseURL + apiPrefix + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch b := r.body.(type) {
	case nil:
	case *multipartBody:
		body, contentType = bytes.NewReader(b.data), b.contentType
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" && !r.public {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.DebugContext(ctx, "API request", "method", r.method, "path", r.path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if r.meta != nil && env.Meta != nil {
		*r.meta = *env.Meta
	}
	if r.out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, r.out); err != nil {
		return fmt.Errorf("failed to decode %s %s data: %w", r.method, r.path, err)
	}
	return nil
}

// refreshAfter exchanges the refresh token unless another caller already replaced stale
func (c *Client) refreshAfter(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current := c.Tokens()
	if current.AccessToken != stale && current.AccessToken != "" {
		return current.AccessToken, nil
	}
	if current.RefreshToken == "" {
		return "", ErrUnauthorized
	}

	pair, err := c.Auth.refresh(ctx, current.RefreshToken)
	if err != nil {
		return "", err
	}
	return pair.AccessToken, nil
}
