package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smk-nusantara/cms-api/pkg/config"
)

// Paths that may answer 401 without meaning the session died. A 401 on any
// other path clears the stored credentials.
var publicPathFragments = []string{
	"/public/",
	"/api/calendar/public",
	"/api/articles/public",
	"/api/auth/login",
}

// Envelope mirrors the API's JSON response shape.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination mirrors the list envelope's paging block.
type Pagination struct {
	Page         int  `json:"page"`
	Limit        int  `json:"limit"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

// APIError is a non-success response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("permintaan gagal dengan status %d", e.Status)
}

// Client talks to the CMS API. All requests go through a single pipeline
// that injects the bearer token when a session holds one and watches for
// 401 on protected paths.
type Client struct {
	baseURL        string
	http           *http.Client
	session        *Session
	logger         *zap.Logger
	debug          bool
	onUnauthorized func()
}

// NewClient builds a Client around an open session.
func NewClient(cfg config.ClientConfig, session *Session, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session,
		logger:  logger,
		debug:   cfg.Debug,
	}
}

// OnUnauthorized registers the hook invoked after a protected path answers
// 401 and the session has been cleared. UIs hang their login redirect here.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Session exposes the backing session store.
func (c *Client) Session() *Session {
	return c.session
}

// ValidateLoginInput applies the form-level checks that run before any
// request is sent.
func ValidateLoginInput(username, password string) error {
	if len(username) < 3 {
		return &APIError{Status: http.StatusBadRequest, Message: "Username minimal 3 karakter"}
	}
	if len(password) < 6 {
		return &APIError{Status: http.StatusBadRequest, Message: "Password minimal 6 karakter"}
	}
	return nil
}

type loginData struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// Login authenticates and stores the session. remember selects the
// persistent scope. The failure reason is logged, not returned; callers
// branch on the boolean.
func (c *Client) Login(ctx context.Context, username, password string, remember bool) bool {
	if err := ValidateLoginInput(username, password); err != nil {
		c.logger.Warn("login ditolak validasi", zap.Error(err))
		return false
	}

	payload := map[string]interface{}{
		"username":    username,
		"password":    password,
		"remember_me": remember,
	}
	env, err := c.PostJSON(ctx, "/api/auth/login", payload)
	if err != nil {
		c.logger.Warn("login gagal", zap.Error(err))
		return false
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		c.logger.Warn("respons login tidak lengkap", zap.Error(err))
		return false
	}
	if err := c.session.Save(data.Token, data.User, remember); err != nil {
		c.logger.Warn("gagal menyimpan sesi", zap.Error(err))
		return false
	}
	return c.EnsureAuthenticated()
}

// EnsureAuthenticated re-reads the session store and confirms a valid
// token is really there. Run after Login so callers proceed only once the
// write is observable, instead of sleeping and hoping.
func (c *Client) EnsureAuthenticated() bool {
	token := c.session.Token()
	return token != "" && IsTokenValid(token)
}

// Logout clears both session scopes.
func (c *Client) Logout() {
	c.session.Clear()
}

// GetJSON issues a GET and returns the decoded envelope.
func (c *Client) GetJSON(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data))
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(data))
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, "", nil)
}

// PostMultipart issues a POST with a prepared multipart body.
func (c *Client) PostMultipart(ctx context.Context, path, contentType string, body io.Reader) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, contentType, body)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if c.debug {
		c.logger.Debug("http request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
	}

	if resp.StatusCode == http.StatusUnauthorized && !isPublicPath(path) {
		c.session.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

func isPublicPath(path string) bool {
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	for _, fragment := range publicPathFragments {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}
