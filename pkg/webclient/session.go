package webclient

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUser is the identity decoded from a bearer token.
type TokenUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

type sessionState struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

// Session holds the authenticated state in two scopes: a persistent one
// backed by a file under the state dir, and an ephemeral in-memory one.
// "Remember me" picks the persistent scope; otherwise the state dies with
// the process.
type Session struct {
	mu        sync.Mutex
	statePath string
	ephemeral *sessionState
}

// OpenSession loads any previously persisted state from stateDir. An empty
// stateDir yields a purely in-memory session.
func OpenSession(stateDir string) (*Session, error) {
	s := &Session{}
	if stateDir == "" {
		return s, nil
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	s.statePath = filepath.Join(stateDir, "session.json")
	return s, nil
}

// Close discards the ephemeral scope. Persistent state stays on disk.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ephemeral = nil
}

// Save stores the token and the raw user object. remember selects the
// persistent scope; either way the other scope is cleared so the two never
// disagree.
func (s *Session) Save(token string, user json.RawMessage, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := sessionState{Token: token, User: user}
	if remember && s.statePath != "" {
		s.ephemeral = nil
		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		if err := os.WriteFile(s.statePath, data, 0o600); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
		return nil
	}

	s.ephemeral = &state
	if s.statePath != "" {
		_ = os.Remove(s.statePath)
	}
	return nil
}

// Token returns the stored token, or "" when not logged in.
func (s *Session) Token() string {
	state := s.read()
	if state == nil {
		return ""
	}
	return state.Token
}

// User returns the stored raw user object, or nil.
func (s *Session) User() json.RawMessage {
	state := s.read()
	if state == nil {
		return nil
	}
	return state.User
}

// Clear wipes both scopes.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ephemeral = nil
	if s.statePath != "" {
		_ = os.Remove(s.statePath)
	}
}

func (s *Session) read() *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ephemeral != nil {
		return s.ephemeral
	}
	if s.statePath == "" {
		return nil
	}
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		return nil
	}
	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt state counts as logged out.
		_ = os.Remove(s.statePath)
		return nil
	}
	return &state
}

// IsTokenValid reports whether the token carries an exp claim in the
// future. The signature is not verified here; the backend does that on
// every request. Any decode failure means invalid.
func IsTokenValid(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

// UserFromToken decodes the identity claims. The identifier historically
// appeared under either "id" or "user_id"; both are accepted. Returns nil
// when no identifier is present or the token does not decode.
func UserFromToken(token string) *TokenUser {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	id, ok := numericClaim(claims, "id")
	if !ok {
		id, ok = numericClaim(claims, "user_id")
	}
	if !ok {
		return nil
	}

	return &TokenUser{
		ID:       id,
		Username: stringClaim(claims, "username"),
		Role:     stringClaim(claims, "role"),
		Email:    stringClaim(claims, "email"),
	}
}

func numericClaim(claims jwt.MapClaims, key string) (int64, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
