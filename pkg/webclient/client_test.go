package webclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smk-nusantara/cms-api/pkg/config"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	require.NoError(t, err)
	return token
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *Session, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session, err := OpenSession(t.TempDir())
	require.NoError(t, err)

	client := NewClient(config.ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, session, nil)
	return client, session, srv
}

func envelopeJSON(success bool, message string, data interface{}) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"success": success,
		"message": message,
		"data":    data,
	})
	return body
}

func TestIsTokenValid(t *testing.T) {
	valid := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	expired := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	noExp := signedToken(t, jwt.MapClaims{"id": 1})

	assert.True(t, IsTokenValid(valid))
	assert.False(t, IsTokenValid(expired))
	assert.False(t, IsTokenValid(noExp))
	assert.False(t, IsTokenValid("bukan-jwt"))
	assert.False(t, IsTokenValid(""))
}

func TestUserFromToken(t *testing.T) {
	withID := signedToken(t, jwt.MapClaims{"id": float64(7), "username": "admin", "role": "superadmin"})
	user := UserFromToken(withID)
	require.NotNil(t, user)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "superadmin", user.Role)

	withUserID := signedToken(t, jwt.MapClaims{"user_id": float64(12)})
	user = UserFromToken(withUserID)
	require.NotNil(t, user)
	assert.Equal(t, int64(12), user.ID)

	noIdentifier := signedToken(t, jwt.MapClaims{"username": "admin"})
	assert.Nil(t, UserFromToken(noIdentifier))
	assert.Nil(t, UserFromToken("rusak"))
}

func TestBearerHeaderOnlyWithToken(t *testing.T) {
	var gotAuth atomic.Value
	client, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(envelopeJSON(true, "ok", nil)) //nolint:errcheck
	}))

	_, err := client.GetJSON(context.Background(), "/api/public/alumni")
	require.NoError(t, err)
	assert.Empty(t, gotAuth.Load())

	require.NoError(t, session.Save("token-abc", nil, false))
	_, err = client.GetJSON(context.Background(), "/api/public/alumni")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth.Load())
}

func TestUnauthorizedClearsSessionOnProtectedPath(t *testing.T) {
	client, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(envelopeJSON(false, "token tidak valid", nil)) //nolint:errcheck
	}))

	hookFired := false
	client.OnUnauthorized(func() { hookFired = true })
	require.NoError(t, session.Save("stale-token", nil, false))

	_, err := client.GetJSON(context.Background(), "/api/admin/articles")
	require.Error(t, err)
	assert.Empty(t, session.Token())
	assert.True(t, hookFired)
}

func TestUnauthorizedOnPublicPathKeepsSession(t *testing.T) {
	client, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(envelopeJSON(false, "token tidak valid", nil)) //nolint:errcheck
	}))

	hookFired := false
	client.OnUnauthorized(func() { hookFired = true })
	require.NoError(t, session.Save("some-token", nil, false))

	_, err := client.GetJSON(context.Background(), "/api/public/articles")
	require.Error(t, err)
	assert.Equal(t, "some-token", session.Token())
	assert.False(t, hookFired)
}

func TestLoginClientValidationBlocksRequest(t *testing.T) {
	var requests int32
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))

	assert.False(t, client.Login(context.Background(), "ab", "password123", false))
	assert.False(t, client.Login(context.Background(), "admin", "12345", false))
	assert.Zero(t, atomic.LoadInt32(&requests))

	err := ValidateLoginInput("ab", "password123")
	require.Error(t, err)
	assert.Equal(t, "Username minimal 3 karakter", err.Error())

	err = ValidateLoginInput("admin", "12345")
	require.Error(t, err)
	assert.Equal(t, "Password minimal 6 karakter", err.Error())
}

func TestLoginStoresSessionByScope(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"id": float64(1), "exp": time.Now().Add(time.Hour).Unix()})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(envelopeJSON(true, "login berhasil", map[string]interface{}{ //nolint:errcheck
			"token": token,
			"user":  map[string]interface{}{"id": 1, "username": "admin"},
		}))
	})

	t.Run("session scope only without remember", func(t *testing.T) {
		srv := httptest.NewServer(handler)
		defer srv.Close()

		stateDir := t.TempDir()
		session, err := OpenSession(stateDir)
		require.NoError(t, err)
		client := NewClient(config.ClientConfig{BaseURL: srv.URL}, session, nil)

		assert.True(t, client.Login(context.Background(), "admin", "password123", false))
		assert.Equal(t, token, session.Token())

		// A fresh session over the same state dir sees nothing.
		reopened, err := OpenSession(stateDir)
		require.NoError(t, err)
		assert.Empty(t, reopened.Token())
	})

	t.Run("persistent scope with remember", func(t *testing.T) {
		srv := httptest.NewServer(handler)
		defer srv.Close()

		stateDir := t.TempDir()
		session, err := OpenSession(stateDir)
		require.NoError(t, err)
		client := NewClient(config.ClientConfig{BaseURL: srv.URL}, session, nil)

		assert.True(t, client.Login(context.Background(), "admin", "password123", true))

		reopened, err := OpenSession(stateDir)
		require.NoError(t, err)
		assert.Equal(t, token, reopened.Token())
	})
}

func TestLogoutClearsBothScopes(t *testing.T) {
	stateDir := t.TempDir()
	session, err := OpenSession(stateDir)
	require.NoError(t, err)

	require.NoError(t, session.Save("persisted", nil, true))
	require.NoError(t, session.Save("ephemeral", nil, false))

	client := NewClient(config.ClientConfig{BaseURL: "http://localhost"}, session, nil)
	client.Logout()

	assert.Empty(t, session.Token())
	reopened, err := OpenSession(stateDir)
	require.NoError(t, err)
	assert.Empty(t, reopened.Token())
}

func TestEnsureAuthenticated(t *testing.T) {
	session, err := OpenSession("")
	require.NoError(t, err)
	client := NewClient(config.ClientConfig{BaseURL: "http://localhost"}, session, nil)

	assert.False(t, client.EnsureAuthenticated())

	expired := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, session.Save(expired, nil, false))
	assert.False(t, client.EnsureAuthenticated())

	valid := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, session.Save(valid, nil, false))
	assert.True(t, client.EnsureAuthenticated())
}

func TestCorruptSessionFileTreatedAsLoggedOut(t *testing.T) {
	stateDir := t.TempDir()
	session, err := OpenSession(stateDir)
	require.NoError(t, err)
	require.NoError(t, session.Save("tok", nil, true))

	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "session.json"), []byte("{rusak"), 0o600))

	reopened, err := OpenSession(stateDir)
	require.NoError(t, err)
	assert.Empty(t, reopened.Token())
}
