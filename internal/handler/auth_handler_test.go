package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/smk-nusantara/cms-api/internal/middleware"
	"github.com/smk-nusantara/cms-api/internal/models"
	"github.com/smk-nusantara/cms-api/internal/service"
)

func errNotFoundRow() error { return sql.ErrNoRows }

type fakeUserRepo struct {
	user      *models.AdminUser
	findErr   error
	auditLogs []*models.AuditLog
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.user == nil || f.user.Username != username {
		return nil, errNotFoundRow()
	}
	return f.user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.AdminUser, error) {
	if f.user == nil || f.user.ID != id {
		return nil, errNotFoundRow()
	}
	return f.user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(context.Context, int64, time.Time) error { return nil }

func (f *fakeUserRepo) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	f.auditLogs = append(f.auditLogs, log)
	return nil
}

func newAuthHandlerForTest(t *testing.T, repo *fakeUserRepo) *AuthHandler {
	t.Helper()
	svc := service.NewAuthService(repo, nil, zap.NewNop(), service.AuthConfig{
		TokenSecret: "test_secret",
		TokenExpiry: time.Hour,
	})
	return NewAuthHandler(svc)
}

func adminFixture(t *testing.T) *models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.AdminUser{
		ID:           1,
		Username:     "admin",
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         models.RoleSuperAdmin,
		Active:       true,
	}
}

func performLogin(t *testing.T, h *AuthHandler, payload string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)
	return rec
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	repo := &fakeUserRepo{user: adminFixture(t)}
	h := newAuthHandlerForTest(t, repo)

	rec := performLogin(t, h, `{"username":"admin","password":"rahasia123"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, "admin", envelope.Data.User.Username)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	repo := &fakeUserRepo{user: adminFixture(t)}
	h := newAuthHandlerForTest(t, repo)

	rec := performLogin(t, h, `{"username":"admin","password":"salah12345"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "username atau password salah")
}

func TestAuthHandlerLoginBadPayload(t *testing.T) {
	h := newAuthHandlerForTest(t, &fakeUserRepo{})

	rec := performLogin(t, h, `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "payload login tidak valid")
}

func TestAuthHandlerProfile(t *testing.T) {
	repo := &fakeUserRepo{user: adminFixture(t)}
	h := newAuthHandlerForTest(t, repo)

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/profile", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 1, Username: "admin", Role: models.RoleSuperAdmin})

	h.Profile(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"admin"`)
}

func TestAuthHandlerProfileWithoutClaims(t *testing.T) {
	h := newAuthHandlerForTest(t, &fakeUserRepo{})

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/profile", nil)

	h.Profile(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
