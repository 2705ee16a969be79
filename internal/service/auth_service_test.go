package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smk-nusantara/cms-api/internal/models"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
)

type mockAuthRepo struct {
	user             *models.AdminUser
	findErr          error
	auditLogs        []*models.AuditLog
	lastLoginUpdated bool
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.user, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.user, nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id int64, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func testAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		TokenSecret: "test_secret",
		TokenExpiry: time.Hour,
		Issuer:      "cms-api-test",
	})
}

func activeAdmin(t *testing.T, password string) *models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.AdminUser{
		ID:           1,
		Username:     "admin",
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Email:        "admin@smknusantara.sch.id",
		Role:         models.RoleSuperAdmin,
		Active:       true,
	}
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	repo := &mockAuthRepo{user: activeAdmin(t, "rahasia123")}
	svc := testAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "rahasia123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.Equal(t, models.RoleSuperAdmin, resp.User.Role)
	assert.True(t, repo.lastLoginUpdated)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &mockAuthRepo{user: activeAdmin(t, "rahasia123")}
	svc := testAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "salahpass"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Equal(t, "username atau password salah", appErr.Message)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	repo := &mockAuthRepo{findErr: sql.ErrNoRows}
	svc := testAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "rahasia123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	user := activeAdmin(t, "rahasia123")
	user.Active = false
	svc := testAuthService(&mockAuthRepo{user: user})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "rahasia123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginValidatesPayload(t *testing.T) {
	svc := testAuthService(&mockAuthRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ab", Password: "12345"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRememberMeExtendsExpiry(t *testing.T) {
	repo := &mockAuthRepo{user: activeAdmin(t, "rahasia123")}
	svc := testAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "rahasia123", RememberMe: true})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(24*time.Hour)))
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := testAuthService(&mockAuthRepo{})

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceProfile(t *testing.T) {
	repo := &mockAuthRepo{user: activeAdmin(t, "rahasia123")}
	svc := testAuthService(repo)

	info, err := svc.Profile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Administrator", info.FullName)
}
