//go:build e2e

package helper

import (
	"testing"
	"time"

	"roombook/internal/pkg/config"
	"roombook/internal/pkg/jwt"
	"roombook/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type JWTTestHelper struct {
	pool *pgxpool.Pool
	cfg  config.JWTConfig
}

func NewJWTTestHelper(pool *pgxpool.Pool, cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{pool: pool, cfg: cfg}
}

// CreateAuthenticatedUser inserts a user row and returns its id with a
// valid bearer token for it.
func (h *JWTTestHelper) CreateAuthenticatedUser(t *testing.T, email, displayName string) (uuid.UUID, string) {
	t.Helper()
	userID := dbtest.CreateTestUser(t, h.pool, email, displayName)
	return userID, h.GenerateToken(t, userID, displayName)
}

func (h *JWTTestHelper) GenerateToken(t *testing.T, userID uuid.UUID, displayName string) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, err := service.GenerateToken(userID, displayName)
	require.NoError(t, err)
	return token
}

func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, displayName string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(userID, displayName)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
