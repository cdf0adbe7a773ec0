package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dgrijalva/jwt-go"
	authdomain "github.com/smallbiznis/whateat/internal/auth/domain"
	"github.com/smallbiznis/whateat/internal/auth/repository"
	"github.com/smallbiznis/whateat/internal/config"
	"github.com/smallbiznis/whateat/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestService(t *testing.T, secret string) (authdomain.Service, authdomain.Repository) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := conn.AutoMigrate(&authdomain.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := repository.New(conn)
	return New(zap.NewNop(), config.Config{AuthJWTSecret: secret}, repo), repo
}

func sign(t *testing.T, method jwt.SigningMethod, key any, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.StandardClaims{
		Subject:   subject,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString(key)
	require.NoError(t, err)
	return raw
}

func TestAuthenticateValidToken(t *testing.T) {
	svc, repo := newTestService(t, testSecret)
	ctx := context.Background()

	nickname := "foodie"
	user := &authdomain.User{ID: snowflake.ID(1001), Nickname: &nickname}
	require.NoError(t, repo.Create(ctx, user))

	got, err := svc.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(testSecret), "1001"))
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(1001), got.ID)
	assert.Equal(t, "foodie", got.DisplayName())
}

func TestAuthenticateRejects(t *testing.T) {
	svc, repo := newTestService(t, testSecret)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &authdomain.User{ID: snowflake.ID(1001)}))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "1001",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	})
	expiredRaw, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.StandardClaims{Subject: "1001"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "  ", authdomain.ErrMissingToken},
		{"garbage", "not-a-jwt", authdomain.ErrInvalidToken},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), "1001"), authdomain.ErrInvalidToken},
		{"alg none", unsigned, authdomain.ErrInvalidToken},
		{"expired", expiredRaw, authdomain.ErrInvalidToken},
		{"non numeric subject", sign(t, jwt.SigningMethodHS256, []byte(testSecret), "alice"), authdomain.ErrInvalidToken},
		{"unknown user", sign(t, jwt.SigningMethodHS256, []byte(testSecret), "2002"), authdomain.ErrUserNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tc.token)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthenticateWithoutSecret(t *testing.T) {
	svc, repo := newTestService(t, "")
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &authdomain.User{ID: snowflake.ID(1001)}))

	_, err := svc.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(""), "1001"))
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
}
