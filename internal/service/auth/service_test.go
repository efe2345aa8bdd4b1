package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lomba-poster/internal/config"
	"lomba-poster/internal/domain"
)

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestService(t *testing.T) *service {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		AdminPasswordHash: hash(t, "admin-pass"),
		JudgePasswordHash: hash(t, "judge-pass"),
	}
	return NewService(cfg).(*service)
}

func TestLogin_IssuesToken(t *testing.T) {
	svc := newTestService(t)

	tok, err := svc.Login(context.Background(), domain.LoginInput{Role: domain.RoleJudge, Name: " Bu Sari ", Password: "judge-pass"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleJudge, tok.Role)
	assert.Equal(t, "Bu Sari", tok.Name)
	assert.Equal(t, int64(3600), tok.ExpiresIn)

	claims, err := svc.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleJudge, claims.Role)
	assert.Equal(t, "Bu Sari", claims.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), domain.LoginInput{Role: domain.RoleAdmin, Name: "admin", Password: "judge-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledRole(t *testing.T) {
	svc := newTestService(t)
	svc.hashes[domain.RoleJudge] = ""

	_, err := svc.Login(context.Background(), domain.LoginInput{Role: domain.RoleJudge, Name: "x", Password: "judge-pass"})
	assert.ErrorIs(t, err, ErrRoleDisabled)
}

func TestLogin_InvalidInput(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), domain.LoginInput{Role: "student", Name: "x", Password: "p"})
	assert.Error(t, err)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := newTestService(t)
	tok, err := svc.Login(context.Background(), domain.LoginInput{Role: domain.RoleAdmin, Name: "admin", Password: "admin-pass"})
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()
		_, err := svc.ValidateToken(tok.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := newTestService(t)
		other.secret = []byte("different")
		_, err := other.ValidateToken(tok.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		claims := &Claims{
			Role: "student",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)
		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
