package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/user"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "storefront-test",
			Environment: "test",
		},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateToken(42, "jane@example.com", user.RoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, user.RoleCustomer, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())
	token, err := manager.GenerateToken(1, "a@example.com", user.RoleCustomer)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateToken(1, "a@example.com", user.RoleCustomer)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig())
	_, err := manager.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc123"))
}

func TestPasswordRoundTrip(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	hash, err := manager.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, manager.VerifyPassword("secret123", hash))
	assert.Error(t, manager.VerifyPassword("wrong", hash))
}

func TestPasswordValidation(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	_, err := manager.HashPassword("short")
	assert.Error(t, err)

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'a'
	}
	_, err = manager.HashPassword(string(long))
	assert.Error(t, err)
}
