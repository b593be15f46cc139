package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken("64f1c0ffee0000000000aaaa")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000aaaa", claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateToken("64f1c0ffee0000000000aaaa")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Tampered(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateToken("64f1c0ffee0000000000aaaa")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret")

	claims := &Claims{
		UserID: "64f1c0ffee0000000000aaaa",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
