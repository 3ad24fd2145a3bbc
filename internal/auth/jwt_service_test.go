package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"workboard/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	user := &model.User{
		ID:            3,
		Username:      "maria",
		Role:          model.RoleClient,
		Name:          "Maria K",
		VisibleStages: []uint{2, 4},
	}

	token, err := svc.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, model.RoleClient, claims.Role)
	assert.Equal(t, "Maria K", claims.Name)
	assert.Equal(t, []uint{2, 4}, claims.VisibleStages)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := NewJWTService("test-secret")
	user := &model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}

	first, err := svc.GenerateToken(user)
	assert.NoError(t, err)
	second, err := svc.GenerateToken(user)
	assert.NoError(t, err)

	firstClaims, err := svc.ValidateToken(first)
	assert.NoError(t, err)
	secondClaims, err := svc.ValidateToken(second)
	assert.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("right-secret").GenerateToken(&model.User{ID: 1, Username: "admin", Role: model.RoleAdmin})
	assert.NoError(t, err)

	_, err = NewJWTService("wrong-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	claims := &Claims{
		UserID:   1,
		Username: "admin",
		Role:     model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired-token",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	assert.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsUnsignedAlgorithm(t *testing.T) {
	claims := &Claims{UserID: 1, Username: "admin", Role: model.RoleAdmin}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
}
