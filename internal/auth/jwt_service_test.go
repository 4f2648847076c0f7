package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.Issue("6a0f2ab8-9f4f-4cc6-8a6d-62a6b7d8a001")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "6a0f2ab8-9f4f-4cc6-8a6d-62a6b7d8a001", claims.Subject)
	assert.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)
}

func TestJWTService_Verify_Errors(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	tests := []struct {
		name        string
		token       func() string
		expectedErr error
	}{
		{
			name:        "malformed token",
			token:       func() string { return "not-a-jwt" },
			expectedErr: ErrTokenMalformed,
		},
		{
			name: "expired token",
			token: func() string {
				expired := NewJWTService("test-secret", -time.Hour)
				token, _ := expired.Issue("user-id")
				return token
			},
			expectedErr: ErrTokenExpired,
		},
		{
			name: "wrong secret",
			token: func() string {
				other := NewJWTService("other-secret", time.Hour)
				token, _ := other.Issue("user-id")
				return token
			},
			expectedErr: ErrTokenSignatureInvalid,
		},
		{
			name: "non-HMAC signing algorithm",
			token: func() string {
				unsigned := jwt.NewWithClaims(jwt.SigningMethodNone,
					jwt.RegisteredClaims{Subject: "user-id"})
				token, _ := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
				return token
			},
			expectedErr: ErrTokenSignatureInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token())
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
