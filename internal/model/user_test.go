package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_ChangedPasswordAfter(t *testing.T) {
	changed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		passwordChangedAt *time.Time
		issuedAt          time.Time
		want              bool
	}{
		{
			name:              "never changed",
			passwordChangedAt: nil,
			issuedAt:          changed.Add(-time.Hour),
			want:              false,
		},
		{
			name:              "token issued before change is stale",
			passwordChangedAt: &changed,
			issuedAt:          changed.Add(-time.Hour),
			want:              true,
		},
		{
			name:              "token issued after change is fresh",
			passwordChangedAt: &changed,
			issuedAt:          changed.Add(time.Hour),
			want:              false,
		},
		{
			name:              "same second is not stale (strictly-greater comparison)",
			passwordChangedAt: &changed,
			issuedAt:          changed,
			want:              false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{PasswordChangedAt: tt.passwordChangedAt}
			assert.Equal(t, tt.want, u.ChangedPasswordAfter(tt.issuedAt))
		})
	}
}
