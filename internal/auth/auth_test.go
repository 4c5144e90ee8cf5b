package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "social-blog")
	want := Identity{UserID: "user-1", Email: "alice@example.com"}

	token, err := v.Issue(want, time.Hour)
	require.NoError(t, err)

	got, err := v.FromHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = v.FromHeader("bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, want, got, "scheme is case insensitive")
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret", "")

	expired, err := v.Issue(Identity{UserID: "u"}, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewVerifier("other", "").Issue(Identity{UserID: "u"}, time.Hour)
	require.NoError(t, err)

	noSubject, err := v.Issue(Identity{Email: "a@example.com"}, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "empty header", header: "", wantErr: ErrMissingToken},
		{name: "basic scheme", header: "Basic abc", wantErr: ErrMissingToken},
		{name: "empty token", header: "Bearer ", wantErr: ErrMissingToken},
		{name: "garbage", header: "Bearer not.a.token", wantErr: ErrInvalidToken},
		{name: "expired", header: "Bearer " + expired, wantErr: ErrInvalidToken},
		{name: "wrong key", header: "Bearer " + otherKey, wantErr: ErrInvalidToken},
		{name: "no subject", header: "Bearer " + noSubject, wantErr: ErrInvalidToken},
		{name: "alg none", header: "Bearer " + unsigned, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.FromHeader(tt.header)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, id.Anonymous())
		})
	}
}

func TestVerifier_Issuer(t *testing.T) {
	token, err := NewVerifier("secret", "elsewhere").Issue(Identity{UserID: "u"}, time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("secret", "social-blog").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	assert.True(t, FromContext(ctx).Anonymous())

	ctx = WithIdentity(ctx, Identity{UserID: "u1", Email: "u1@example.com"})
	assert.Equal(t, "u1", FromContext(ctx).UserID)
	assert.False(t, FromContext(ctx).Anonymous())
}
