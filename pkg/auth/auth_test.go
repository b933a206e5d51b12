package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/flowershop/pkg/auth"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newCodec(t *testing.T, c *clock) *auth.Codec {
	t.Helper()
	codec, err := auth.NewCodec(auth.TokenConfig{
		Secret:          "test-secret",
		AccessLifetime:  15 * time.Minute,
		RefreshLifetime: 1440 * time.Minute,
		Now:             c.now,
	})
	require.NoError(t, err)
	return codec
}

func TestTokenRoundTrip(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)

	token, err := codec.Issue("user-1", auth.AccessToken)
	require.NoError(t, err)

	id, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestAccessTokenExpires(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)

	token, err := codec.Issue("user-1", auth.AccessToken)
	require.NoError(t, err)

	c.t = c.t.Add(16 * time.Minute)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestRefreshTokenOutlivesAccess(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)

	pair, err := codec.IssuePair("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	c.t = c.t.Add(2 * time.Hour)
	_, err = codec.Verify(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)

	id, err := codec.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	c.t = c.t.Add(23 * time.Hour)
	_, err = codec.Verify(pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)

	other, err := auth.NewCodec(auth.TokenConfig{Secret: "other-secret", Now: c.now})
	require.NoError(t, err)
	token, err := other.Issue("user-1", auth.AccessToken)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, auth.ErrMalformedToken)
}

func TestVerifyRejectsGarbageAndOtherAlgorithms(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)

	_, err := codec.Verify("not.a.token")
	assert.ErrorIs(t, err, auth.ErrMalformedToken)

	claims := auth.Claims{
		ClientID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Minute)),
		},
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = codec.Verify(hs512)
	assert.ErrorIs(t, err, auth.ErrMalformedToken)
}

func TestVerifyRejectsMissingClientID(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)

	token, err := codec.Issue("", auth.AccessToken)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, auth.ErrMalformedToken)
}

func TestNewCodecValidation(t *testing.T) {
	_, err := auth.NewCodec(auth.TokenConfig{})
	assert.Error(t, err)

	_, err = auth.NewCodec(auth.TokenConfig{Secret: "s", Algorithm: "RS256"})
	assert.Error(t, err)

	_, err = auth.NewCodec(auth.TokenConfig{Secret: "s", Algorithm: "HS384"})
	assert.NoError(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("Qwerty1_}")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "Qwerty1_}"))
	assert.False(t, auth.CheckPassword(hash, "qwerty1_}"))
}

func TestStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Qwerty1_}":              true,
		"Abcdef1!":               true,
		"short1!":                false,
		"alllowercase1!":         false,
		"ALLUPPERCASE1!":         false,
		"NoDigitsHere!":          false,
		"NoSpecial123":           false,
		"Way2Long!xxxxxxxxxxxxx": false,
	}
	for pw, want := range cases {
		assert.Equal(t, want, auth.StrongPassword(pw), pw)
	}
}

func TestParseRole(t *testing.T) {
	r, err := auth.ParseRole("seller")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleSeller, r)

	_, err = auth.ParseRole("admin")
	assert.Error(t, err)

	var scanned auth.Role
	require.NoError(t, scanned.Scan([]byte("customer")))
	assert.Equal(t, auth.RoleCustomer, scanned)
	assert.Error(t, scanned.Scan("nobody"))

	_, err = auth.Role("").Value()
	assert.Error(t, err)
}

// ─── Gate ─────────────────────────────────────────────────────────────────────

type directory map[string]auth.Principal

func (d directory) Principal(_ context.Context, id string) (auth.Principal, error) {
	p, ok := d[id]
	if !ok {
		return auth.Principal{}, auth.ErrPrincipalNotFound
	}
	return p, nil
}

type brokenDirectory struct{}

func (brokenDirectory) Principal(context.Context, string) (auth.Principal, error) {
	return auth.Principal{}, errors.New("db down")
}

func TestGateResolveIdentity(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)
	gate := auth.NewGate(codec, directory{})

	token, err := codec.Issue("user-1", auth.AccessToken)
	require.NoError(t, err)

	id, err := gate.ResolveIdentity("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	_, err = gate.ResolveIdentity("")
	assert.ErrorIs(t, err, auth.ErrMissingCredential)

	for _, h := range []string{"bearer " + token, "Token " + token, "Bearer", "Bearer  " + token, token} {
		_, err = gate.ResolveIdentity(h)
		assert.ErrorIs(t, err, auth.ErrUnsupportedScheme, h)
	}

	_, err = gate.ResolveIdentity("Bearer " + strings.ToUpper(token))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	c.t = c.t.Add(time.Hour)
	_, err = gate.ResolveIdentity("Bearer " + token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestGateRequireRole(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)
	gate := auth.NewGate(codec, directory{
		"s": {ID: "s", Username: "Seller", Role: auth.RoleSeller},
		"c": {ID: "c", Username: "Customer", Role: auth.RoleCustomer},
	})
	ctx := context.Background()

	p, err := gate.RequireRole(ctx, "s", auth.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, "Seller", p.Username)

	_, err = gate.RequireRole(ctx, "c", auth.RoleSeller)
	assert.ErrorIs(t, err, auth.ErrRoleMismatch)

	_, err = gate.RequireRole(ctx, "ghost", auth.RoleCustomer)
	assert.ErrorIs(t, err, auth.ErrRoleMismatch)

	_, err = gate.Lookup(ctx, "ghost")
	assert.ErrorIs(t, err, auth.ErrPrincipalNotFound)
	p, err = gate.Lookup(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCustomer, p.Role)

	token, err := codec.Issue("c", auth.AccessToken)
	require.NoError(t, err)
	p, err = gate.Authorize(ctx, "Bearer "+token, auth.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "c", p.ID)
}

func TestGatePropagatesDirectoryFailure(t *testing.T) {
	gate := auth.NewGate(newCodec(t, &clock{t: time.Now()}), brokenDirectory{})
	_, err := gate.RequireRole(context.Background(), "x", auth.RoleSeller)
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrRoleMismatch)
}
