package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKid      = "test-key-1"
	testAudience = "coffee_shop"
	testIssuer   = "https://coffee-shop.test/"
)

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func keySetFor(key *rsa.PrivateKey, kid string) *KeySet {
	pub := &key.PublicKey
	return &KeySet{Keys: []JSONWebKey{{
		Kty: "RSA",
		Kid: kid,
		Use: "sig",
		Alg: "RS256",
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}}}
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func testClaims(permissions []string) *Claims {
	return &Claims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			Subject:   "auth0|barista",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newTestAuthorizer(key *rsa.PrivateKey) *Authorizer {
	provider := &StaticKeySetProvider{Set: keySetFor(key, testKid)}
	return NewAuthorizer(provider, testAudience, testIssuer, []string{"RS256"})
}

// countingProvider records whether the key set was ever fetched
type countingProvider struct {
	set     *KeySet
	fetches int
}

func (p *countingProvider) Fetch(ctx context.Context) (*KeySet, error) {
	p.fetches++
	return p.set, nil
}

// failingProvider simulates an unreachable JWKS endpoint
type failingProvider struct{}

func (p *failingProvider) Fetch(ctx context.Context) (*KeySet, error) {
	return nil, errors.New("connection refused")
}

func TestAuthorizerVerify(t *testing.T) {
	key := newTestKey(t)
	authorizer := newTestAuthorizer(key)
	ctx := context.Background()

	t.Run("ValidToken", func(t *testing.T) {
		token := signToken(t, key, testKid, testClaims([]string{"get:drinks-detail"}))

		claims, aerr := authorizer.Verify(ctx, token)
		require.Nil(t, aerr)
		assert.Equal(t, []string{"get:drinks-detail"}, claims.Permissions)
		assert.Equal(t, testIssuer, claims.Issuer)
		assert.Equal(t, "auth0|barista", claims.Subject)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		expired := testClaims([]string{"get:drinks-detail"})
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		token := signToken(t, key, testKid, expired)

		_, aerr := authorizer.Verify(ctx, token)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeTokenExpired, aerr.Code)
		assert.Equal(t, http.StatusUnauthorized, aerr.StatusCode)
	})

	t.Run("WrongAudience", func(t *testing.T) {
		claims := testClaims(nil)
		claims.Audience = jwt.ClaimStrings{"another_api"}
		token := signToken(t, key, testKid, claims)

		_, aerr := authorizer.Verify(ctx, token)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidClaims, aerr.Code)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		claims := testClaims(nil)
		claims.Issuer = "https://evil.test/"
		token := signToken(t, key, testKid, claims)

		_, aerr := authorizer.Verify(ctx, token)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidClaims, aerr.Code)
	})

	t.Run("MissingKeyID", func(t *testing.T) {
		token := signToken(t, key, "", testClaims(nil))

		_, aerr := authorizer.Verify(ctx, token)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidHeader, aerr.Code)
	})

	t.Run("UnknownKeyID", func(t *testing.T) {
		token := signToken(t, key, "some-other-key", testClaims(nil))

		_, aerr := authorizer.Verify(ctx, token)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidHeader, aerr.Code)
	})

	t.Run("KeySetUnavailable", func(t *testing.T) {
		broken := NewAuthorizer(&failingProvider{}, testAudience, testIssuer, []string{"RS256"})
		token := signToken(t, key, testKid, testClaims(nil))

		_, aerr := broken.Verify(ctx, token)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeKeySetUnavailable, aerr.Code)
		assert.Equal(t, http.StatusUnauthorized, aerr.StatusCode)
	})

	t.Run("DisallowedAlgorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, testClaims(nil))
		token.Header["kid"] = testKid
		signed, err := token.SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		_, aerr := authorizer.Verify(ctx, signed)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidToken, aerr.Code)
	})

	t.Run("NoneAlgorithm", func(t *testing.T) {
		header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT","kid":"` + testKid + `"}`))
		payload := base64.RawURLEncoding.EncodeToString([]byte(`{"iss":"` + testIssuer + `"}`))

		_, aerr := authorizer.Verify(ctx, header+"."+payload+".")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidToken, aerr.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		_, aerr := authorizer.Verify(ctx, "abc.def.ghi")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidToken, aerr.Code)
	})

	t.Run("WrongSegmentCount", func(t *testing.T) {
		_, aerr := authorizer.Verify(ctx, "abc.def")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidToken, aerr.Code)
	})

	t.Run("TamperedSignature", func(t *testing.T) {
		otherKey := newTestKey(t)
		token := signToken(t, otherKey, testKid, testClaims(nil))

		_, aerr := authorizer.Verify(ctx, token)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidToken, aerr.Code)
	})
}

func TestCheckPermission(t *testing.T) {
	t.Run("Granted", func(t *testing.T) {
		claims := testClaims([]string{"get:drinks-detail", "post:drinks"})
		assert.Nil(t, CheckPermission("get:drinks-detail", claims))
	})

	t.Run("Denied", func(t *testing.T) {
		claims := testClaims([]string{"get:drinks-detail"})
		aerr := CheckPermission("delete:drinks", claims)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeForbidden, aerr.Code)
		assert.Equal(t, http.StatusForbidden, aerr.StatusCode)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		claims := testClaims([]string{"Post:Drinks"})
		aerr := CheckPermission("post:drinks", claims)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeForbidden, aerr.Code)
	})

	t.Run("PermissionsAbsent", func(t *testing.T) {
		claims := testClaims(nil)
		aerr := CheckPermission("get:drinks-detail", claims)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidPermissions, aerr.Code)
		assert.Equal(t, http.StatusBadRequest, aerr.StatusCode)
	})

	t.Run("PermissionsPresentButEmpty", func(t *testing.T) {
		claims := testClaims([]string{})
		aerr := CheckPermission("get:drinks-detail", claims)
		require.NotNil(t, aerr)
		assert.Equal(t, CodeForbidden, aerr.Code)
	})
}

func TestAuthorizePipeline(t *testing.T) {
	key := newTestKey(t)
	ctx := context.Background()

	t.Run("EndToEnd", func(t *testing.T) {
		authorizer := newTestAuthorizer(key)
		token := signToken(t, key, testKid, testClaims([]string{"get:drinks-detail"}))

		claims, aerr := authorizer.Authorize(ctx, "Bearer "+token, "get:drinks-detail")
		require.Nil(t, aerr)
		assert.True(t, claims.HasPermission("get:drinks-detail"))
	})

	t.Run("HeaderFailureShortCircuitsKeyFetch", func(t *testing.T) {
		provider := &countingProvider{set: keySetFor(key, testKid)}
		authorizer := NewAuthorizer(provider, testAudience, testIssuer, []string{"RS256"})

		_, aerr := authorizer.Authorize(ctx, "Token abc", "get:drinks-detail")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidHeader, aerr.Code)
		assert.Zero(t, provider.fetches, "malformed header must never reach the key set")
	})

	t.Run("MissingHeaderShortCircuits", func(t *testing.T) {
		provider := &countingProvider{set: keySetFor(key, testKid)}
		authorizer := NewAuthorizer(provider, testAudience, testIssuer, []string{"RS256"})

		_, aerr := authorizer.Authorize(ctx, "", "get:drinks-detail")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeHeaderMissing, aerr.Code)
		assert.Zero(t, provider.fetches)
	})

	t.Run("ExpiredBeatsMatchingPermission", func(t *testing.T) {
		authorizer := newTestAuthorizer(key)
		expired := testClaims([]string{"get:drinks-detail"})
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := signToken(t, key, testKid, expired)

		_, aerr := authorizer.Authorize(ctx, "Bearer "+token, "get:drinks-detail")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeTokenExpired, aerr.Code)
	})

	t.Run("PublicOperationSkipsPermissionCheck", func(t *testing.T) {
		authorizer := newTestAuthorizer(key)
		token := signToken(t, key, testKid, testClaims(nil))

		claims, aerr := authorizer.Authorize(ctx, "Bearer "+token, "")
		require.Nil(t, aerr)
		assert.Nil(t, claims.Permissions)
	})

	t.Run("SameTokenVerifiesIdentically", func(t *testing.T) {
		authorizer := newTestAuthorizer(key)
		token := signToken(t, key, testKid, testClaims([]string{"post:drinks"}))

		first, aerr := authorizer.Authorize(ctx, "Bearer "+token, "post:drinks")
		require.Nil(t, aerr)
		second, aerr := authorizer.Authorize(ctx, "Bearer "+token, "post:drinks")
		require.Nil(t, aerr)
		assert.Equal(t, first.Permissions, second.Permissions)
		assert.Equal(t, first.Subject, second.Subject)
	})
}
