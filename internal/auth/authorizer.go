package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors raised inside the key resolution step so the classifier
// can tell them apart from ordinary parse failures.
var (
	errNoKeyID    = errors.New("token header is missing the kid field")
	errKeySetDown = errors.New("signing key set is unavailable")
	errUnknownKey = errors.New("no signing key matches the token kid")
)

// Authorizer runs the per-request authorization pipeline:
// extract header -> parse unverified header -> resolve key -> verify
// signature and claims -> check permission. Every stage failure
// short-circuits the rest; a denial is final for the request.
type Authorizer struct {
	keys     KeySetProvider
	audience string
	issuer   string
	methods  []string
}

// NewAuthorizer creates an authorizer bound to an expected audience, issuer
// and signature algorithm allowlist. The key set provider is injected so
// production wiring and tests can differ only in where keys come from.
func NewAuthorizer(keys KeySetProvider, audience, issuer string, methods []string) *Authorizer {
	return &Authorizer{
		keys:     keys,
		audience: audience,
		issuer:   issuer,
		methods:  methods,
	}
}

// Authorize runs the full pipeline against a raw Authorization header value.
// An empty permission marks the operation as public once the token itself is
// valid.
func (a *Authorizer) Authorize(ctx context.Context, headerValue, permission string) (*Claims, *Error) {
	token, aerr := ExtractToken(headerValue)
	if aerr != nil {
		return nil, aerr
	}

	claims, aerr := a.Verify(ctx, token)
	if aerr != nil {
		return nil, aerr
	}

	if permission != "" {
		if aerr := CheckPermission(permission, claims); aerr != nil {
			return nil, aerr
		}
	}

	return claims, nil
}

// Verify checks the token signature against the provider's key set and
// validates the standard claims.
func (a *Authorizer) Verify(ctx context.Context, token string) (*Claims, *Error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, a.keyFunc(ctx),
		jwt.WithValidMethods(a.methods),
		jwt.WithAudience(a.audience),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}

	if !parsed.Valid {
		return nil, Unauthorized(CodeInvalidToken, "unable to parse the authentication token")
	}

	return claims, nil
}

// keyFunc selects the verification key declared by the token's kid. The kid
// check runs before any network call to the key set provider.
func (a *Authorizer) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, errNoKeyID
		}

		set, err := a.keys.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errKeySetDown, err)
		}

		key, ok := set.Key(kid)
		if !ok {
			return nil, errUnknownKey
		}

		return key.RSAPublicKey()
	}
}

// classify maps verification failures onto the error taxonomy. Expiration is
// checked ahead of the other claim failures to keep its dedicated code.
func classify(err error) *Error {
	switch {
	case errors.Is(err, errNoKeyID):
		return Unauthorized(CodeInvalidHeader, "token lacks a key id")
	case errors.Is(err, errKeySetDown):
		return Unauthorized(CodeKeySetUnavailable, "signing key set is unavailable")
	case errors.Is(err, errUnknownKey):
		return Unauthorized(CodeInvalidHeader, "unable to find the appropriate key")
	case errors.Is(err, jwt.ErrTokenExpired):
		return Unauthorized(CodeTokenExpired, "token is expired")
	case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return Unauthorized(CodeInvalidClaims, "incorrect claims, please check the audience and issuer")
	default:
		return Unauthorized(CodeInvalidToken, "unable to parse the authentication token")
	}
}
