package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// JSONWebKey is a single public key from a JWKS document (RFC 7517).
type JSONWebKey struct {
	Kty string   `json:"kty"`
	Kid string   `json:"kid"`
	Use string   `json:"use"`
	Alg string   `json:"alg,omitempty"`
	N   string   `json:"n"`
	E   string   `json:"e"`
	X5c []string `json:"x5c,omitempty"`
}

// KeySet is the set of signing keys published by the identity provider.
type KeySet struct {
	Keys []JSONWebKey `json:"keys"`
}

// Key returns the entry whose kid is exactly equal to the given value.
func (ks *KeySet) Key(kid string) (*JSONWebKey, bool) {
	for i := range ks.Keys {
		if ks.Keys[i].Kid == kid {
			return &ks.Keys[i], true
		}
	}
	return nil, false
}

// RSAPublicKey reconstructs the RSA public key from the base64url-encoded
// modulus and exponent.
func (k *JSONWebKey) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type: %s", k.Kty)
	}

	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %v", err)
	}

	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %v", err)
	}

	exponent := 0
	for _, b := range e {
		exponent = exponent<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: exponent,
	}, nil
}

// KeySetProvider supplies the current signing keys. The authorizer is only
// told that keys exist, not where they come from; production wiring points at
// the provider's JWKS endpoint, tests supply a static set.
type KeySetProvider interface {
	Fetch(ctx context.Context) (*KeySet, error)
}

type cachedKeySet struct {
	set     *KeySet
	expires time.Time
}

// HTTPKeySetProvider fetches the key set from the provider's well-known JWKS
// endpoint over HTTPS and caches it for a configurable TTL. Reads of a fresh
// cache are lock-free; expired or missing entries funnel through a
// singleflight group so at most one fetch is in flight at a time and
// concurrent callers share its result. No lock is held across the network
// call.
type HTTPKeySetProvider struct {
	url    string
	client *http.Client
	ttl    time.Duration

	cached atomic.Pointer[cachedKeySet]
	group  singleflight.Group
}

// NewHTTPKeySetProvider creates a provider for the given authority domain.
// A TTL of zero disables caching and refetches on every call.
func NewHTTPKeySetProvider(domain string, timeout, ttl time.Duration) *HTTPKeySetProvider {
	return &HTTPKeySetProvider{
		url:    fmt.Sprintf("https://%s/.well-known/jwks.json", domain),
		client: &http.Client{Timeout: timeout},
		ttl:    ttl,
	}
}

// Fetch returns the cached key set when fresh, otherwise refreshes it.
func (p *HTTPKeySetProvider) Fetch(ctx context.Context) (*KeySet, error) {
	if c := p.cached.Load(); c != nil && time.Now().Before(c.expires) {
		return c.set, nil
	}

	v, err, _ := p.group.Do("jwks", func() (interface{}, error) {
		set, err := p.fetch(ctx)
		if err != nil {
			return nil, err
		}
		if p.ttl > 0 {
			p.cached.Store(&cachedKeySet{set: set, expires: time.Now().Add(p.ttl)})
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*KeySet), nil
}

func (p *HTTPKeySetProvider) fetch(ctx context.Context) (*KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build JWKS request: %v", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var set KeySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %v", err)
	}

	return &set, nil
}

// StaticKeySetProvider serves a fixed in-memory key set. Used in tests and
// offline deployments.
type StaticKeySetProvider struct {
	Set *KeySet
}

// Fetch returns the static key set
func (p *StaticKeySetProvider) Fetch(ctx context.Context) (*KeySet, error) {
	return p.Set, nil
}
