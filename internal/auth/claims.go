package auth

import "github.com/golang-jwt/jwt/v5"

// Claims represents the signature-verified payload of a token. It is only
// ever constructed by a successful verification and is immutable for the
// lifetime of the request. Permissions are carried through exactly as the
// provider issued them.
type Claims struct {
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// HasPermission reports whether the exact permission string was granted.
// Matching is case-sensitive with no wildcard or hierarchy semantics.
func (c *Claims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CheckPermission validates that the claims grant the required permission.
// A payload without a permissions field at all signals a misconfigured token
// issuer and maps to 400; a present set missing the required entry is a
// regular 403 denial.
func CheckPermission(required string, claims *Claims) *Error {
	if claims.Permissions == nil {
		return BadRequest(CodeInvalidPermissions, "permissions are not included in the token")
	}

	if !claims.HasPermission(required) {
		return Forbidden("permission " + required + " is not granted")
	}

	return nil
}
