package auth

import "net/http"

// Error codes returned by the authorization pipeline
const (
	CodeHeaderMissing      = "authorization_header_missing"
	CodeInvalidHeader      = "invalid_header"
	CodeKeySetUnavailable  = "jwks_unavailable"
	CodeTokenExpired       = "token_expired"
	CodeInvalidClaims      = "invalid_claims"
	CodeInvalidToken       = "invalid_token"
	CodeInvalidPermissions = "invalid_permissions"
	CodeForbidden          = "forbidden"
)

// Error represents a structured authorization failure. It carries a
// machine-readable code, a human description and the HTTP status the
// transport layer should answer with.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unauthorized creates a 401 authorization error
func Unauthorized(code, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 authorization error
func Forbidden(message string) *Error {
	return &Error{
		Code:       CodeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// BadRequest creates a 400 authorization error. It signals a token issuer
// misconfiguration rather than a legitimate denial.
func BadRequest(code, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
