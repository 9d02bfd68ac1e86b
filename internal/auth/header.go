package auth

import "strings"

// ExtractToken pulls the bearer token out of an Authorization header value.
// The scheme is matched case-insensitively; the token part is returned
// verbatim without any further parsing.
func ExtractToken(headerValue string) (string, *Error) {
	if headerValue == "" {
		return "", Unauthorized(CodeHeaderMissing, "Authorization header is expected")
	}

	parts := strings.Fields(headerValue)
	if len(parts) != 2 {
		return "", Unauthorized(CodeInvalidHeader, "Authorization header must have exactly two parts")
	}

	if !strings.EqualFold(parts[0], "bearer") {
		return "", Unauthorized(CodeInvalidHeader, "Authorization header must start with Bearer")
	}

	return parts[1], nil
}
