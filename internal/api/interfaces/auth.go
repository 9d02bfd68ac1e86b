package interfaces

import (
	"context"

	"coffee-shop/internal/auth"
)

// Authorizer runs the per-request authorization pipeline. An empty
// permission only verifies the token; a non-empty one additionally requires
// that exact permission string in the claims.
type Authorizer interface {
	Authorize(ctx context.Context, headerValue, permission string) (*auth.Claims, *auth.Error)
}
