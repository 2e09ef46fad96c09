package jwtmw

import (
	"context"

	"github.com/gin-gonic/gin"

	userentity "blog_backend/internal/feature/users/domain/entity"
)

const (
	// ContextToken holds the raw bearer token extracted from the request (if any).
	ContextToken = "token"
	// ContextUser holds the *userentity.User resolved from the token.
	ContextUser = "user"
)

// Resolver resolves a raw token (empty when absent) to a persisted user.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*userentity.User, error)
}

// TokenExtractor stores the bearer token in the context when the Authorization header carries one.
// It never rejects a request.
func TokenExtractor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := ExtractBearer(c.GetHeader("Authorization")); ok {
			c.Set(ContextToken, token)
		}
		c.Next()
	}
}

// UserExtractor resolves the extracted token and attaches the user to the context.
// On failure the resolver's error is recorded with c.Error and the chain is aborted,
// leaving the response to the error-handling middleware.
func UserExtractor(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c.Request.Context(), c.GetString(ContextToken))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by UserExtractor.
func CurrentUser(c *gin.Context) (*userentity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*userentity.User)
	return user, ok && user != nil
}
