package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursegrid/coursegrid/internal/app/models/dto"
	"github.com/coursegrid/coursegrid/internal/pkg/auth"
)

// identityKey is the gin context key under which the verified identity
// is stored.
const identityKey = "identity"

// accessTokenCookie is the cookie name set by the login endpoint.
const accessTokenCookie = "access_token"

// authFailedMessage is the uniform external message for every
// authentication failure; expired and malformed tokens are not
// distinguished to callers.
const authFailedMessage = "Could not validate user."

// AuthMiddleware gates routes on a valid access token
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the bearer token and threads the resulting
// Identity through the request context. The Authorization header is
// checked first, then the cookie the login endpoint sets.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			extracted, err := auth.ExtractBearerToken(authHeader)
			if err != nil {
				abortUnauthorized(c)
				return
			}
			tokenString = extracted
		} else if cookieToken, err := c.Cookie(accessTokenCookie); err == nil {
			tokenString = cookieToken
		}

		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		identity, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			// auth.ErrExpiredToken vs auth.ErrInvalidToken stays an
			// internal distinction; the response is identical.
			abortUnauthorized(c)
			return
		}

		c.Set(identityKey, *identity)

		c.Next()
	}
}

// abortUnauthorized rejects the request with the uniform auth failure
func abortUnauthorized(c *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, authFailedMessage)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// CurrentIdentity returns the verified identity stored by JWTAuth.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}

	identity, ok := value.(auth.Identity)
	return identity, ok
}
