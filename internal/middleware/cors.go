package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns the cross-origin middleware. The policy mirrors the
// public API surface: any origin, any method, any header, with
// credentials allowed so the access token cookie survives.
func CORS() gin.HandlerFunc {
	config := cors.Config{
		AllowAllOrigins:  false,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			// Credentials cannot be combined with a wildcard origin,
			// so reflect whatever origin the request carries.
			return true
		},
	}
	return cors.New(config)
}
