package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// CORS allows any origin. Preflight requests are answered with 204 before routing.
func CORS() gin.HandlerFunc {
	policy := cors.New(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:     []string{"*"},
		ExposedHeaders:     []string{"Content-Length", RequestIDHeader},
		MaxAge:             300,
		OptionsPassthrough: true,
	})
	return func(c *gin.Context) {
		policy.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
	}
}
