package middleware

import "github.com/gin-gonic/gin"

// BaseURLContextKey guarda a URL base usada nos tipos de problema (RFC 7807)
const BaseURLContextKey = "base_url"

// BaseURL adiciona a URL base da API ao contexto
func BaseURL(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(BaseURLContextKey, baseURL)
		c.Next()
	}
}
