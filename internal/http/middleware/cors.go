package middleware

import (
	"net/http"
	"strings"

	"github.com/IGLOU-EU/go-wildcard/v2"
	"github.com/gin-gonic/gin"
)

// CORS allows cross-origin requests from origins matching allowedOrigins.
// Entries may contain wildcards, e.g. "https://*.example.com"; a lone "*"
// allows every origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}

	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")
		if origin == "" {
			ctx.Next()
			return
		}

		if !allowAll && !originAllowed(origin, allowedOrigins) {
			if ctx.Request.Method == http.MethodOptions {
				ctx.AbortWithStatus(http.StatusForbidden)
				return
			}
			ctx.Next()
			return
		}

		if allowAll {
			ctx.Header("Access-Control-Allow-Origin", "*")
		} else {
			ctx.Header("Access-Control-Allow-Origin", origin)
			ctx.Header("Vary", "Origin")
		}
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		ctx.Header("Access-Control-Expose-Headers", "Content-Disposition")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, pattern := range allowed {
		if pattern == origin {
			return true
		}
		if strings.Contains(pattern, "*") && wildcard.Match(pattern, origin) {
			return true
		}
	}
	return false
}
