package middleware

import "github.com/gin-gonic/gin"

func SecurityHeadersMiddleware(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()

		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("X-DNS-Prefetch-Control", "off")
		headers.Set("X-Download-Options", "noopen")
		headers.Set("X-Permitted-Cross-Domain-Policies", "none")
		headers.Set("Referrer-Policy", "no-referrer")
		headers.Set("Cross-Origin-Opener-Policy", "same-origin")
		headers.Set("Cross-Origin-Resource-Policy", "cross-origin")

		// uploads are embedded by the storefront on another origin
		headers.Set("Content-Security-Policy",
			"default-src 'self'; img-src 'self' data: https:; object-src 'none'; frame-ancestors 'none'; base-uri 'self'")

		if production {
			headers.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		}

		c.Next()
	}
}
