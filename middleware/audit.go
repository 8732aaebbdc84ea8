package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware resolves the real client IP once per request so the
// activity recorder can attribute actions without re-parsing headers.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", getClientIP(c))
		c.Next()
	}
}

// getClientIP walks the usual proxy headers before trusting RemoteAddr.
func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		// may hold a chain of proxies, the first entry is the caller
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if isValidIP(ip) {
			return ip
		}
	}

	if xri := c.GetHeader("X-Real-Ip"); xri != "" && isValidIP(xri) {
		return xri
	}

	if cfip := c.GetHeader("CF-Connecting-IP"); cfip != "" && isValidIP(cfip) {
		return cfip
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// GetIPFromContext retrieves the IP resolved by AuditMiddleware.
func GetIPFromContext(c *gin.Context) string {
	if ip, exists := c.Get("client_ip"); exists {
		if ipStr, ok := ip.(string); ok {
			return ipStr
		}
	}
	return getClientIP(c)
}
