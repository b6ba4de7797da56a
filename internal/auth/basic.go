package auth

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mediateca/internal/config"
)

const realm = `Basic realm="mediateca", charset="UTF-8"`

// AdminGuard protects write requests. In "none" mode it lets everything
// through; in "basic" mode unsafe methods need the admin credentials.
// Reads stay public in both modes.
func AdminGuard(cfg config.Auth) gin.HandlerFunc {
	if cfg.Mode != config.AuthModeBasic {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.AdminPasswordHash == "" {
		log.Printf("Warning: AUTH_MODE=basic without AUTH_ADMIN_PASSWORD_HASH, all writes will be rejected")
	}

	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok || !checkAdmin(cfg, username, password) {
			c.Header("WWW-Authenticate", realm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
				"code":  "unauthorized",
			})
			return
		}

		c.Next()
	}
}

func checkAdmin(cfg config.Auth, username, password string) bool {
	if cfg.AdminPasswordHash == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUsername)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passOK := CheckPassword(password, cfg.AdminPasswordHash) == nil
	return userOK && passOK
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
