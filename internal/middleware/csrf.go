package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// CSRFTokenKey is the gin context key holding the token to embed in forms
	CSRFTokenKey = "csrfToken"
	// CSRFFormField is the form field carrying the token back
	CSRFFormField = "csrf_token"
)

// CSRF protects form posts with a signed double-submit token.
// Safe methods get a token issued; every other method must echo it back.
func CSRF(store *session.Store, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if !store.VerifyCSRF(c, c.PostForm(CSRFFormField)) {
				logrus.WithFields(logrus.Fields{
					"request_id": c.GetString(RequestIDKey),
					"path":       c.Request.URL.Path,
				}).Warn("Rejected request with missing or invalid CSRF token")
				c.String(http.StatusBadRequest, "The CSRF token is missing or invalid.")
				c.Abort()
				return
			}
		}

		token, err := store.CSRFToken(c)
		if err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		c.Set(CSRFTokenKey, token)
		c.Next()
	}
}
