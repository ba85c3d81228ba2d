package middlewares

import (
	"mime"
	"net/http"
	"strings"

	"github.com/geocoder89/eventrest/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// RequireJSON answers 415 to POST/PUT bodies that are not JSON. Structured
// suffixes such as application/hal+json are accepted.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if !isJSONMediaType(c.GetHeader("Content-Type")) {
				handlers.RespondError(c, http.StatusUnsupportedMediaType, "unsupported_media_type",
					"Content-Type must be application/json", nil)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

func isJSONMediaType(ct string) bool {
	if ct == "" {
		return false
	}

	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}

	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}
