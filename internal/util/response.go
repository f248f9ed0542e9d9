package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error writes a JSON error body. Client-side outcomes (4xx) are expected
// and only traced at debug level; anything 5xx is a real fault and logged
// as such.
func Error(c *gin.Context, code int, err interface{}) {
	msg := ""
	switch e := err.(type) {
	case string:
		msg = e
	case error:
		msg = e.Error()
	default:
		msg = http.StatusText(code)
	}

	if code >= http.StatusInternalServerError {
		zap.S().Errorf("API error: %s %s: %s", c.Request.Method, c.Request.URL.Path, msg)
	} else {
		zap.S().Debugf("API client error: %s %s: %s", c.Request.Method, c.Request.URL.Path, msg)
	}

	c.JSON(code, gin.H{"error": msg})
}
