package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var errTrailingData = errors.New("unexpected data after JSON value")

const (
	bodyKey = "jsonBody"

	// DefaultBodyLimit caps decoded request bodies.
	DefaultBodyLimit int64 = 100 << 10
)

// JSONBody decodes a JSON request body into a generic object and stores it in
// the context for validators and handlers. Bodies that are not JSON objects, or
// requests without a JSON content type, yield an empty object.
func JSONBody(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	return func(c *gin.Context) {
		body := map[string]interface{}{}
		if c.Request.Body != nil && isJSON(c.ContentType()) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
			var v interface{}
			dec := json.NewDecoder(c.Request.Body)
			err := dec.Decode(&v)
			if err == nil {
				// the body must hold exactly one JSON value
				if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
					err = extra
					if err == nil {
						err = errTrailingData
					}
				}
			}
			var tooLarge *http.MaxBytesError
			switch {
			case err == nil:
				if m, ok := v.(map[string]interface{}); ok {
					body = m
				}
			case errors.Is(err, io.EOF):
				// empty body
			case errors.As(err, &tooLarge):
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
				return
			default:
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
				return
			}
		}
		SetBody(c, body)
		c.Next()
	}
}

// SetBody stores a decoded body for later stages.
func SetBody(c *gin.Context, body map[string]interface{}) {
	c.Set(bodyKey, body)
}

// Body returns the object decoded by JSONBody, or an empty one.
func Body(c *gin.Context) map[string]interface{} {
	if v, ok := c.Get(bodyKey); ok {
		if m, ok := v.(map[string]interface{}); ok {
			return m
		}
	}
	return map[string]interface{}{}
}

func isJSON(contentType string) bool {
	return contentType == binding.MIMEJSON || strings.HasSuffix(contentType, "+json")
}
