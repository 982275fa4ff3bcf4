package middleware

import (
	"bytes"

	"github.com/gin-gonic/gin"
)

// responseWriter tees the response body so it can be logged.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}
