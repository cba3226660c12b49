package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrrestyle/internal/compress"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
)

// writeCompressed answers with body, compressed with the best encoding the
// client accepts.
func writeCompressed(c *gin.Context, status int, contentType string, body []byte) {
	c.Header("Vary", "Accept-Encoding")

	m := compress.Negotiate(c.GetHeader("Accept-Encoding"))
	if m == nil {
		c.Data(status, contentType, body)
		return
	}

	encoded, err := compress.Encode(m, body)
	if err != nil {
		logging.Logger().Warn("[QR] compression failed, sending identity", "encoding", m.Name(), "error", err)
		c.Data(status, contentType, body)
		return
	}
	c.Header("Content-Encoding", m.Name())
	c.Data(status, contentType, encoded)
}
