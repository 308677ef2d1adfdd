package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tripcraft-backend/internal/http/response"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

// failWith answers with the service error envelope. Only 5xx are logged;
// client errors are expected traffic.
func failWith(c *gin.Context, log *logger.Logger, op string, err error) {
	_ = c.Error(err)
	response.RespondServiceError(c, err)
	if c.Writer.Status() >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err, "path", c.FullPath(), "trip_id", c.Param("id"))
	}
}

// queryInt returns def for a missing value and ok=false for a malformed one.
func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func queryFloat(c *gin.Context, key string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(c.Query(key)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func queryBool(c *gin.Context, key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return b
}
