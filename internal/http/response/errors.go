package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tripcraft-backend/internal/platform/apierr"
)

var errInternal = errors.New("internal error")

// RespondServiceError writes the envelope for an error coming back from a
// service. Status and code come from apierr.Resolve; messages of 5xx
// errors are not exposed.
func RespondServiceError(c *gin.Context, err error) {
	status, code := apierr.Resolve(err)
	if status >= http.StatusInternalServerError {
		RespondError(c, status, code, errInternal)
		return
	}
	RespondError(c, status, code, err)
}

// Abort is RespondError for middleware: the chain stops after the write.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{Message: message, Code: code},
	})
}
