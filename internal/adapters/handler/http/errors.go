package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
)

const unavailableMessage = "We could not reach your sleep data right now. Please try again in a moment."

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func handleError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})

	case errors.Is(err, domain.ErrWeekNotFound) || errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})

	case errors.Is(err, domain.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrUpstreamUnavailable):
		logger.Warn("upstream unavailable",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "service unavailable", Message: unavailableMessage})

	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

var authStatus = map[domain.AuthErrorCode]int{
	domain.AuthWrongPassword:     http.StatusUnauthorized,
	domain.AuthUserNotFound:      http.StatusNotFound,
	domain.AuthEmailInUse:        http.StatusConflict,
	domain.AuthWeakPassword:      http.StatusBadRequest,
	domain.AuthInvalidEmail:      http.StatusBadRequest,
	domain.AuthPasswordsMismatch: http.StatusBadRequest,
	domain.AuthInvalidResetToken: http.StatusBadRequest,
}

// handleAuthError answers with the auth code and the message for op.
// Errors outside the auth enumeration fall through to handleError.
func handleAuthError(c *gin.Context, logger *zap.Logger, op domain.AuthOperation, err error) {
	code := domain.AuthErrorCodeOf(err)
	status, ok := authStatus[code]
	if !ok {
		handleError(c, logger, err)
		return
	}
	c.JSON(status, errorResponse{Error: string(code), Message: domain.AuthMessage(op, code)})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
