package httpt

import (
	"context"
	"errors"
	"net/http"

	"paybridge/internal/entity"
	"paybridge/pkg/logger"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Authentication and gateway failures stay generic towards the caller;
// the detail goes to the log sink only.
func (h *BridgeHandler) handleServiceError(c *gin.Context, err error, op string) {
	log := h.log.Ctx(c.Request.Context())

	var verr *entity.ValidationError

	switch {
	case errors.Is(err, entity.ErrInvalidSignature):
		log.LogAttrs(c.Request.Context(), logger.WarnLevel, op+" rejected",
			logger.String("reason", "signature"),
			logger.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Status: "error",
			Error:  "Invalid signature",
		})

	case errors.As(err, &verr):
		log.LogAttrs(c.Request.Context(), logger.WarnLevel, op+" rejected",
			logger.String("reason", "validation"),
			logger.Int("violations", len(verr.Violations)),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Error:   "Invalid request format",
			Details: verr.Violations,
		})

	case errors.Is(err, entity.ErrGatewayUnavailable):
		log.LogAttrs(c.Request.Context(), logger.ErrorLevel, op+" failed",
			logger.Any("error", err),
		)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Status: "error",
			Error:  "Payment processing failed",
		})

	case errors.Is(err, context.DeadlineExceeded):
		log.LogAttrs(c.Request.Context(), logger.WarnLevel, "request timeout",
			logger.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{
			Status: "error",
			Error:  "Request timed out",
		})

	default:
		log.LogAttrs(c.Request.Context(), logger.ErrorLevel, "internal server error",
			logger.Any("error", err),
			logger.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Status: "error",
			Error:  "Payment processing failed",
		})
	}
}
