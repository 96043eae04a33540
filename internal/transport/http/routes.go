package httpt

import (
	"net/http"

	"paybridge/internal/config"

	"github.com/gin-gonic/gin"
)

func (h *BridgeHandler) setupRoutes() {
	h.router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	api := h.router.Group("/api")
	{
		api.POST("/payment", h.paymentHandler)
		// The gateway delivers results as a POST, but a browser following
		// the redirect from the hosted page arrives with a GET.
		api.POST("/callback", h.callbackHandler)
		api.GET("/callback", h.callbackHandler)
	}

	// Simulation endpoints never exist in a production deployment.
	if h.bridge.Mode == config.ModeTest {
		test := h.router.Group("/api/test")
		{
			test.POST("/sbpay", h.testSBPayHandler)
			test.POST("/callback", h.testCallbackHandler)
		}
	}
}
