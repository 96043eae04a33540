package httpt

import (
	"paybridge/internal/config"
	"paybridge/internal/service"
	"paybridge/internal/signature"
	"paybridge/pkg/logger"
	"paybridge/pkg/metric"

	"github.com/gin-gonic/gin"
)

type BridgeHandler struct {
	payments  *service.PaymentService
	callbacks *service.CallbackService
	signer    *signature.Signer
	bridge    config.Bridge
	log       logger.Logger
	metrics   metric.HTTP
	router    *gin.Engine
}

func NewBridgeHandler(
	payments *service.PaymentService,
	callbacks *service.CallbackService,
	signer *signature.Signer,
	bridge config.Bridge,
	log logger.Logger,
	metrics metric.HTTP,
) *BridgeHandler {
	h := &BridgeHandler{
		payments:  payments,
		callbacks: callbacks,
		signer:    signer,
		bridge:    bridge,
		log:       log,
		metrics:   metrics,
	}

	router := gin.New()

	router.Use(h.requestIDMiddleware())
	router.Use(h.loggingMiddleware())
	router.Use(gin.Recovery())

	h.router = router
	h.setupRoutes()

	return h
}

func (h *BridgeHandler) Engine() *gin.Engine {
	return h.router
}
