package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daud2712/E-Commerce-sub000/internal/infra/payment"
	"github.com/Daud2712/E-Commerce-sub000/internal/services"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(s *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkoutID, err := h.service.Initiate(c.Request.Context(), actorFrom(c), req.OrderID, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"checkoutId": checkoutID})
}

// Callback receives the gateway's settlement result. The gateway does
// not authenticate; the service cross-checks the checkout id instead.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.HandleCallback(c.Request.Context(), payment.CallbackResult{
		Ref:        req.Ref,
		CheckoutID: req.CheckoutID,
		Success:    req.Success,
		Reason:     req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "callback processed"})
}
