package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flexprice/billingsim/internal/logger"
	"github.com/flexprice/billingsim/internal/service"
)

type PaymentHandler struct {
	chargeService        service.ChargeService
	paymentIntentService service.PaymentIntentService
	logger               *logger.Logger
}

func NewPaymentHandler(chargeService service.ChargeService, paymentIntentService service.PaymentIntentService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		chargeService:        chargeService,
		paymentIntentService: paymentIntentService,
		logger:               logger,
	}
}

// GetCharge godoc
// @Summary Get a charge by ID
// @Tags Payments
// @Produce json
// @Param id path string true "Charge ID"
// @Success 200 {object} dto.ChargeResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /charges/{id} [get]
func (h *PaymentHandler) GetCharge(c *gin.Context) {
	resp, err := h.chargeService.GetCharge(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPaymentIntent godoc
// @Summary Get a payment intent by ID
// @Tags Payments
// @Produce json
// @Param id path string true "Payment intent ID"
// @Success 200 {object} dto.PaymentIntentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /payment_intents/{id} [get]
func (h *PaymentHandler) GetPaymentIntent(c *gin.Context) {
	resp, err := h.paymentIntentService.GetPaymentIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
