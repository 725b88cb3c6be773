package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flexprice/billingsim/internal/api/dto"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/logger"
	"github.com/flexprice/billingsim/internal/service"
)

type PriceHandler struct {
	service service.PriceService
	logger  *logger.Logger
}

func NewPriceHandler(service service.PriceService, logger *logger.Logger) *PriceHandler {
	return &PriceHandler{service: service, logger: logger}
}

// CreatePrice godoc
// @Summary Create a price
// @Tags Prices
// @Accept json
// @Produce json
// @Param price body dto.CreatePriceRequest true "Price details"
// @Success 201 {object} dto.PriceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /prices [post]
func (h *PriceHandler) CreatePrice(c *gin.Context) {
	var req dto.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePrice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetPrice godoc
// @Summary Get a price by ID
// @Tags Prices
// @Produce json
// @Param id path string true "Price ID"
// @Success 200 {object} dto.PriceResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /prices/{id} [get]
func (h *PriceHandler) GetPrice(c *gin.Context) {
	resp, err := h.service.GetPrice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
