package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flexprice/billingsim/internal/api/dto"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/logger"
	"github.com/flexprice/billingsim/internal/service"
	"github.com/flexprice/billingsim/internal/types"
)

type InvoiceHandler struct {
	invoiceService  service.InvoiceService
	upcomingService service.UpcomingInvoiceService
	logger          *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, upcomingService service.UpcomingInvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:  invoiceService,
		upcomingService: upcomingService,
		logger:          logger,
	}
}

// CreateInvoice godoc
// @Summary Create a new invoice
// @Description Create a new draft invoice with a default line item
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to create invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetUpcomingInvoice godoc
// @Summary Preview the upcoming invoice
// @Description Assemble the next invoice for a customer or subscription without persisting it
// @Tags Invoices
// @Produce json
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/upcoming [get]
func (h *InvoiceHandler) GetUpcomingInvoice(c *gin.Context) {
	var req dto.UpcomingInvoiceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Errorw("failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid query parameters").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.upcomingService.GetUpcomingInvoice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SearchInvoices godoc
// @Summary Search invoices
// @Description Match invoices against a field:value query joined by AND
// @Tags Invoices
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /invoices/search [get]
func (h *InvoiceHandler) SearchInvoices(c *gin.Context) {
	var req dto.SearchInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Errorw("failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid query parameters").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.SearchInvoices(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetInvoiceLineItems godoc
// @Summary Get invoice line items
// @Description Return the ordered line item sequence of an invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceLinesResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id}/lines [get]
func (h *InvoiceHandler) GetInvoiceLineItems(c *gin.Context) {
	resp, err := h.invoiceService.GetInvoiceLineItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetInvoice godoc
// @Summary Get an invoice by ID
// @Description Get detailed information about an invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Param expand query string false "Comma-separated fields to expand"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	resp, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"), types.NewExpand(c.Query("expand")))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListInvoices godoc
// @Summary List invoices
// @Description List invoices with pagination and an optional customer filter
// @Tags Invoices
// @Produce json
// @Param filter query types.InvoiceFilter false "Filter"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var filter types.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.Errorw("failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid query parameters").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateInvoice godoc
// @Summary Update an invoice
// @Description Merge caller-supplied fields into a stored invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id} [post]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PayInvoice godoc
// @Summary Pay an invoice
// @Description Charge the customer and stamp the invoice paid
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	var req dto.PayInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Errorw("failed to bind request", "error", err)
			c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
			return
		}
	}

	resp, err := h.invoiceService.PayInvoice(c.Request.Context(), c.Param("id"), types.NewExpandFromFields(req.Expand))
	if err != nil {
		h.logger.Errorw("failed to pay invoice", "invoice_id", c.Param("id"), "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddInvoiceLines godoc
// @Summary Add lines to a draft invoice
// @Description Append line items to a draft invoice, preserving order
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param lines body dto.AddInvoiceLinesRequest true "Line items to add"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id}/add_lines [post]
func (h *InvoiceHandler) AddInvoiceLines(c *gin.Context) {
	var req dto.AddInvoiceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.AddInvoiceLines(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FinalizeInvoice godoc
// @Summary Finalize a draft invoice
// @Description Transition a draft invoice to open and create its payment intent
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id}/finalize [post]
func (h *InvoiceHandler) FinalizeInvoice(c *gin.Context) {
	var req dto.FinalizeInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Errorw("failed to bind request", "error", err)
			c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
			return
		}
	}

	resp, err := h.invoiceService.FinalizeInvoice(c.Request.Context(), c.Param("id"), types.NewExpandFromFields(req.Expand))
	if err != nil {
		h.logger.Errorw("failed to finalize invoice", "invoice_id", c.Param("id"), "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
