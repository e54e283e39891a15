package handlers

import (
	"errors"

	"lendledger/internal/core/services"
	"lendledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	overviewService *services.OverviewService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(overviewService *services.OverviewService) *CustomerHandler {
	return &CustomerHandler{
		overviewService: overviewService,
	}
}

// Overview returns all loans of a customer with derived figures
func (h *CustomerHandler) Overview(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")

	overview, err := h.overviewService.Overview(c.Context(), customerID)
	if err != nil {
		if errors.Is(err, services.ErrNoLoansFound) {
			return response.NotFound(c, "No loans found")
		}
		return response.InternalServerError(c, "Failed to get overview")
	}

	return c.JSON(overview)
}
