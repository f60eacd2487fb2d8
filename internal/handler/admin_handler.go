package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/circleshare/service-sharing/internal/application"
	"github.com/circleshare/service-sharing/internal/pkg/response"
)

// AdminHandler exposes cross-user booking views for operations tooling.
type AdminHandler struct {
	bookings *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings *application.BookingService) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// RegisterRoutes registers the admin endpoints on the given group.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/stats", h.BookingStats)
	}
}

// ListBookings retrieves every booking with pagination.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	from, size, err := parsePaging(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.bookings.ListAllBookings(c.Request.Context(), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// BookingStats retrieves booking counts grouped by status.
func (h *AdminHandler) BookingStats(c *gin.Context) {
	stats, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
