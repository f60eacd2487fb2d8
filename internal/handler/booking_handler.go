package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/application"
	"github.com/circleshare/service-sharing/internal/pkg/middleware"
	"github.com/circleshare/service-sharing/internal/pkg/response"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers the booking endpoints on the given group.
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.SharerID())
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.ListByBooker)
		bookings.GET("/owner", h.ListByOwner)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id", h.Decide)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.DELETE("/:id", h.Delete)
	}
}

// Create places a new booking for the calling user.
func (h *BookingHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.AddBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Decide approves or rejects a waiting booking.
func (h *BookingHandler) Decide(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	approvedRaw := c.Query("approved")
	if approvedRaw != "true" && approvedRaw != "false" {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), userID, bookingID, approvedRaw == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Get retrieves a booking visible to the calling user.
func (h *BookingHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.GetByRelatedUserID(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// ListByBooker retrieves the calling user's own bookings.
func (h *BookingHandler) ListByBooker(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

// ListByOwner retrieves the bookings on the calling user's items.
func (h *BookingHandler) ListByOwner(c *gin.Context) {
	h.list(c, h.service.ListByOwner)
}

func (h *BookingHandler) list(c *gin.Context, fetch func(ctx context.Context, userID uuid.UUID, state string, from, size int) ([]*application.BookingResponse, error)) {
	userID, _ := middleware.GetSharerID(c)

	from, size, err := parsePaging(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	state := c.DefaultQuery("state", "all")

	resp, err := fetch(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Cancel withdraws a booking on behalf of its booker.
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Delete removes a booking at the item owner's request.
func (h *BookingHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), userID, bookingID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
