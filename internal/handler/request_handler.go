package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/circleshare/service-sharing/internal/application"
	"github.com/circleshare/service-sharing/internal/pkg/middleware"
	"github.com/circleshare/service-sharing/internal/pkg/response"
)

// RequestHandler exposes item requests over HTTP.
type RequestHandler struct {
	service *application.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *application.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers the request endpoints on the given group.
func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/requests")
	requests.Use(middleware.SharerID())
	{
		requests.POST("", h.Create)
		requests.GET("", h.ListOwn)
		requests.GET("/all", h.ListAll)
		requests.GET("/:id", h.Get)
	}
}

// Create posts a new item request for the calling user.
func (h *RequestHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	var req application.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// ListOwn retrieves the calling user's requests.
func (h *RequestHandler) ListOwn(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	resp, err := h.service.GetOwnRequests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// ListAll retrieves requests posted by other users.
func (h *RequestHandler) ListAll(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	from, size, err := parsePaging(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.GetAllRequests(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Get retrieves one request with its answering items.
func (h *RequestHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.GetRequest(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}
