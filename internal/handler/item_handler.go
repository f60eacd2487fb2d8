package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/circleshare/service-sharing/internal/application"
	"github.com/circleshare/service-sharing/internal/pkg/middleware"
	"github.com/circleshare/service-sharing/internal/pkg/response"
)

// ItemHandler exposes the item catalog over HTTP.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers the item endpoints on the given group.
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	items.Use(middleware.SharerID())
	{
		items.POST("", h.Create)
		items.GET("", h.ListMine)
		items.GET("/search", h.Search)
		items.GET("/:id", h.Get)
		items.PATCH("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
		items.POST("/:id/comment", h.AddComment)
	}
}

// Create lists a new item for the calling user.
func (h *ItemHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Update applies a partial edit to an item.
func (h *ItemHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Get retrieves an item with its comments.
func (h *ItemHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// ListMine retrieves the calling user's items.
func (h *ItemHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	from, size, err := parsePaging(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.GetMyItems(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Search retrieves available items matching the text query.
func (h *ItemHandler) Search(c *gin.Context) {
	from, size, err := parsePaging(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.SearchItems(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Delete removes an item.
func (h *ItemHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddComment leaves feedback on an item.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, _ := middleware.GetSharerID(c)

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.AddComment(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}
