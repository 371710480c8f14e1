package api

import (
	"context"
	"net/http"

	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookmarkHandler struct {
	bookmarkService service.IBookmarkService
}

func NewBookmarkHandler(bookmarkService service.IBookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

func (h *BookmarkHandler) Create(c *gin.Context) {
	var req types.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	if err := h.bookmarkService.Create(c.Request.Context(), middleware.UserID(c), req); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, types.Message{Message: "bookmarked"})
}

func (h *BookmarkHandler) Delete(c *gin.Context) {
	var req types.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	if err := h.bookmarkService.Delete(c.Request.Context(), middleware.UserID(c), req); err != nil {
		fail(c, err)
		return
	}
	message(c, "bookmark removed")
}

func (h *BookmarkHandler) ListRestaurants(c *gin.Context) {
	h.list(c, h.bookmarkService.ListRestaurants)
}

func (h *BookmarkHandler) ListRecipes(c *gin.Context) {
	h.list(c, h.bookmarkService.ListRecipes)
}

func (h *BookmarkHandler) ListMagazines(c *gin.Context) {
	h.list(c, h.bookmarkService.ListMagazines)
}

func (h *BookmarkHandler) list(c *gin.Context, fetch func(context.Context, uuid.UUID) ([]types.BookmarkItem, error)) {
	items, err := fetch(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}
