package api

import (
	"net/http"

	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	suggestionService service.ISuggestionService
}

func NewSuggestionHandler(suggestionService service.ISuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

func (h *SuggestionHandler) Create(c *gin.Context) {
	var req types.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	suggestion, err := h.suggestionService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, suggestion)
}

func (h *SuggestionHandler) ListMine(c *gin.Context) {
	suggestions, err := h.suggestionService.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, suggestions)
}

func (h *SuggestionHandler) Inspect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.InspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	suggestion, err := h.suggestionService.Inspect(c.Request.Context(), middleware.UserID(c), id, req.Inspection)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, suggestion)
}
