package api

import (
	"net/http"

	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.IReviewService
}

func NewReviewHandler(reviewService service.IReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListMine(c.Request.Context(), middleware.UserID(c), page)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, reviews)
}

// RestaurantSummary returns the restaurant card shown on the review form.
func (h *ReviewHandler) RestaurantSummary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	brief, err := h.reviewService.GetRestaurantSummary(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, brief)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, review)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req types.ReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), middleware.UserID(c), req, formFiles(c, "images"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.ReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), middleware.UserID(c), id, req, formFiles(c, "images"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	message(c, "review deleted")
}

func (h *ReviewHandler) ToggleRecommendation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewService.ToggleRecommendation(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

func (h *ReviewHandler) Report(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	if err := h.reviewService.Report(c.Request.Context(), middleware.UserID(c), id, req.Content); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, types.Message{Message: "report received"})
}

func (h *ReviewHandler) Inspect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.InspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	review, err := h.reviewService.Inspect(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, review)
}
