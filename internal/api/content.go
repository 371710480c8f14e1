package api

import (
	"net/http"

	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ContentHandler serves recipes and magazines.
type ContentHandler struct {
	foodService     service.IFoodService
	magazineService service.IMagazineService
}

func NewContentHandler(foodService service.IFoodService, magazineService service.IMagazineService) *ContentHandler {
	return &ContentHandler{
		foodService:     foodService,
		magazineService: magazineService,
	}
}

func (h *ContentHandler) ListFoods(c *gin.Context) {
	foods, err := h.foodService.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, foods)
}

func (h *ContentHandler) PageFoods(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	foods, err := h.foodService.Page(c.Request.Context(), page)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, foods)
}

func (h *ContentHandler) RandomFoods(c *gin.Context) {
	foods, err := h.foodService.RandomThree(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, foods)
}

// MyFoods lists recipes matching the caller's vegan type.
func (h *ContentHandler) MyFoods(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	foods, err := h.foodService.Mine(c.Request.Context(), middleware.UserID(c), page)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, foods)
}

func (h *ContentHandler) FoodDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	food, err := h.foodService.Detail(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, food)
}

func (h *ContentHandler) ListMagazines(c *gin.Context) {
	magazines, err := h.magazineService.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, magazines)
}

func (h *ContentHandler) TwoMagazines(c *gin.Context) {
	magazines, err := h.magazineService.Two(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, magazines)
}

func (h *ContentHandler) MagazineDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	magazine, err := h.magazineService.Detail(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, magazine)
}
