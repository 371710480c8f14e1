package api

import (
	"net/http"
	"strconv"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/geo"
	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	restaurantService service.IRestaurantService
}

func NewRestaurantHandler(restaurantService service.IRestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

func (h *RestaurantHandler) GetDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	from, ok := optionalLocation(c)
	if !ok {
		return
	}

	detail, err := h.restaurantService.GetDetail(c.Request.Context(), middleware.UserID(c), id, from)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, detail)
}

func (h *RestaurantHandler) ListReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	reviews, err := h.restaurantService.ListReviews(c.Request.Context(), id, page, service.ReviewSort(c.Query("sort")))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, reviews)
}

// Around lists every restaurant within the configured radius of the posted
// location.
func (h *RestaurantHandler) Around(c *gin.Context) {
	var req types.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	from, err := geo.ParsePoint(req.Latitude, req.Longitude)
	if err != nil {
		fail(c, apperr.InvalidInputf(err, "%s", err.Error()))
		return
	}

	restaurants, err := h.restaurantService.Around(c.Request.Context(), from)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, restaurants)
}

func (h *RestaurantHandler) Random(c *gin.Context) {
	count, ok := countParam(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurantService.Random(c.Request.Context(), middleware.UserID(c), count)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, restaurants)
}

// RandomNear is the random pick for clients that granted location
// permission.
func (h *RestaurantHandler) RandomNear(c *gin.Context) {
	count, ok := countParam(c)
	if !ok {
		return
	}
	from, ok := requiredLocation(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurantService.RandomNear(c.Request.Context(), middleware.UserID(c), count, from)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, restaurants)
}

func (h *RestaurantHandler) Nearest(c *gin.Context) {
	from, ok := requiredLocation(c)
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurantService.Nearest(c.Request.Context(), middleware.UserID(c), from, page)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, restaurants)
}

func (h *RestaurantHandler) Search(c *gin.Context) {
	from, ok := optionalLocation(c)
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	result, err := h.restaurantService.Search(c.Request.Context(), middleware.UserID(c),
		c.Query("keyword"), from, service.SearchSort(c.Query("sort")), page)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

func countParam(c *gin.Context) (int, bool) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		fail(c, apperr.InvalidInputf(err, "count must be an integer"))
		return 0, false
	}
	return count, true
}
