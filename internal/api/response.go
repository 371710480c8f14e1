// Package api holds the gin handlers. Handlers translate HTTP to service
// calls and report failures with c.Error so middleware.ErrorHandler renders
// them.
package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/geo"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func respond(c *gin.Context, status int, information any) {
	c.JSON(status, types.APIResponse{Check: true, Information: information})
}

func message(c *gin.Context, msg string) {
	respond(c, http.StatusOK, types.Message{Message: msg})
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

func invalidBody(c *gin.Context, err error) {
	fail(c, apperr.InvalidInputf(err, "invalid request: %v", err))
}

// pathID parses a uuid path parameter.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		fail(c, apperr.InvalidInputf(err, "invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// maxPage bounds the page parameter so page*size stays within an int32 offset.
const maxPage = 1 << 20

// pageQuery reads the zero-based page query parameter.
func pageQuery(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("page", "0")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		fail(c, apperr.InvalidInput("page must be a non-negative integer"))
		return 0, false
	}
	if page > maxPage {
		fail(c, apperr.InvalidInputf(nil, "page must not exceed %d", maxPage))
		return 0, false
	}
	return page, true
}

// optionalLocation parses latitude and longitude query parameters. Both
// absent yields nil.
func optionalLocation(c *gin.Context) (*geo.Point, bool) {
	lat, lng := c.Query("latitude"), c.Query("longitude")
	if lat == "" && lng == "" {
		return nil, true
	}
	p, err := geo.ParsePoint(lat, lng)
	if err != nil {
		fail(c, apperr.InvalidInputf(err, "%s", err.Error()))
		return nil, false
	}
	return &p, true
}

func requiredLocation(c *gin.Context) (geo.Point, bool) {
	p, ok := optionalLocation(c)
	if !ok {
		return geo.Point{}, false
	}
	if p == nil {
		fail(c, apperr.InvalidInput("latitude and longitude are required"))
		return geo.Point{}, false
	}
	return *p, true
}

// formFile returns the named upload, or nil when none was sent.
func formFile(c *gin.Context, name string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.InvalidInputf(err, "invalid %s upload", name)
	}
	return file, nil
}

func formFiles(c *gin.Context, name string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[name]
}
