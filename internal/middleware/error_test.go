package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Check       bool `json:"check"`
	Information struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"information"`
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", apperr.NotFound("restaurant not found"), http.StatusNotFound, "NOT_FOUND", "restaurant not found"},
		{"forbidden", apperr.Forbidden("not your review"), http.StatusForbidden, "FORBIDDEN", "not your review"},
		{"invalid input", apperr.InvalidInput("bad rate"), http.StatusBadRequest, "INVALID_INPUT", "bad rate"},
		{"conflict", apperr.Conflict("already bookmarked"), http.StatusConflict, "CONFLICT", "already bookmarked"},
		{"unclassified", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.False(t, body.Check)
			assert.Equal(t, tt.wantCode, body.Information.Code)
			assert.Equal(t, tt.wantMsg, body.Information.Message)
		})
	}
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	r := newTestRouter()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"check": true})
		_ = c.Error(apperr.NotFound("ignored"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"check":true}`, rec.Body.String())
}

func TestRecovery(t *testing.T) {
	r := newTestRouter()
	r.GET("/", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL", decodeEnvelope(t, rec).Information.Code)
}
