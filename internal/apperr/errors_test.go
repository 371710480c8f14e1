package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("user not found"), http.StatusNotFound},
		{Forbidden("not the author"), http.StatusForbidden},
		{Unauthorized("invalid token"), http.StatusUnauthorized},
		{InvalidInput("bad rate"), http.StatusBadRequest},
		{Conflict("already bookmarked"), http.StatusConflict},
		{External("push failed", errors.New("503")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("failed to create bookmark: %w", Conflict("already bookmarked"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.Equal(t, "already bookmarked", Message(err))
}

func TestMessageHidesInternalDetail(t *testing.T) {
	err := Internal("failed to query users", errors.New("pq: connection refused"))
	assert.Equal(t, "internal server error", Message(err))
	assert.Equal(t, "internal server error", Message(errors.New("raw")))
	assert.ErrorContains(t, err, "connection refused")
}
