package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/testhelpers"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := new(testhelpers.MockTokenValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID, Role: string(models.RoleUser)}, nil)
	validator.On("ValidateToken", "expired").Return(nil, errors.New("token has expired"))

	r := newTestRouter()
	r.GET("/me", AuthMiddleware(validator), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c).String())
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid bearer", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"expired token", "Bearer expired", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String(), rec.Body.String())
			} else {
				assert.Equal(t, "UNAUTHORIZED", decodeEnvelope(t, rec).Information.Code)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	validator := new(testhelpers.MockTokenValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID}, nil)
	validator.On("ValidateToken", "junk").Return(nil, errors.New("malformed"))

	r := newTestRouter()
	r.GET("/", OptionalAuth(validator), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c).String())
	})

	for header, want := range map[string]string{
		"":            uuid.Nil.String(),
		"Bearer junk": uuid.Nil.String(),
		"Bearer good": userID.String(),
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String(), "header %q", header)
	}
}

func TestRequireAdmin(t *testing.T) {
	validator := new(testhelpers.MockTokenValidator)
	validator.On("ValidateToken", "user").Return(&types.TokenClaims{UserID: uuid.New(), Role: string(models.RoleUser)}, nil)
	validator.On("ValidateToken", "admin").Return(&types.TokenClaims{UserID: uuid.New(), Role: string(models.RoleAdmin)}, nil)

	r := newTestRouter()
	r.GET("/admin", AuthMiddleware(validator), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for token, want := range map[string]int{"user": http.StatusForbidden, "admin": http.StatusNoContent} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, token)
	}
}

func TestRequireActiveUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	active := testhelpers.CreateUser(t, db, "active@example.com")
	gone := testhelpers.CreateUser(t, db, "gone@example.com", func(u *models.User) { u.Status = models.UserStatusDeleted })

	validator := new(testhelpers.MockTokenValidator)
	validator.On("ValidateToken", "active").Return(&types.TokenClaims{UserID: active.ID}, nil)
	validator.On("ValidateToken", "gone").Return(&types.TokenClaims{UserID: gone.ID}, nil)
	validator.On("ValidateToken", "ghost").Return(&types.TokenClaims{UserID: uuid.New()}, nil)

	r := newTestRouter()
	r.GET("/", AuthMiddleware(validator), RequireActiveUser(db), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	cases := map[string]int{
		"active": http.StatusNoContent,
		"gone":   http.StatusUnauthorized,
		"ghost":  http.StatusUnauthorized,
	}
	for token, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, want, rec.Code, token)
	}
}
