package middleware

import (
	"errors"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequireActiveUser rejects tokens that belong to a withdrawn or unknown
// account. Access tokens outlive withdrawal until they expire.
func RequireActiveUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == uuid.Nil {
			abortWith(c, apperr.Unauthorized("authentication required"))
			return
		}

		var user models.User
		err := db.WithContext(c.Request.Context()).
			Select("id", "status").
			Where("id = ?", userID).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !user.IsActive()) {
			abortWith(c, apperr.Unauthorized("account is not active"))
			return
		}
		if err != nil {
			abortWith(c, apperr.Internal("failed to verify user status", err))
			return
		}

		c.Next()
	}
}
