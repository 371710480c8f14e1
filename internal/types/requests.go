package types

import (
	"github.com/beginvegan/backend/internal/models"
	"github.com/google/uuid"
)

type SignInRequest struct {
	Email      string `json:"email" binding:"required,email"`
	ProviderID string `json:"provider_id" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SignUpRequest is the multipart form sent once after the first OAuth login.
type SignUpRequest struct {
	Nickname       string           `form:"nickname" binding:"required,max=50"`
	VeganType      models.VeganType `form:"veganType" binding:"required"`
	IsDefaultImage bool             `form:"isDefaultImage"`
}

type UpdateProfileRequest struct {
	Nickname       string `form:"nickname" binding:"required,max=50"`
	IsDefaultImage bool   `form:"isDefaultImage"`
}

type VeganTypeRequest struct {
	VeganType models.VeganType `json:"vegan_type" binding:"required"`
}

type FcmTokenRequest struct {
	FcmToken string `json:"fcm_token" binding:"required"`
}

// LocationRequest carries coordinates as decimal strings, matching how
// restaurant coordinates are stored.
type LocationRequest struct {
	Latitude  string `json:"latitude" form:"latitude" binding:"required"`
	Longitude string `json:"longitude" form:"longitude" binding:"required"`
}

type ReviewRequest struct {
	RestaurantID string  `form:"restaurantId"`
	Content      string  `form:"content" binding:"required,max=2000"`
	Rate         float64 `form:"rate" binding:"required"`
}

type ReportRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type InspectionRequest struct {
	Inspection models.Inspection `json:"inspection" binding:"required"`
	Visible    *bool             `json:"visible"`
}

type BookmarkRequest struct {
	ContentID   uuid.UUID          `json:"content_id" binding:"required"`
	ContentType models.ContentType `json:"content_type" binding:"required"`
}

type FcmSendRequest struct {
	Token     string           `json:"token" binding:"required"`
	Title     string           `json:"title" binding:"required"`
	Body      string           `json:"body" binding:"required"`
	AlarmType models.AlarmType `json:"alarm_type"`
	ItemID    string           `json:"item_id"`
}

type SuggestionRequest struct {
	Kind         models.SuggestionKind      `json:"kind" binding:"required"`
	Registration *models.RegistrationDetail `json:"registration"`
	Modification *models.ModificationDetail `json:"modification"`
}
