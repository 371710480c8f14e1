package models

import (
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewType string

const (
	ReviewTypeNormal ReviewType = "NORMAL"
	ReviewTypePhoto  ReviewType = "PHOTO"
)

// Inspection is the moderation state of a review or suggestion.
type Inspection string

const (
	InspectionIncomplete     Inspection = "INCOMPLETE"
	InspectionComplete       Inspection = "COMPLETE"
	InspectionCompleteReward Inspection = "COMPLETE_REWARD"
)

func (i Inspection) Valid() bool {
	return i == InspectionIncomplete || i == InspectionComplete || i == InspectionCompleteReward
}

const (
	MinReviewRate  = 0.5
	MaxReviewRate  = 5.0
	ReviewRateStep = 0.5
)

// ValidReviewRate reports whether rate is on the 0.5 to 5.0 half-star scale.
func ValidReviewRate(rate float64) bool {
	if math.IsNaN(rate) || rate < MinReviewRate || rate > MaxReviewRate {
		return false
	}
	steps := rate / ReviewRateStep
	return steps == math.Trunc(steps)
}

type Review struct {
	Model
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Rate          float64        `gorm:"not null" json:"rate"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RestaurantID  uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	Restaurant    *Restaurant    `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Visible       bool           `gorm:"not null" json:"visible"`
	ReviewType    ReviewType     `gorm:"size:20;not null" json:"review_type"`
	Inspection    Inspection     `gorm:"size:20;not null" json:"inspection"`
	RewardGranted bool           `gorm:"not null" json:"-"`
	Images        []ReviewImage  `gorm:"foreignKey:ReviewID" json:"images,omitempty"`
}

type ReviewImage struct {
	Model
	ReviewID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"review_id"`
	ImageURL string    `gorm:"size:512;not null" json:"image_url"`
}

type Recommendation struct {
	Model
	UserID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recommendation_user_review" json:"user_id"`
	ReviewID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recommendation_user_review;index" json:"review_id"`
}

// RecommendationReward records that a recommender has already earned the
// review's author points. It outlives the recommendation itself.
type RecommendationReward struct {
	Model
	UserID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recommendation_reward_user_review"`
	ReviewID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recommendation_reward_user_review"`
}

// Report is a user complaint against a review.
type Report struct {
	Model
	UserID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ReviewID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"review_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
}
