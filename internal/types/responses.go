package types

import (
	"time"

	"github.com/beginvegan/backend/internal/level"
	"github.com/beginvegan/backend/internal/models"
	"github.com/google/uuid"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Check       bool `json:"check"`
	Information any  `json:"information"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Message struct {
	Message string `json:"message"`
}

// Page is one slice of a paginated listing. Page numbers start at 0.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	HasNext bool `json:"has_next"`
}

type SignInResponse struct {
	AuthTokens
	SignUpCompleted bool `json:"sign_up_completed"`
}

type UserDetail struct {
	ID           uuid.UUID        `json:"id"`
	Email        string           `json:"email"`
	Nickname     string           `json:"nickname"`
	UserCode     string           `json:"user_code"`
	ImageURL     string           `json:"image_url"`
	VeganType    models.VeganType `json:"vegan_type"`
	Provider     models.Provider  `json:"provider"`
	Point        int              `json:"point"`
	Level        level.Level      `json:"level"`
	AlarmSetting bool             `json:"alarm_setting"`
}

type HomeUserInfo struct {
	Nickname string      `json:"nickname"`
	Level    level.Level `json:"level"`
}

type MyPageInfo struct {
	Nickname      string           `json:"nickname"`
	UserCode      string           `json:"user_code"`
	Email         string           `json:"email"`
	ImageURL      string           `json:"image_url"`
	VeganType     models.VeganType `json:"vegan_type"`
	Point         int              `json:"point"`
	Level         level.Level      `json:"level"`
	ReviewCount   int64            `json:"review_count"`
	BookmarkCount int64            `json:"bookmark_count"`
}

type AlarmSetting struct {
	AlarmSetting bool `json:"alarm_setting"`
}

type RestaurantSummary struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	RestaurantType models.RestaurantType `json:"restaurant_type"`
	Address        models.Address        `json:"address"`
	Latitude       string                `json:"latitude"`
	Longitude      string                `json:"longitude"`
	Thumbnail      string                `json:"thumbnail"`
	Rate           float64               `json:"rate"`
	Distance       *float64              `json:"distance,omitempty"`
	IsBookmarked   bool                  `json:"is_bookmarked"`
}

type RestaurantDetail struct {
	models.Restaurant
	Distance     *float64 `json:"distance,omitempty"`
	IsBookmarked bool     `json:"is_bookmarked"`
	ReviewCount  int64    `json:"review_count"`
}

// RestaurantBrief is shown on the review form.
type RestaurantBrief struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	RestaurantType models.RestaurantType `json:"restaurant_type"`
	Address        models.Address        `json:"address"`
	Thumbnail      string                `json:"thumbnail"`
}

type ReviewAuthor struct {
	ID       uuid.UUID `json:"id"`
	Nickname string    `json:"nickname"`
	ImageURL string    `json:"image_url"`
}

type ReviewItem struct {
	ID                  uuid.UUID         `json:"id"`
	RestaurantID        uuid.UUID         `json:"restaurant_id"`
	RestaurantName      string            `json:"restaurant_name,omitempty"`
	Content             string            `json:"content"`
	Rate                float64           `json:"rate"`
	ReviewType          models.ReviewType `json:"review_type"`
	Inspection          models.Inspection `json:"inspection"`
	Images              []string          `json:"images"`
	Author              ReviewAuthor      `json:"author"`
	RecommendationCount int64             `json:"recommendation_count"`
	CreatedAt           time.Time         `json:"created_at"`
}

type RecommendationResult struct {
	Recommended bool  `json:"recommended"`
	Count       int64 `json:"count"`
}

type AlarmItem struct {
	ID        uuid.UUID        `json:"id"`
	AlarmType models.AlarmType `json:"alarm_type"`
	ItemID    string           `json:"item_id"`
	Content   string           `json:"content"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

type AlarmHistory struct {
	Unread []AlarmItem `json:"unread"`
	Read   []AlarmItem `json:"read"`
}

type PushResult struct {
	Sent       bool   `json:"sent"`
	AlarmSaved bool   `json:"alarm_saved"`
	Message    string `json:"message"`
}

type BookmarkItem struct {
	BookmarkID  uuid.UUID          `json:"bookmark_id"`
	ContentID   uuid.UUID          `json:"content_id"`
	ContentType models.ContentType `json:"content_type"`
	Title       string             `json:"title"`
	Thumbnail   string             `json:"thumbnail"`
	Subtitle    string             `json:"subtitle,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type FoodSummary struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	VeganType   models.VeganType    `json:"vegan_type"`
	Thumbnail   string              `json:"thumbnail"`
	CookingTime string              `json:"cooking_time"`
	Ingredients []models.Ingredient `json:"ingredients,omitempty"`
}

type FoodDetail struct {
	models.Food
	IsBookmarked bool `json:"is_bookmarked"`
}

type MagazineSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Editor    string    `json:"editor"`
	Thumbnail string    `json:"thumbnail"`
	CreatedAt time.Time `json:"created_at"`
}

type MagazineDetail struct {
	models.Magazine
	IsBookmarked bool `json:"is_bookmarked"`
}
