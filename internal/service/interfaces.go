package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/beginvegan/backend/internal/geo"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	SignIn(ctx context.Context, req types.SignInRequest) (*types.SignInResponse, error)
	IssueTokens(ctx context.Context, user *models.User) (*types.SignInResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*types.AuthTokens, error)
	SignOut(ctx context.Context, userID uuid.UUID) error
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IOAuthService defines the interface for the Kakao login flow
type IOAuthService interface {
	AuthorizeURL() (string, error)
	Callback(ctx context.Context, code, state string) (*types.SignInResponse, error)
}

// IUserService defines the interface for user profile and account operations
type IUserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*types.UserDetail, error)
	GetHome(ctx context.Context, userID uuid.UUID) (*types.HomeUserInfo, error)
	GetMyPage(ctx context.Context, userID uuid.UUID) (*types.MyPageInfo, error)
	UpdateVeganType(ctx context.Context, userID uuid.UUID, veganType models.VeganType) error
	CompleteVeganTest(ctx context.Context, userID uuid.UUID, veganType models.VeganType) error
	GetAlarmSetting(ctx context.Context, userID uuid.UUID) (bool, error)
	ToggleAlarmSetting(ctx context.Context, userID uuid.UUID) (bool, error)
	UpdateFcmToken(ctx context.Context, userID uuid.UUID, token string) error
	CompleteSignUp(ctx context.Context, userID uuid.UUID, req types.SignUpRequest, file *multipart.FileHeader) (*types.UserDetail, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest, file *multipart.FileHeader) (*types.UserDetail, error)
	Withdraw(ctx context.Context, userID uuid.UUID) error
}

// IRestaurantService defines the interface for restaurant lookups
type IRestaurantService interface {
	GetDetail(ctx context.Context, userID, restaurantID uuid.UUID, from *geo.Point) (*types.RestaurantDetail, error)
	ListReviews(ctx context.Context, restaurantID uuid.UUID, page int, sortBy ReviewSort) (types.Page[types.ReviewItem], error)
	Around(ctx context.Context, from geo.Point) ([]types.RestaurantDetail, error)
	Random(ctx context.Context, userID uuid.UUID, count int) ([]types.RestaurantSummary, error)
	RandomNear(ctx context.Context, userID uuid.UUID, count int, from geo.Point) ([]types.RestaurantSummary, error)
	Nearest(ctx context.Context, userID uuid.UUID, from geo.Point, page int) (types.Page[types.RestaurantSummary], error)
	Search(ctx context.Context, userID uuid.UUID, keyword string, from *geo.Point, sortBy SearchSort, page int) (types.Page[types.RestaurantSummary], error)
}

// IReviewService defines the interface for review operations
type IReviewService interface {
	GetRestaurantSummary(ctx context.Context, restaurantID uuid.UUID) (*types.RestaurantBrief, error)
	Get(ctx context.Context, reviewID uuid.UUID) (*types.ReviewItem, error)
	Create(ctx context.Context, userID uuid.UUID, req types.ReviewRequest, files []*multipart.FileHeader) (*types.ReviewItem, error)
	Update(ctx context.Context, userID, reviewID uuid.UUID, req types.ReviewRequest, files []*multipart.FileHeader) (*types.ReviewItem, error)
	Delete(ctx context.Context, userID, reviewID uuid.UUID) error
	ToggleRecommendation(ctx context.Context, userID, reviewID uuid.UUID) (*types.RecommendationResult, error)
	Report(ctx context.Context, userID, reviewID uuid.UUID, content string) error
	ListMine(ctx context.Context, userID uuid.UUID, page int) (types.Page[types.ReviewItem], error)
	Inspect(ctx context.Context, adminID, reviewID uuid.UUID, req types.InspectionRequest) (*types.ReviewItem, error)
}

// IRatingService defines the interface for restaurant rate aggregation
type IRatingService interface {
	RecomputeRecent(ctx context.Context, window time.Duration) (int, error)
	Recompute(ctx context.Context, restaurantID uuid.UUID) error
}

// IBookmarkService defines the interface for bookmark operations
type IBookmarkService interface {
	Create(ctx context.Context, userID uuid.UUID, req types.BookmarkRequest) error
	Delete(ctx context.Context, userID uuid.UUID, req types.BookmarkRequest) error
	ListRestaurants(ctx context.Context, userID uuid.UUID) ([]types.BookmarkItem, error)
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]types.BookmarkItem, error)
	ListMagazines(ctx context.Context, userID uuid.UUID) ([]types.BookmarkItem, error)
}

// IAlarmService defines the interface for the notification history
type IAlarmService interface {
	Save(ctx context.Context, userID uuid.UUID, alarmType models.AlarmType, itemID, content string) (*models.Alarm, error)
	History(ctx context.Context, userID uuid.UUID) (*types.AlarmHistory, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// INotificationService defines the interface for push dispatch
type INotificationService interface {
	Send(ctx context.Context, req types.FcmSendRequest) (*types.PushResult, error)
}

// IFoodService defines the interface for recipe operations
type IFoodService interface {
	ListAll(ctx context.Context) ([]types.FoodSummary, error)
	Detail(ctx context.Context, userID, foodID uuid.UUID) (*types.FoodDetail, error)
	RandomThree(ctx context.Context) ([]types.FoodSummary, error)
	Page(ctx context.Context, page int) (types.Page[types.FoodSummary], error)
	Mine(ctx context.Context, userID uuid.UUID, page int) (types.Page[types.FoodSummary], error)
}

// IMagazineService defines the interface for magazine operations
type IMagazineService interface {
	Two(ctx context.Context) ([]types.MagazineSummary, error)
	ListAll(ctx context.Context) ([]types.MagazineSummary, error)
	Detail(ctx context.Context, userID, magazineID uuid.UUID) (*types.MagazineDetail, error)
}

// ISuggestionService defines the interface for restaurant suggestions
type ISuggestionService interface {
	Create(ctx context.Context, userID uuid.UUID, req types.SuggestionRequest) (*models.Suggestion, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]models.Suggestion, error)
	Inspect(ctx context.Context, adminID, suggestionID uuid.UUID, inspection models.Inspection) (*models.Suggestion, error)
}
