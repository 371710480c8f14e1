package router

import (
	"github.com/beginvegan/backend/internal/api"
	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/observability"
	"github.com/beginvegan/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies is everything the route table needs. Redis, the registry and
// the rate limiters are optional.
type Dependencies struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Registry       *prometheus.Registry
	Logger         zerolog.Logger
	AllowedOrigins []string

	Auth          service.IAuthService
	OAuth         service.IOAuthService
	Users         service.IUserService
	Restaurants   service.IRestaurantService
	Reviews       service.IReviewService
	Bookmarks     service.IBookmarkService
	Alarms        service.IAlarmService
	Notifications service.INotificationService
	Foods         service.IFoodService
	Magazines     service.IMagazineService
	Suggestions   service.ISuggestionService

	ReviewLimiter *middleware.RateLimiter
	PushLimiter   *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(deps.AllowedOrigins),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)

	healthHandler := api.NewHealthHandler(deps.DB, deps.Redis)
	authHandler := api.NewAuthHandler(deps.Auth, deps.OAuth, deps.Users)
	userHandler := api.NewUserHandler(deps.Users)
	restaurantHandler := api.NewRestaurantHandler(deps.Restaurants)
	reviewHandler := api.NewReviewHandler(deps.Reviews)
	bookmarkHandler := api.NewBookmarkHandler(deps.Bookmarks)
	alarmHandler := api.NewAlarmHandler(deps.Alarms, deps.Notifications)
	contentHandler := api.NewContentHandler(deps.Foods, deps.Magazines)
	suggestionHandler := api.NewSuggestionHandler(deps.Suggestions)

	authenticated := []gin.HandlerFunc{
		middleware.AuthMiddleware(deps.Auth),
		middleware.RequireActiveUser(deps.DB),
	}
	optional := middleware.OptionalAuth(deps.Auth)
	admin := middleware.RequireAdmin()

	router.GET("/", healthHandler.Root)
	router.GET("/ping", healthHandler.Ping)
	router.GET("/health", healthHandler.Health)
	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(observability.MetricsHandler(deps.Registry)))
	}

	oauth := router.Group("/oauth2")
	{
		oauth.GET("/authorize/kakao", authHandler.KakaoAuthorize)
		oauth.GET("/callback/kakao", authHandler.KakaoCallback)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/sign-in", authHandler.SignIn)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/sign-out", append(authenticated, authHandler.SignOut)...)
		auth.POST("/sign-up", append(authenticated, authHandler.SignUp)...)
	}

	v1 := router.Group("/api/v1")

	fcm := v1.Group("/fcm")
	{
		send := []gin.HandlerFunc{}
		if deps.PushLimiter != nil {
			send = append(send, deps.PushLimiter.RateLimitMiddleware())
		}
		fcm.POST("/send", append(send, alarmHandler.SendPush)...)
	}

	foods := v1.Group("/foods")
	{
		foods.GET("", contentHandler.ListFoods)
		foods.GET("/list", contentHandler.PageFoods)
		foods.GET("/random", contentHandler.RandomFoods)
		foods.GET("/my", append(authenticated, contentHandler.MyFoods)...)
		foods.GET("/:id", optional, contentHandler.FoodDetail)
	}

	magazines := v1.Group("/magazines")
	{
		magazines.GET("", contentHandler.ListMagazines)
		magazines.GET("/two", contentHandler.TwoMagazines)
		magazines.GET("/:id", optional, contentHandler.MagazineDetail)
	}

	protected := v1.Group("")
	protected.Use(authenticated...)
	{
		users := protected.Group("/users")
		{
			users.GET("", userHandler.GetUser)
			users.DELETE("", userHandler.Withdraw)
			users.GET("/home", userHandler.GetHome)
			users.GET("/my-page", userHandler.GetMyPage)
			users.GET("/alarm", userHandler.GetAlarmSetting)
			users.PATCH("/alarm", userHandler.ToggleAlarmSetting)
			users.PATCH("/vegan-type", userHandler.UpdateVeganType)
			users.PATCH("/vegan-test", userHandler.CompleteVeganTest)
			users.PUT("/profile", userHandler.UpdateProfile)
			users.PATCH("/fcm-token", userHandler.UpdateFcmToken)
		}

		restaurants := protected.Group("/restaurants")
		{
			restaurants.GET("/around", restaurantHandler.Nearest)
			restaurants.POST("/around", restaurantHandler.Around)
			restaurants.GET("/search", restaurantHandler.Search)
			restaurants.GET("/random/:count", restaurantHandler.Random)
			restaurants.GET("/random/permission/:count", restaurantHandler.RandomNear)
			restaurants.GET("/:id", restaurantHandler.GetDetail)
			restaurants.GET("/:id/reviews", restaurantHandler.ListReviews)
		}

		reviews := protected.Group("/reviews")
		{
			create := []gin.HandlerFunc{}
			if deps.ReviewLimiter != nil {
				create = append(create, deps.ReviewLimiter.RateLimitMiddleware())
			}
			reviews.GET("", reviewHandler.ListMine)
			reviews.POST("", append(create, reviewHandler.Create)...)
			reviews.GET("/restaurant/:id", reviewHandler.RestaurantSummary)
			reviews.GET("/:id", reviewHandler.Get)
			reviews.PUT("/:id", reviewHandler.Update)
			reviews.DELETE("/:id", reviewHandler.Delete)
			reviews.POST("/:id/recommendation", reviewHandler.ToggleRecommendation)
			reviews.POST("/:id/report", reviewHandler.Report)
			reviews.PATCH("/:id/inspection", admin, reviewHandler.Inspect)
		}

		bookmarks := protected.Group("/bookmarks")
		{
			bookmarks.POST("", bookmarkHandler.Create)
			bookmarks.DELETE("", bookmarkHandler.Delete)
			bookmarks.GET("/restaurant", bookmarkHandler.ListRestaurants)
			bookmarks.GET("/recipe", bookmarkHandler.ListRecipes)
			bookmarks.GET("/magazine", bookmarkHandler.ListMagazines)
		}

		alarms := protected.Group("/alarms")
		{
			alarms.GET("", alarmHandler.History)
			alarms.PATCH("/read", alarmHandler.MarkAllRead)
		}

		suggestions := protected.Group("/suggestions")
		{
			suggestions.GET("", suggestionHandler.ListMine)
			suggestions.POST("", suggestionHandler.Create)
			suggestions.PATCH("/:id/inspection", admin, suggestionHandler.Inspect)
		}
	}

	return router
}
