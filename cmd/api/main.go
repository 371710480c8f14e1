package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/beginvegan/backend/config"
	"github.com/beginvegan/backend/internal/database"
	"github.com/beginvegan/backend/internal/fcm"
	"github.com/beginvegan/backend/internal/geo"
	"github.com/beginvegan/backend/internal/jobs"
	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/observability"
	"github.com/beginvegan/backend/internal/router"
	"github.com/beginvegan/backend/internal/server"
	"github.com/beginvegan/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(string(cfg.Environment), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, falling back to in-process rate limits")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return err
	}
	images := service.NewS3ImageStore(s3Config)

	// a nil *fcm.Client must not reach the interface
	var push service.PushSender
	if cfg.FCMProjectID != "" {
		client, err := fcm.NewFromCredentialsFile(ctx, cfg.FCMProjectID, cfg.FCMCredentialsFile,
			fcm.WithRateLimit(cfg.FCMSendsPerSecond))
		if err != nil {
			return err
		}
		push = client
	} else {
		logger.Warn().Msg("FCM_PROJECT_ID is not set, push sending is disabled")
	}

	calculator, err := geo.NewCalculator(cfg.EarthRadiusKm)
	if err != nil {
		return err
	}
	log.Info().
		Float64("earth_radius_km", calculator.RadiusKm()).
		Float64("around_radius_km", cfg.AroundRadiusKm).
		Float64("random_radius_km", cfg.RandomRadiusKm).
		Msg("distance calculator ready")

	authService := service.NewAuthService(db, service.AuthConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	oauthService := service.NewOAuthService(db, authService, service.KakaoConfig{
		ClientID:     cfg.KakaoClientID,
		ClientSecret: cfg.KakaoClientSecret,
		RedirectURL:  cfg.KakaoRedirectURL,
	})
	alarmService := service.NewAlarmService(db)
	ratingService := service.NewRatingService(db)

	srv := server.New(cfg, router.Dependencies{
		DB:             db,
		Redis:          redisClient,
		Registry:       observability.InitRegistry(),
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins(),

		Auth:  authService,
		OAuth: oauthService,
		Users: service.NewUserService(db, images),
		Restaurants: service.NewRestaurantService(db, calculator, service.RestaurantConfig{
			AroundRadiusKm: cfg.AroundRadiusKm,
			RandomRadiusKm: cfg.RandomRadiusKm,
			PageSize:       cfg.PageSize,
		}),
		Reviews:       service.NewReviewService(db, images, cfg.PageSize),
		Bookmarks:     service.NewBookmarkService(db),
		Alarms:        alarmService,
		Notifications: service.NewNotificationService(db, alarmService, push),
		Foods:         service.NewFoodService(db, cfg.PageSize),
		Magazines:     service.NewMagazineService(db),
		Suggestions:   service.NewSuggestionService(db),

		ReviewLimiter: middleware.NewReviewRateLimiter(redisClient, cfg.ReviewRateLimit, cfg.ReviewRateWindow),
		PushLimiter:   middleware.NewPushRateLimiter(redisClient, cfg.PushRateLimit, cfg.PushRateWindow),
	})

	scheduler, err := jobs.NewScheduler(cfg.JobTimezone)
	if err != nil {
		return err
	}
	if err := scheduler.Add(jobs.RatingJobName, cfg.RatingSchedule,
		jobs.NewRatingJob(ratingService, redisClient, cfg.RatingWindow)); err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)
	}()

	logger.Info().Str("env", string(cfg.Environment)).Msg("starting beginvegan api")
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
