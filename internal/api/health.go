package api

import (
	"net/http"

	"github.com/beginvegan/backend/internal/database"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler reports on db and, when configured, redis.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) Root(c *gin.Context) {
	message(c, "BeginVegan API is running")
}

func (h *HealthHandler) Ping(c *gin.Context) {
	message(c, "pong")
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := map[string]string{"database": "up"}
	healthy := true

	sqlDB, err := h.db.DB()
	if err == nil {
		err = database.HealthCheck(ctx, sqlDB)
	}
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("database health check failed")
		status["database"] = "down"
		healthy = false
	}

	if h.redis != nil {
		status["redis"] = "up"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("redis health check failed")
			status["redis"] = "down"
			healthy = false
		}
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, types.APIResponse{Check: healthy, Information: status})
}
