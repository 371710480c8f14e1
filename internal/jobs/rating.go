// Package jobs runs the scheduled background work.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beginvegan/backend/internal/observability"
	"github.com/beginvegan/backend/internal/service"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	RatingJobName = "restaurant_rating"
	ratingLockKey = "job_lock:" + RatingJobName
)

// ErrLocked reports that another instance holds the job lock.
var ErrLocked = errors.New("job is already running elsewhere")

// releaseLock deletes the lock only if this run still owns it.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RatingJob recomputes the rate of restaurants whose reviews changed within
// the window.
type RatingJob struct {
	rating  service.IRatingService
	redis   *redis.Client
	window  time.Duration
	lockTTL time.Duration
}

// NewRatingJob creates the job. Without redis only the in-process overlap
// guard of the scheduler applies.
func NewRatingJob(rating service.IRatingService, redisClient *redis.Client, window time.Duration) *RatingJob {
	return &RatingJob{
		rating:  rating,
		redis:   redisClient,
		window:  window,
		lockTTL: 30 * time.Minute,
	}
}

// Run executes one pass. It returns ErrLocked when another instance is
// already running.
func (j *RatingJob) Run(ctx context.Context) error {
	logger := log.With().Str("job", RatingJobName).Logger()

	release, err := j.lock(ctx)
	if errors.Is(err, ErrLocked) {
		observability.ObserveJob(RatingJobName, "skipped")
		logger.Info().Msg("skipping run, lock held by another instance")
		return err
	}
	if err != nil {
		observability.ObserveJob(RatingJobName, "failed")
		return fmt.Errorf("failed to acquire job lock: %w", err)
	}
	defer release()

	start := time.Now()
	n, err := j.rating.RecomputeRecent(ctx, j.window)
	if err != nil {
		observability.ObserveJob(RatingJobName, "failed")
		logger.Error().Err(err).Int("restaurants", n).Msg("rating recompute finished with errors")
		return err
	}
	observability.ObserveJob(RatingJobName, "ok")
	logger.Info().Int("restaurants", n).Dur("took", time.Since(start)).Msg("rating recompute finished")
	return nil
}

func (j *RatingJob) lock(ctx context.Context) (func(), error) {
	if j.redis == nil {
		return func() {}, nil
	}

	token := uuid.NewString()
	ok, err := j.redis.SetNX(ctx, ratingLockKey, token, j.lockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		// the run's ctx may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseLock.Run(releaseCtx, j.redis, []string{ratingLockKey}, token).Err(); err != nil {
			log.Warn().Err(err).Str("job", RatingJobName).Msg("failed to release job lock")
		}
	}, nil
}
