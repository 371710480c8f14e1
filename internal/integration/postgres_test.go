// Package integration runs the services against a real postgres container.
// The tests skip when docker is unavailable or -short is set.
package integration

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/beginvegan/backend/internal/geo"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/testhelpers"
	"github.com/beginvegan/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRestaurants(t *testing.T, db *gorm.DB) *service.RestaurantService {
	t.Helper()
	calc, err := geo.NewCalculator(6371)
	require.NoError(t, err)
	return service.NewRestaurantService(db, calc, service.RestaurantConfig{
		AroundRadiusKm: 5,
		RandomRadiusKm: 10,
		PageSize:       10,
	})
}

func TestPostgresSearchMatchesMenusCaseInsensitively(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "search@example.com")
	testhelpers.CreateRestaurant(t, db, "Green Table", "37.5665", "126.9780", "Bibimbap")
	testhelpers.CreateRestaurant(t, db, "100% Plants", "37.5700", "126.9800")

	restaurants := newRestaurants(t, db)
	from := &geo.Point{Latitude: 37.5665, Longitude: 126.9780}

	page, err := restaurants.Search(ctx, user.ID, "bibim", from, service.SearchSortDistance, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Green Table", page.Items[0].Name)

	page, err = restaurants.Search(ctx, user.ID, "100%", from, service.SearchSortRate, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1, "the percent sign is matched literally")
	assert.Equal(t, "100% Plants", page.Items[0].Name)
}

func TestPostgresRatingRecompute(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "rater@example.com")
	restaurant := testhelpers.CreateRestaurant(t, db, "Rated", "37.5", "127.0")
	testhelpers.CreateReview(t, db, user.ID, restaurant.ID, 4.5)
	testhelpers.CreateReview(t, db, user.ID, restaurant.ID, 4.0)
	testhelpers.CreateReview(t, db, user.ID, restaurant.ID, 1.0, func(r *models.Review) { r.Visible = false })

	updated, err := service.NewRatingService(db).RecomputeRecent(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	var reloaded models.Restaurant
	require.NoError(t, db.First(&reloaded, "id = ?", restaurant.ID).Error)
	assert.InDelta(t, 4.3, reloaded.Rate, 1e-9)
}

func TestPostgresReviewRewardLifecycle(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()
	author := testhelpers.CreateUser(t, db, "author@example.com")
	admin := testhelpers.CreateUser(t, db, "admin@example.com", testhelpers.AsAdmin)
	restaurant := testhelpers.CreateRestaurant(t, db, "Photo Spot", "37.5", "127.0")
	reviews := service.NewReviewService(db, testhelpers.NewFakeImageStore(), 10)

	item, err := reviews.Create(ctx, author.ID, types.ReviewRequest{
		RestaurantID: restaurant.ID.String(),
		Content:      "lovely",
		Rate:         5,
	}, []*multipart.FileHeader{testhelpers.MultipartFile(t, "plate.png", []byte("\x89PNG"))})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewTypePhoto, item.ReviewType)

	_, err = reviews.Inspect(ctx, admin.ID, item.ID, types.InspectionRequest{Inspection: models.InspectionCompleteReward})
	require.NoError(t, err)
	assert.Equal(t, 3, testhelpers.ReloadUser(t, db, author.ID).Point)

	_, err = reviews.Inspect(ctx, admin.ID, item.ID, types.InspectionRequest{Inspection: models.InspectionCompleteReward})
	require.NoError(t, err)
	assert.Equal(t, 3, testhelpers.ReloadUser(t, db, author.ID).Point, "the reward is granted once")

	require.NoError(t, reviews.Delete(ctx, author.ID, item.ID))
	assert.Equal(t, 0, testhelpers.ReloadUser(t, db, author.ID).Point)
}

func TestPostgresUserCodesAdvancePerNickname(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()
	testhelpers.CreateUser(t, db, "first@example.com", func(u *models.User) { u.Nickname = "sprout"; u.UserCode = "0007" })

	code, err := service.GenerateUserCode(ctx, db, "sprout")
	require.NoError(t, err)
	assert.Equal(t, "0008", code)

	code, err = service.GenerateUserCode(ctx, db, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "0001", code)
}
