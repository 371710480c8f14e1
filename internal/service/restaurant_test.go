package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/geo"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Seoul City Hall.
var cityHall = geo.Point{Latitude: 37.5665, Longitude: 126.9780}

func setupRestaurants(t *testing.T) (*gorm.DB, *service.RestaurantService) {
	db := testhelpers.SetupTestDB(t)
	calc, err := geo.NewCalculator(geo.DefaultEarthRadiusKm)
	require.NoError(t, err)
	svc := service.NewRestaurantService(db, calc, service.RestaurantConfig{
		AroundRadiusKm: 5,
		RandomRadiusKm: 10,
		PageSize:       10,
	})
	return db, svc
}

func TestAroundIncludesNearbyRestaurants(t *testing.T) {
	db, svc := setupRestaurants(t)
	near := testhelpers.CreateRestaurant(t, db, "Gwanghwamun Greens", "37.5759", "126.9768", "bibimbap")
	testhelpers.CreateRestaurant(t, db, "Busan Veggie", "35.1796", "129.0756")
	testhelpers.CreateRestaurant(t, db, "Broken", "north", "east")

	around, err := svc.Around(context.Background(), cityHall)
	require.NoError(t, err)
	require.Len(t, around, 1)
	assert.Equal(t, near.ID, around[0].ID)
	require.NotNil(t, around[0].Distance)
	assert.InDelta(t, 1.05, *around[0].Distance, 0.05)
	assert.Len(t, around[0].Menus, 1)
}

func TestNearestPagesByDistance(t *testing.T) {
	db, svc := setupRestaurants(t)
	far := testhelpers.CreateRestaurant(t, db, "Far", "37.6500", "127.0500")
	nearest := testhelpers.CreateRestaurant(t, db, "Close", "37.5670", "126.9785")
	mid := testhelpers.CreateRestaurant(t, db, "Mid", "37.5759", "126.9768")
	testhelpers.CreateRestaurant(t, db, "Broken", "", "")

	page, err := svc.Nearest(context.Background(), uuid.Nil, cityHall, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, []uuid.UUID{nearest.ID, mid.ID, far.ID}, []uuid.UUID{page.Items[0].ID, page.Items[1].ID, page.Items[2].ID})
	assert.False(t, page.HasNext)

	empty, err := svc.Nearest(context.Background(), uuid.Nil, cityHall, 1)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	huge, err := svc.Nearest(context.Background(), uuid.Nil, cityHall, math.MaxInt64/10+1)
	require.NoError(t, err)
	assert.Empty(t, huge.Items)
	assert.False(t, huge.HasNext)
}

func TestRandomCapsCount(t *testing.T) {
	db, svc := setupRestaurants(t)
	user := testhelpers.CreateUser(t, db, "random@example.com")
	a := testhelpers.CreateRestaurant(t, db, "A", "37.5670", "126.9785")
	testhelpers.CreateRestaurant(t, db, "B", "35.1796", "129.0756")
	require.NoError(t, db.Create(&models.Bookmark{UserID: user.ID, ContentID: a.ID, ContentType: models.ContentTypeRestaurant}).Error)
	ctx := context.Background()

	all, err := svc.Random(ctx, user.ID, 5)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, r := range all {
		assert.Equal(t, r.ID == a.ID, r.IsBookmarked)
	}

	near, err := svc.RandomNear(ctx, user.ID, 5, cityHall)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, a.ID, near[0].ID)
	assert.NotNil(t, near[0].Distance)

	_, err = svc.Random(ctx, user.ID, 0)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestSearch(t *testing.T) {
	db, svc := setupRestaurants(t)
	byName := testhelpers.CreateRestaurant(t, db, "Tofu House", "37.6000", "126.9780")
	byMenu := testhelpers.CreateRestaurant(t, db, "Green Table", "37.5670", "126.9785", "tofu salad")
	testhelpers.CreateRestaurant(t, db, "Noodle Bar", "37.5670", "126.9785", "ramen")
	require.NoError(t, db.Model(byName).Update("rate", 4.8).Error)
	require.NoError(t, db.Model(byMenu).Update("rate", 3.1).Error)
	ctx := context.Background()

	byDistance, err := svc.Search(ctx, uuid.Nil, "tofu", &cityHall, service.SearchSortDistance, 0)
	require.NoError(t, err)
	require.Len(t, byDistance.Items, 2)
	assert.Equal(t, byMenu.ID, byDistance.Items[0].ID)

	byRate, err := svc.Search(ctx, uuid.Nil, "TOFU", nil, service.SearchSortRate, 0)
	require.NoError(t, err)
	require.Len(t, byRate.Items, 2)
	assert.Equal(t, byName.ID, byRate.Items[0].ID)
	assert.Nil(t, byRate.Items[0].Distance)

	_, err = svc.Search(ctx, uuid.Nil, "tofu", nil, service.SearchSortDistance, 0)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	none, err := svc.Search(ctx, uuid.Nil, "100%", &cityHall, service.SearchSortDistance, 0)
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}

func TestGetDetailAndReviews(t *testing.T) {
	db, svc := setupRestaurants(t)
	user := testhelpers.CreateUser(t, db, "detail@example.com")
	other := testhelpers.CreateUser(t, db, "detail2@example.com")
	r := testhelpers.CreateRestaurant(t, db, "Mid", "37.5759", "126.9768", "bibimbap")
	older := testhelpers.CreateReview(t, db, user.ID, r.ID, 4)
	newer := testhelpers.CreateReview(t, db, user.ID, r.ID, 5)
	testhelpers.CreateReview(t, db, user.ID, r.ID, 1, func(rv *models.Review) { rv.Visible = false })
	require.NoError(t, db.Create(&models.Recommendation{UserID: other.ID, ReviewID: older.ID}).Error)
	require.NoError(t, db.Model(newer).Update("created_at", older.CreatedAt.Add(time.Second)).Error)
	ctx := context.Background()

	detail, err := svc.GetDetail(ctx, user.ID, r.ID, &cityHall)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.ReviewCount)
	assert.NotNil(t, detail.Distance)
	assert.False(t, detail.IsBookmarked)
	assert.Len(t, detail.Menus, 1)

	_, err = svc.GetDetail(ctx, user.ID, uuid.New(), nil)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	byDate, err := svc.ListReviews(ctx, r.ID, 0, service.ReviewSortDate)
	require.NoError(t, err)
	require.Len(t, byDate.Items, 2)
	assert.Equal(t, newer.ID, byDate.Items[0].ID)

	byRec, err := svc.ListReviews(ctx, r.ID, 0, service.ReviewSortRecommendation)
	require.NoError(t, err)
	require.Len(t, byRec.Items, 2)
	assert.Equal(t, older.ID, byRec.Items[0].ID)
	assert.Equal(t, int64(1), byRec.Items[0].RecommendationCount)

	_, err = svc.ListReviews(ctx, r.ID, 0, "stars")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}
