package service_test

import (
	"context"
	"testing"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/testhelpers"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewBookmarkService(db)
	user := testhelpers.CreateUser(t, db, "marks@example.com")
	restaurant := testhelpers.CreateRestaurant(t, db, "Marked", "37.5", "127.0")
	food := testhelpers.CreateFood(t, db, "Tofu stew", models.VeganTypeVegan)
	magazine := testhelpers.CreateMagazine(t, db, "Spring greens")
	ctx := context.Background()

	req := types.BookmarkRequest{ContentID: restaurant.ID, ContentType: models.ContentTypeRestaurant}
	require.NoError(t, svc.Create(ctx, user.ID, req))

	err := svc.Create(ctx, user.ID, req)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	var n int64
	require.NoError(t, db.Model(&models.Bookmark{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	require.NoError(t, svc.Create(ctx, user.ID, types.BookmarkRequest{ContentID: food.ID, ContentType: models.ContentTypeRecipe}))
	require.NoError(t, svc.Create(ctx, user.ID, types.BookmarkRequest{ContentID: magazine.ID, ContentType: models.ContentTypeMagazine}))

	restaurants, err := svc.ListRestaurants(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "Marked", restaurants[0].Title)

	recipes, err := svc.ListRecipes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, food.ID, recipes[0].ContentID)

	magazines, err := svc.ListMagazines(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, magazines, 1)

	require.NoError(t, svc.Delete(ctx, user.ID, req))
	err = svc.Delete(ctx, user.ID, req)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestBookmarkRequiresExistingContent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewBookmarkService(db)
	user := testhelpers.CreateUser(t, db, "missing@example.com")
	ctx := context.Background()

	err := svc.Create(ctx, user.ID, types.BookmarkRequest{ContentID: uuid.New(), ContentType: models.ContentTypeRecipe})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	err = svc.Create(ctx, user.ID, types.BookmarkRequest{ContentID: uuid.New(), ContentType: "VIDEO"})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}
