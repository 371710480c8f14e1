package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beginvegan/backend/internal/geo"
	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/observability"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/testhelpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
	images *testhelpers.FakeImageStore
	push   *testhelpers.MockPushSender
}

type envelope struct {
	Check       bool            `json:"check"`
	Information json.RawMessage `json:"information"`
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDB(t)
	images := testhelpers.NewFakeImageStore()
	push := new(testhelpers.MockPushSender)

	calc, err := geo.NewCalculator(6371)
	require.NoError(t, err)
	auth := service.NewAuthService(db, service.AuthConfig{
		Secret:     "router-test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
	alarms := service.NewAlarmService(db)

	r := SetupRouter(Dependencies{
		DB:             db,
		Registry:       observability.InitRegistry(),
		Logger:         zerolog.Nop(),
		AllowedOrigins: []string{"*"},
		Auth:           auth,
		OAuth:          service.NewOAuthService(db, auth, service.KakaoConfig{ClientID: "kakao-client", RedirectURL: "http://localhost/oauth2/callback/kakao"}),
		Users:          service.NewUserService(db, images),
		Restaurants: service.NewRestaurantService(db, calc, service.RestaurantConfig{
			AroundRadiusKm: 5,
			RandomRadiusKm: 10,
			PageSize:       10,
		}),
		Reviews:       service.NewReviewService(db, images, 10),
		Bookmarks:     service.NewBookmarkService(db),
		Alarms:        alarms,
		Notifications: service.NewNotificationService(db, alarms, push),
		Foods:         service.NewFoodService(db, 10),
		Magazines:     service.NewMagazineService(db),
		Suggestions:   service.NewSuggestionService(db),
		ReviewLimiter: middleware.NewReviewRateLimiter(nil, 2, time.Hour),
		PushLimiter:   middleware.NewPushRateLimiter(nil, 100, time.Minute),
	})
	return &testApp{router: r, db: db, auth: auth, images: images, push: push}
}

func (a *testApp) token(t *testing.T, user *models.User) string {
	t.Helper()
	resp, err := a.auth.IssueTokens(context.Background(), user)
	require.NoError(t, err)
	return resp.AccessToken
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) multipart(t *testing.T, method, path, token string, fields map[string]string, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, name := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG fake image"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if into != nil {
		require.NoError(t, json.Unmarshal(env.Information, into))
	}
	return env
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var info struct {
		Code string `json:"code"`
	}
	env := decode(t, rec, &info)
	assert.False(t, env.Check)
	return info.Code
}

func TestHealthEndpoints(t *testing.T) {
	app := setupApp(t)

	for _, path := range []string{"/", "/ping", "/health"} {
		rec := app.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.True(t, decode(t, rec, nil).Check, path)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	}

	rec := app.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "beginvegan_http_requests_total")
}

func TestSignInAndProfile(t *testing.T) {
	app := setupApp(t)
	user := testhelpers.CreateUser(t, app.db, "signin@example.com")

	rec := app.do(t, http.MethodGet, "/api/v1/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))

	rec = app.do(t, http.MethodPost, "/auth/sign-in", "", map[string]string{
		"email":       user.Email,
		"provider_id": testhelpers.TestProviderID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens struct {
		AccessToken     string `json:"access_token"`
		RefreshToken    string `json:"refresh_token"`
		SignUpCompleted bool   `json:"sign_up_completed"`
	}
	decode(t, rec, &tokens)
	require.NotEmpty(t, tokens.AccessToken)
	assert.True(t, tokens.SignUpCompleted)

	rec = app.do(t, http.MethodGet, "/api/v1/users", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Email string `json:"email"`
		Level string `json:"level"`
	}
	decode(t, rec, &detail)
	assert.Equal(t, user.Email, detail.Email)
	assert.NotEmpty(t, detail.Level)

	rec = app.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": tokens.RefreshToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/auth/sign-in", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, rec))
}

func TestWithdrawnTokenIsRejected(t *testing.T) {
	app := setupApp(t)
	user := testhelpers.CreateUser(t, app.db, "leaving@example.com")
	token := app.token(t, user)

	rec := app.do(t, http.MethodDelete, "/api/v1/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/v1/users/home", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserSettings(t *testing.T) {
	app := setupApp(t)
	user := testhelpers.CreateUser(t, app.db, "settings@example.com")
	token := app.token(t, user)

	rec := app.do(t, http.MethodPatch, "/api/v1/users/alarm", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var setting struct {
		AlarmSetting bool `json:"alarm_setting"`
	}
	decode(t, rec, &setting)
	assert.False(t, setting.AlarmSetting)

	rec = app.do(t, http.MethodPatch, "/api/v1/users/vegan-test", token, map[string]string{"vegan_type": "LACTO"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reloaded := testhelpers.ReloadUser(t, app.db, user.ID)
	assert.Equal(t, models.VeganTypeLacto, reloaded.VeganType)
	assert.Equal(t, 1, reloaded.Point)

	rec = app.do(t, http.MethodPatch, "/api/v1/users/fcm-token", token, map[string]string{"fcm_token": "device-9"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "device-9", testhelpers.ReloadUser(t, app.db, user.ID).FcmToken)

	rec = app.multipart(t, http.MethodPut, "/api/v1/users/profile", token,
		map[string]string{"nickname": "sprout", "isDefaultImage": "false"},
		map[string]string{"file": "me.png"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reloaded = testhelpers.ReloadUser(t, app.db, user.ID)
	assert.Equal(t, "sprout", reloaded.Nickname)
	assert.True(t, app.images.Stored[reloaded.ImageURL])
}

func TestRestaurantRoutes(t *testing.T) {
	app := setupApp(t)
	user := testhelpers.CreateUser(t, app.db, "diner@example.com")
	token := app.token(t, user)
	near := testhelpers.CreateRestaurant(t, app.db, "Green Table", "37.5665", "126.9780", "bibimbap")
	testhelpers.CreateRestaurant(t, app.db, "Far Away", "35.1796", "129.0756")

	rec := app.do(t, http.MethodGet, "/api/v1/restaurants/"+near.ID.String()+"?latitude=37.5651&longitude=126.9895", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var detail struct {
		Name     string   `json:"name"`
		Distance *float64 `json:"distance"`
	}
	decode(t, rec, &detail)
	assert.Equal(t, "Green Table", detail.Name)
	require.NotNil(t, detail.Distance)
	assert.InDelta(t, 1.0, *detail.Distance, 0.1)

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/"+near.ID.String()+"?latitude=95&longitude=126", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/restaurants/around", token, map[string]string{"latitude": "37.5665", "longitude": "126.9780"})
	require.Equal(t, http.StatusOK, rec.Code)
	var around []struct {
		Name string `json:"name"`
	}
	decode(t, rec, &around)
	require.Len(t, around, 1)
	assert.Equal(t, "Green Table", around[0].Name)

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/around?latitude=37.5665&longitude=126.9780&page=0", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var nearest struct {
		Items   []struct{ Name string } `json:"items"`
		HasNext bool                    `json:"has_next"`
	}
	decode(t, rec, &nearest)
	require.Len(t, nearest.Items, 2)
	assert.Equal(t, "Green Table", nearest.Items[0].Name)

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/around?page=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/around?latitude=37.5665&longitude=126.9780&page=9223372036854775807", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, rec))

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/random/5", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var random []json.RawMessage
	decode(t, rec, &random)
	assert.Len(t, random, 2)

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/random/0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/random/permission/3?latitude=37.5665&longitude=126.9780", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	random = nil
	decode(t, rec, &random)
	assert.Len(t, random, 1)

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/search?keyword=BIBIM&latitude=37.5665&longitude=126.9780", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &nearest)
	require.Len(t, nearest.Items, 1)
	assert.Equal(t, "Green Table", nearest.Items[0].Name)
}

func TestReviewFlow(t *testing.T) {
	app := setupApp(t)
	author := testhelpers.CreateUser(t, app.db, "author@example.com")
	reader := testhelpers.CreateUser(t, app.db, "reader@example.com")
	restaurant := testhelpers.CreateRestaurant(t, app.db, "Leafy", "37.5", "127.0")
	authorToken := app.token(t, author)
	readerToken := app.token(t, reader)

	rec := app.multipart(t, http.MethodPost, "/api/v1/reviews", authorToken, map[string]string{
		"restaurantId": restaurant.ID.String(),
		"content":      "Great bibimbap",
		"rate":         "4.5",
	}, map[string]string{"images": "dish.png"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var review struct {
		ID         string   `json:"id"`
		ReviewType string   `json:"review_type"`
		Images     []string `json:"images"`
	}
	decode(t, rec, &review)
	assert.Equal(t, "PHOTO", review.ReviewType)
	require.Len(t, review.Images, 1)
	assert.Equal(t, 0, testhelpers.ReloadUser(t, app.db, author.ID).Point, "photo reward waits for inspection")

	rec = app.do(t, http.MethodGet, "/api/v1/reviews/"+review.ID, readerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/reviews/"+review.ID+"/recommendation", readerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rec1 struct {
		Recommended bool  `json:"recommended"`
		Count       int64 `json:"count"`
	}
	decode(t, rec, &rec1)
	assert.True(t, rec1.Recommended)
	assert.EqualValues(t, 1, rec1.Count)
	assert.Equal(t, 2, testhelpers.ReloadUser(t, app.db, author.ID).Point)

	rec = app.do(t, http.MethodPost, "/api/v1/reviews/"+review.ID+"/report", readerToken, map[string]string{"content": "spam"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(t, http.MethodDelete, "/api/v1/reviews/"+review.ID, readerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPatch, "/api/v1/reviews/"+review.ID+"/inspection", readerToken, map[string]string{"inspection": "COMPLETE"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := testhelpers.CreateUser(t, app.db, "moderator@example.com", testhelpers.AsAdmin)
	rec = app.do(t, http.MethodPatch, "/api/v1/reviews/"+review.ID+"/inspection", app.token(t, admin), map[string]string{"inspection": "COMPLETE_REWARD"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 5, testhelpers.ReloadUser(t, app.db, author.ID).Point)

	rec = app.do(t, http.MethodGet, "/api/v1/restaurants/"+restaurant.ID.String()+"/reviews?sort=recommendation", readerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items []struct{ ID string } `json:"items"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Items, 1)

	rec = app.do(t, http.MethodGet, "/api/v1/reviews?page=0", authorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodDelete, "/api/v1/reviews/"+review.ID, authorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, testhelpers.ReloadUser(t, app.db, author.ID).Point, "deleting takes the photo reward back")
	assert.Len(t, app.images.Deleted, 1)
}

func TestReviewCreateIsRateLimited(t *testing.T) {
	app := setupApp(t)
	user := testhelpers.CreateUser(t, app.db, "busy@example.com")
	restaurant := testhelpers.CreateRestaurant(t, app.db, "Busy Place", "37.5", "127.0")
	token := app.token(t, user)

	fields := map[string]string{"restaurantId": restaurant.ID.String(), "content": "ok", "rate": "3"}
	for i := 0; i < 2; i++ {
		rec := app.multipart(t, http.MethodPost, "/api/v1/reviews", token, fields, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec := app.multipart(t, http.MethodPost, "/api/v1/reviews", token, fields, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestBookmarkRoutes(t *testing.T) {
	app := setupApp(t)
	user := testhelpers.CreateUser(t, app.db, "saver@example.com")
	token := app.token(t, user)
	restaurant := testhelpers.CreateRestaurant(t, app.db, "Saved", "37.5", "127.0")
	body := map[string]string{"content_id": restaurant.ID.String(), "content_type": "RESTAURANT"}

	rec := app.do(t, http.MethodPost, "/api/v1/bookmarks", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/api/v1/bookmarks", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))

	rec = app.do(t, http.MethodGet, "/api/v1/bookmarks/restaurant", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []struct {
		Title string `json:"title"`
	}
	decode(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Saved", items[0].Title)

	rec = app.do(t, http.MethodDelete, "/api/v1/bookmarks", token, body)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodDelete, "/api/v1/bookmarks", token, body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentRoutes(t *testing.T) {
	app := setupApp(t)
	user := testhelpers.CreateUser(t, app.db, "reader@example.com")
	food := testhelpers.CreateFood(t, app.db, "Stew", models.VeganTypeVegan)
	testhelpers.CreateFood(t, app.db, "Curry", models.VeganTypeLacto)
	magazine := testhelpers.CreateMagazine(t, app.db, "Spring")
	require.NoError(t, app.db.Create(&models.Bookmark{UserID: user.ID, ContentID: food.ID, ContentType: models.ContentTypeRecipe}).Error)

	for _, path := range []string{"/api/v1/foods", "/api/v1/foods/list?page=0", "/api/v1/foods/random", "/api/v1/magazines", "/api/v1/magazines/two"} {
		rec := app.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	var detail struct {
		IsBookmarked bool `json:"is_bookmarked"`
	}
	rec := app.do(t, http.MethodGet, "/api/v1/foods/"+food.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &detail)
	assert.False(t, detail.IsBookmarked)

	rec = app.do(t, http.MethodGet, "/api/v1/foods/"+food.ID.String(), app.token(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &detail)
	assert.True(t, detail.IsBookmarked)

	rec = app.do(t, http.MethodGet, "/api/v1/foods/my", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/foods/my", app.token(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine struct {
		Items []struct{ Name string } `json:"items"`
	}
	decode(t, rec, &mine)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "Stew", mine.Items[0].Name)

	rec = app.do(t, http.MethodGet, "/api/v1/magazines/"+magazine.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushAndAlarms(t *testing.T) {
	app := setupApp(t)
	user := testhelpers.CreateUser(t, app.db, "push@example.com", func(u *models.User) { u.FcmToken = "device-1" })
	app.push.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	rec := app.do(t, http.MethodPost, "/api/v1/fcm/send", "", map[string]string{
		"token":      "device-1",
		"title":      "Hello",
		"body":       "A new magazine is out",
		"alarm_type": "TIPS",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		Sent       bool `json:"sent"`
		AlarmSaved bool `json:"alarm_saved"`
	}
	decode(t, rec, &result)
	assert.True(t, result.Sent)
	assert.True(t, result.AlarmSaved)
	app.push.AssertExpectations(t)

	token := app.token(t, user)
	rec = app.do(t, http.MethodGet, "/api/v1/alarms", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Unread []json.RawMessage `json:"unread"`
		Read   []json.RawMessage `json:"read"`
	}
	decode(t, rec, &history)
	assert.Len(t, history.Unread, 1)

	rec = app.do(t, http.MethodPatch, "/api/v1/alarms/read", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodGet, "/api/v1/alarms", token, nil)
	decode(t, rec, &history)
	assert.Empty(t, history.Unread)
	assert.Len(t, history.Read, 1)

	rec = app.do(t, http.MethodPost, "/api/v1/fcm/send", "", map[string]string{"token": "unknown", "title": "x", "body": "y"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSuggestionRoutes(t *testing.T) {
	app := setupApp(t)
	user := testhelpers.CreateUser(t, app.db, "suggester@example.com")
	admin := testhelpers.CreateUser(t, app.db, "admin@example.com", testhelpers.AsAdmin)

	rec := app.do(t, http.MethodPost, "/api/v1/suggestions", app.token(t, user), map[string]any{
		"kind":         "REGISTRATION",
		"registration": map[string]string{"restaurant_name": "Sprout", "address": "Seoul"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	rec = app.do(t, http.MethodGet, "/api/v1/suggestions", app.token(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	path := fmt.Sprintf("/api/v1/suggestions/%s/inspection", created.ID)
	rec = app.do(t, http.MethodPatch, path, app.token(t, user), map[string]string{"inspection": "COMPLETE"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPatch, path, app.token(t, admin), map[string]string{"inspection": "COMPLETE_REWARD"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "suggestions carry no reward")

	rec = app.do(t, http.MethodPatch, path, app.token(t, admin), map[string]string{"inspection": "COMPLETE"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.Contains(rec.Body.String(), `"COMPLETE"`))
}

func TestKakaoAuthorizeRedirects(t *testing.T) {
	app := setupApp(t)

	rec := app.do(t, http.MethodGet, "/oauth2/authorize/kakao", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "kauth.kakao.com")
	assert.Contains(t, location, "client_id=kakao-client")

	rec = app.do(t, http.MethodGet, "/oauth2/callback/kakao?code=abc&state=forged", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
