package testhelpers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/beginvegan/backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestProviderID is the provider id every fixture user signs in with.
const TestProviderID = "kakao-123456"

// CreateUser inserts an active, signed-up user. Options adjust the row
// before it is saved.
func CreateUser(t *testing.T, db *gorm.DB, email string, opts ...func(*models.User)) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(TestProviderID), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash provider id: %v", err)
	}
	user := &models.User{
		Email:           email,
		Password:        string(hashed),
		Provider:        models.ProviderKakao,
		ProviderID:      TestProviderID,
		Role:            models.RoleUser,
		Nickname:        "tester",
		UserCode:        "0001",
		ImageURL:        models.DefaultProfileImage,
		VeganType:       models.VeganTypeVegan,
		AlarmSetting:    true,
		SignUpCompleted: true,
		Status:          models.UserStatusActive,
	}
	for _, opt := range opts {
		opt(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// AsAdmin gives the fixture user the admin role.
func AsAdmin(u *models.User) {
	u.Role = models.RoleAdmin
}

// CreateRestaurant inserts a restaurant at the given coordinates.
func CreateRestaurant(t *testing.T, db *gorm.DB, name, lat, lng string, menus ...string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{
		Name:           name,
		RestaurantType: models.RestaurantTypeKorean,
		Address:        models.Address{Province: "Seoul", City: "Jongno-gu", RoadName: "Sejong-daero 1"},
		Latitude:       lat,
		Longitude:      lng,
		Thumbnail:      "https://img.example.com/" + name + ".png",
	}
	for _, m := range menus {
		r.Menus = append(r.Menus, models.Menu{Name: m, Price: 9000})
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to create restaurant: %v", err)
	}
	return r
}

// CreateReview inserts a visible review without going through the service.
func CreateReview(t *testing.T, db *gorm.DB, userID, restaurantID uuid.UUID, rate float64, opts ...func(*models.Review)) *models.Review {
	t.Helper()
	r := &models.Review{
		Content:      "tasty",
		Rate:         rate,
		UserID:       userID,
		RestaurantID: restaurantID,
		Visible:      true,
		ReviewType:   models.ReviewTypeNormal,
		Inspection:   models.InspectionIncomplete,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return r
}

func CreateFood(t *testing.T, db *gorm.DB, name string, veganType models.VeganType) *models.Food {
	t.Helper()
	f := &models.Food{
		Name:        name,
		VeganType:   veganType,
		CookingTime: "20m",
		Ingredients: []models.Ingredient{{Name: "tofu", Amount: "1 block"}},
		Blocks: []models.FoodBlock{
			{Sequence: 2, Content: "serve"},
			{Sequence: 1, Content: "chop"},
		},
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("failed to create food: %v", err)
	}
	return f
}

func CreateMagazine(t *testing.T, db *gorm.DB, title string) *models.Magazine {
	t.Helper()
	m := &models.Magazine{
		Title:  title,
		Editor: "editor",
		Blocks: []models.MagazineBlock{
			{Sequence: 2, Content: "second"},
			{Sequence: 1, Content: "first"},
		},
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create magazine: %v", err)
	}
	return m
}

// ReloadUser reads the user row again.
func ReloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) *models.User {
	t.Helper()
	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return &u
}

// MultipartFile builds a file header as gin would hand it to a handler.
func MultipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	t.Cleanup(func() { req.MultipartForm.RemoveAll() })
	return req.MultipartForm.File["file"][0]
}

// Email returns a unique address for fixtures.
func Email(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}
