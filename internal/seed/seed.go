// Package seed loads catalog fixtures (restaurants, recipes, magazines and
// admin accounts) from YAML.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type Fixtures struct {
	Admins      []Admin      `yaml:"admins"`
	Restaurants []Restaurant `yaml:"restaurants"`
	Foods       []Food       `yaml:"foods"`
	Magazines   []Magazine   `yaml:"magazines"`
}

type Admin struct {
	Email      string `yaml:"email"`
	ProviderID string `yaml:"provider_id"`
	Nickname   string `yaml:"nickname"`
}

type Restaurant struct {
	Name        string                `yaml:"name"`
	Type        models.RestaurantType `yaml:"type"`
	Contact     string                `yaml:"contact"`
	Province    string                `yaml:"province"`
	City        string                `yaml:"city"`
	RoadName    string                `yaml:"road_name"`
	Detail      string                `yaml:"detail"`
	Latitude    string                `yaml:"latitude"`
	Longitude   string                `yaml:"longitude"`
	KakaoMapURL string                `yaml:"kakao_map_url"`
	Thumbnail   string                `yaml:"thumbnail"`
	Menus       []Menu                `yaml:"menus"`
}

type Menu struct {
	Name        string `yaml:"name"`
	Price       int64  `yaml:"price"`
	Description string `yaml:"description"`
}

type Food struct {
	Name        string            `yaml:"name"`
	VeganType   models.VeganType  `yaml:"vegan_type"`
	Thumbnail   string            `yaml:"thumbnail"`
	CookingTime string            `yaml:"cooking_time"`
	Ingredients map[string]string `yaml:"ingredients"`
	Steps       []string          `yaml:"steps"`
}

type Magazine struct {
	Title     string   `yaml:"title"`
	Editor    string   `yaml:"editor"`
	Thumbnail string   `yaml:"thumbnail"`
	Blocks    []string `yaml:"blocks"`
}

// Result counts the rows created by one Load.
type Result struct {
	Admins      int
	Restaurants int
	Foods       int
	Magazines   int
}

func Parse(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

func ParseFile(path string) (*Fixtures, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Load inserts the fixtures. Entries whose name (or email) already exists
// are skipped, so loading the same file twice is harmless.
func Load(ctx context.Context, db *gorm.DB, f *Fixtures) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range f.Admins {
			created, err := loadAdmin(ctx, tx, a)
			if err != nil {
				return err
			}
			if created {
				res.Admins++
			}
		}
		for _, r := range f.Restaurants {
			created, err := loadRestaurant(tx, r)
			if err != nil {
				return err
			}
			if created {
				res.Restaurants++
			}
		}
		for _, food := range f.Foods {
			created, err := loadFood(tx, food)
			if err != nil {
				return err
			}
			if created {
				res.Foods++
			}
		}
		for _, m := range f.Magazines {
			created, err := loadMagazine(tx, m)
			if err != nil {
				return err
			}
			if created {
				res.Magazines++
			}
		}
		return nil
	})
	return res, err
}

func exists(tx *gorm.DB, model any, column, value string) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(column+" = ?", value).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func loadAdmin(ctx context.Context, tx *gorm.DB, a Admin) (bool, error) {
	if found, err := exists(tx, &models.User{}, "email", a.Email); err != nil || found {
		return false, err
	}
	hashed, err := service.HashProviderID(a.ProviderID)
	if err != nil {
		return false, err
	}
	code, err := service.GenerateUserCode(ctx, tx, a.Nickname)
	if err != nil {
		return false, err
	}
	user := models.User{
		Email:           a.Email,
		Password:        hashed,
		Provider:        models.ProviderKakao,
		ProviderID:      a.ProviderID,
		Role:            models.RoleAdmin,
		Nickname:        a.Nickname,
		UserCode:        code,
		ImageURL:        models.DefaultProfileImage,
		VeganType:       models.VeganTypeVegan,
		SignUpCompleted: true,
		Status:          models.UserStatusActive,
	}
	if err := tx.Create(&user).Error; err != nil {
		return false, fmt.Errorf("failed to seed admin %s: %w", a.Email, err)
	}
	log.Info().Str("email", a.Email).Msg("seeded admin")
	return true, nil
}

func loadRestaurant(tx *gorm.DB, r Restaurant) (bool, error) {
	if found, err := exists(tx, &models.Restaurant{}, "name", r.Name); err != nil || found {
		return false, err
	}
	restaurant := models.Restaurant{
		Name:           r.Name,
		ContactNumber:  r.Contact,
		RestaurantType: r.Type,
		Address: models.Address{
			Province:      r.Province,
			City:          r.City,
			RoadName:      r.RoadName,
			DetailAddress: r.Detail,
		},
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		KakaoMapURL: r.KakaoMapURL,
		Thumbnail:   r.Thumbnail,
	}
	for _, m := range r.Menus {
		restaurant.Menus = append(restaurant.Menus, models.Menu{Name: m.Name, Price: m.Price, Description: m.Description})
	}
	if err := tx.Create(&restaurant).Error; err != nil {
		return false, fmt.Errorf("failed to seed restaurant %s: %w", r.Name, err)
	}
	return true, nil
}

func loadFood(tx *gorm.DB, f Food) (bool, error) {
	if !f.VeganType.Valid() {
		return false, fmt.Errorf("food %s: unknown vegan type %q", f.Name, f.VeganType)
	}
	if found, err := exists(tx, &models.Food{}, "name", f.Name); err != nil || found {
		return false, err
	}
	food := models.Food{
		Name:        f.Name,
		VeganType:   f.VeganType,
		Thumbnail:   f.Thumbnail,
		CookingTime: f.CookingTime,
	}
	for name, amount := range f.Ingredients {
		food.Ingredients = append(food.Ingredients, models.Ingredient{Name: name, Amount: amount})
	}
	for i, step := range f.Steps {
		food.Blocks = append(food.Blocks, models.FoodBlock{Sequence: i + 1, Content: step})
	}
	if err := tx.Create(&food).Error; err != nil {
		return false, fmt.Errorf("failed to seed food %s: %w", f.Name, err)
	}
	return true, nil
}

func loadMagazine(tx *gorm.DB, m Magazine) (bool, error) {
	if found, err := exists(tx, &models.Magazine{}, "title", m.Title); err != nil || found {
		return false, err
	}
	magazine := models.Magazine{Title: m.Title, Editor: m.Editor, Thumbnail: m.Thumbnail}
	for i, block := range m.Blocks {
		magazine.Blocks = append(magazine.Blocks, models.MagazineBlock{Sequence: i + 1, Content: block})
	}
	if err := tx.Create(&magazine).Error; err != nil {
		return false, fmt.Errorf("failed to seed magazine %s: %w", m.Title, err)
	}
	return true, nil
}
