package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model is embedded by every entity. IDs are stored as varchar(36) so the
// same schema works on postgres and sqlite.
type Model struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random ID when none was set.
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// All returns every persisted model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Token{},
		&Restaurant{},
		&Menu{},
		&Review{},
		&ReviewImage{},
		&Recommendation{},
		&RecommendationReward{},
		&Report{},
		&Bookmark{},
		&Alarm{},
		&Food{},
		&Ingredient{},
		&FoodBlock{},
		&Magazine{},
		&MagazineBlock{},
		&Suggestion{},
	}
}
