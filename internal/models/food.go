package models

import "github.com/google/uuid"

// Food is a recipe.
type Food struct {
	Model
	Name        string       `gorm:"size:255;not null" json:"name"`
	VeganType   VeganType    `gorm:"size:30;not null;index" json:"vegan_type"`
	Thumbnail   string       `gorm:"size:512" json:"thumbnail"`
	CookingTime string       `gorm:"size:50" json:"cooking_time"`
	Ingredients []Ingredient `gorm:"foreignKey:FoodID" json:"ingredients,omitempty"`
	Blocks      []FoodBlock  `gorm:"foreignKey:FoodID" json:"blocks,omitempty"`
}

type Ingredient struct {
	Model
	FoodID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Name   string    `gorm:"size:255;not null" json:"name"`
	Amount string    `gorm:"size:100" json:"amount"`
}

// FoodBlock is one step of a recipe, ordered by Sequence.
type FoodBlock struct {
	Model
	FoodID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Sequence int       `gorm:"not null" json:"sequence"`
	Content  string    `gorm:"type:text;not null" json:"content"`
}

type Magazine struct {
	Model
	Title     string          `gorm:"size:255;not null" json:"title"`
	Editor    string          `gorm:"size:100" json:"editor"`
	Thumbnail string          `gorm:"size:512" json:"thumbnail"`
	Blocks    []MagazineBlock `gorm:"foreignKey:MagazineID" json:"blocks,omitempty"`
}

type MagazineBlock struct {
	Model
	MagazineID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Sequence   int       `gorm:"not null" json:"sequence"`
	Content    string    `gorm:"type:text;not null" json:"content"`
}
