package models

import "github.com/google/uuid"

type ContentType string

const (
	ContentTypeRestaurant ContentType = "RESTAURANT"
	ContentTypeRecipe     ContentType = "RECIPE"
	ContentTypeMagazine   ContentType = "MAGAZINE"
)

func (c ContentType) Valid() bool {
	return c == ContentTypeRestaurant || c == ContentTypeRecipe || c == ContentTypeMagazine
}

type Bookmark struct {
	Model
	UserID      uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_bookmark_owner" json:"user_id"`
	ContentID   uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_bookmark_owner" json:"content_id"`
	ContentType ContentType `gorm:"size:20;not null;uniqueIndex:idx_bookmark_owner" json:"content_type"`
}

type AlarmType string

const (
	AlarmTypeMap         AlarmType = "MAP"
	AlarmTypeTips        AlarmType = "TIPS"
	AlarmTypeMyPage      AlarmType = "MYPAGE"
	AlarmTypeInformation AlarmType = "INFORMATION"
)

func (a AlarmType) Valid() bool {
	switch a {
	case AlarmTypeMap, AlarmTypeTips, AlarmTypeMyPage, AlarmTypeInformation:
		return true
	}
	return false
}

// Alarm is a persisted notification history entry.
type Alarm struct {
	Model
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	AlarmType AlarmType `gorm:"size:20;not null" json:"alarm_type"`
	ItemID    string    `gorm:"size:36" json:"item_id"`
	Content   string    `gorm:"type:text" json:"content"`
	IsRead    bool      `gorm:"not null;index" json:"is_read"`
}
