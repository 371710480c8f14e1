package models

// DefaultProfileImage is served for users without a custom photo.
const DefaultProfileImage = "/profile.png"

// DeletedNickname replaces the nickname of a withdrawn user.
const DeletedNickname = "Unknown"

type VeganType string

const (
	VeganTypeUnselected  VeganType = "UNSELECTED"
	VeganTypeVegan       VeganType = "VEGAN"
	VeganTypeLacto       VeganType = "LACTO"
	VeganTypeOvo         VeganType = "OVO"
	VeganTypeLactoOvo    VeganType = "LACTO_OVO"
	VeganTypePescetarian VeganType = "PESCETARIAN"
	VeganTypePollotarian VeganType = "POLLOTARIAN"
	VeganTypeFlexitarian VeganType = "FLEXITARIAN"
)

func (v VeganType) Valid() bool {
	switch v {
	case VeganTypeUnselected, VeganTypeVegan, VeganTypeLacto, VeganTypeOvo, VeganTypeLactoOvo,
		VeganTypePescetarian, VeganTypePollotarian, VeganTypeFlexitarian:
		return true
	}
	return false
}

type Provider string

const (
	ProviderLocal Provider = "LOCAL"
	ProviderKakao Provider = "KAKAO"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusDeleted UserStatus = "DELETE"
)

type User struct {
	Model
	Email                  string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password               string     `gorm:"not null" json:"-"`
	Provider               Provider   `gorm:"size:20;not null" json:"provider"`
	ProviderID             string     `gorm:"size:255" json:"-"`
	Role                   Role       `gorm:"size:20;not null" json:"role"`
	Nickname               string     `gorm:"size:50;index" json:"nickname"`
	UserCode               string     `gorm:"size:4" json:"user_code"`
	ImageURL               string     `gorm:"size:512" json:"image_url"`
	VeganType              VeganType  `gorm:"size:30;not null" json:"vegan_type"`
	Point                  int        `gorm:"not null;check:point >= 0" json:"point"`
	AlarmSetting           bool       `gorm:"not null" json:"alarm_setting"`
	FcmToken               string     `gorm:"size:512;index" json:"-"`
	SignUpCompleted        bool       `gorm:"not null" json:"sign_up_completed"`
	VeganTestCompleted     bool       `gorm:"not null" json:"vegan_test_completed"`
	CustomProfileCompleted bool       `gorm:"not null" json:"custom_profile_completed"`
	Status                 UserStatus `gorm:"size:20;not null;index" json:"status"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasCustomImage reports whether the user's image is an uploaded photo.
func (u *User) HasCustomImage() bool {
	return u.ImageURL != "" && u.ImageURL != DefaultProfileImage
}

// Token stores the refresh token issued at sign-in, one row per user.
type Token struct {
	Model
	UserEmail    string `gorm:"size:255;uniqueIndex;not null"`
	RefreshToken string `gorm:"size:1024;index;not null"`
}
