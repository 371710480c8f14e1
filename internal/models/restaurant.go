package models

import "github.com/google/uuid"

type RestaurantType string

const (
	RestaurantTypeKorean   RestaurantType = "KOREAN"
	RestaurantTypeWestern  RestaurantType = "WESTERN"
	RestaurantTypeJapanese RestaurantType = "JAPANESE"
	RestaurantTypeChinese  RestaurantType = "CHINESE"
	RestaurantTypeCafe     RestaurantType = "CAFE"
	RestaurantTypeBakery   RestaurantType = "BAKERY"
	RestaurantTypeEtc      RestaurantType = "ETC"
)

type Address struct {
	Province      string `gorm:"size:50" json:"province"`
	City          string `gorm:"size:50" json:"city"`
	RoadName      string `gorm:"size:255" json:"road_name"`
	DetailAddress string `gorm:"size:255" json:"detail_address"`
}

func (a Address) String() string {
	s := a.Province
	for _, part := range []string{a.City, a.RoadName, a.DetailAddress} {
		if part == "" {
			continue
		}
		if s != "" {
			s += " "
		}
		s += part
	}
	return s
}

// Restaurant coordinates are kept as decimal strings as received from the
// map provider; they are parsed on use.
type Restaurant struct {
	Model
	Name           string         `gorm:"size:255;not null;index" json:"name"`
	ContactNumber  string         `gorm:"size:30" json:"contact_number"`
	RestaurantType RestaurantType `gorm:"size:30" json:"restaurant_type"`
	Address        Address        `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Latitude       string         `gorm:"size:30;not null" json:"latitude"`
	Longitude      string         `gorm:"size:30;not null" json:"longitude"`
	KakaoMapURL    string         `gorm:"size:512" json:"kakao_map_url"`
	Thumbnail      string         `gorm:"size:512" json:"thumbnail"`
	Rate           float64        `gorm:"not null;default:0" json:"rate"`
	Menus          []Menu         `gorm:"foreignKey:RestaurantID" json:"menus,omitempty"`
}

type Menu struct {
	Model
	RestaurantID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Price        int64     `json:"price"`
	Description  string    `gorm:"type:text" json:"description"`
	ImageURL     string    `gorm:"size:512" json:"image_url"`
}
