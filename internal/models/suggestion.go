package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SuggestionKind discriminates the payload a Suggestion carries.
type SuggestionKind string

const (
	SuggestionKindRegistration SuggestionKind = "REGISTRATION"
	SuggestionKindModification SuggestionKind = "MODIFICATION"
)

// RegistrationDetail proposes a restaurant that is not listed yet.
type RegistrationDetail struct {
	RestaurantName string `json:"restaurant_name"`
	Address        string `json:"address"`
	Content        string `json:"content"`
}

// ModificationDetail reports wrong information on a listed restaurant.
type ModificationDetail struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Content      string    `json:"content"`
}

// SuggestionDetail holds exactly one variant, matching the owning
// Suggestion's Kind. It is stored as a JSON text column.
type SuggestionDetail struct {
	Registration *RegistrationDetail `json:"registration,omitempty"`
	Modification *ModificationDetail `json:"modification,omitempty"`
}

// Value implements the driver.Valuer interface
func (d SuggestionDetail) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (d *SuggestionDetail) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*d = SuggestionDetail{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported suggestion detail type %T", value)
	}
	return json.Unmarshal(raw, d)
}

type Suggestion struct {
	Model
	UserID     uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Kind       SuggestionKind   `gorm:"size:20;not null;index" json:"kind"`
	Inspection Inspection       `gorm:"size:20;not null" json:"inspection"`
	Detail     SuggestionDetail `gorm:"type:text;not null" json:"detail"`
}

// Validate checks that the payload matches the discriminator.
func (s *Suggestion) Validate() error {
	reg, mod := s.Detail.Registration, s.Detail.Modification
	switch s.Kind {
	case SuggestionKindRegistration:
		if reg == nil || mod != nil {
			return errors.New("registration suggestion requires only a registration payload")
		}
		if strings.TrimSpace(reg.RestaurantName) == "" || strings.TrimSpace(reg.Address) == "" {
			return errors.New("restaurant name and address are required")
		}
	case SuggestionKindModification:
		if mod == nil || reg != nil {
			return errors.New("modification suggestion requires only a modification payload")
		}
		if mod.RestaurantID == uuid.Nil || strings.TrimSpace(mod.Content) == "" {
			return errors.New("restaurant id and content are required")
		}
	default:
		return fmt.Errorf("unknown suggestion kind %q", s.Kind)
	}
	return nil
}
