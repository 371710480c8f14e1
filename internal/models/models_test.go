package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidReviewRate(t *testing.T) {
	for _, r := range []float64{0.5, 1, 2.5, 4.5, 5} {
		assert.True(t, ValidReviewRate(r), "rate %v", r)
	}
	for _, r := range []float64{0, 0.3, 4.75, 5.5, -1} {
		assert.False(t, ValidReviewRate(r), "rate %v", r)
	}
}

func TestSuggestionValidate(t *testing.T) {
	restaurantID := uuid.New()
	tests := []struct {
		name    string
		s       Suggestion
		wantErr bool
	}{
		{
			name: "registration",
			s: Suggestion{Kind: SuggestionKindRegistration, Detail: SuggestionDetail{
				Registration: &RegistrationDetail{RestaurantName: "Plant Cafe", Address: "Seoul Mapo-gu"},
			}},
		},
		{
			name: "modification",
			s: Suggestion{Kind: SuggestionKindModification, Detail: SuggestionDetail{
				Modification: &ModificationDetail{RestaurantID: restaurantID, Content: "closed on Mondays"},
			}},
		},
		{
			name: "kind does not match payload",
			s: Suggestion{Kind: SuggestionKindRegistration, Detail: SuggestionDetail{
				Modification: &ModificationDetail{RestaurantID: restaurantID, Content: "x"},
			}},
			wantErr: true,
		},
		{
			name: "both payloads",
			s: Suggestion{Kind: SuggestionKindModification, Detail: SuggestionDetail{
				Registration: &RegistrationDetail{RestaurantName: "a", Address: "b"},
				Modification: &ModificationDetail{RestaurantID: restaurantID, Content: "x"},
			}},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			s:       Suggestion{Kind: "OTHER"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSuggestionDetailRoundTripsThroughDriver(t *testing.T) {
	in := SuggestionDetail{Registration: &RegistrationDetail{RestaurantName: "Green Table", Address: "Busan"}}
	v, err := in.Value()
	require.NoError(t, err)

	var out SuggestionDetail
	require.NoError(t, out.Scan([]byte(v.(string))))
	require.NotNil(t, out.Registration)
	assert.Equal(t, "Green Table", out.Registration.RestaurantName)
	assert.Nil(t, out.Modification)

	assert.Error(t, out.Scan(42))
}

func TestAddressString(t *testing.T) {
	a := Address{Province: "Seoul", City: "Jongno-gu", RoadName: "Sejong-daero 110"}
	assert.Equal(t, "Seoul Jongno-gu Sejong-daero 110", a.String())
}

func TestUserHasCustomImage(t *testing.T) {
	u := User{ImageURL: DefaultProfileImage}
	assert.False(t, u.HasCustomImage())
	u.ImageURL = "https://bucket.s3.ap-northeast-2.amazonaws.com/profile/a.png"
	assert.True(t, u.HasCustomImage())
}

func TestEnumValuesAreUpperCase(t *testing.T) {
	assert.Equal(t, "KAKAO", string(ProviderKakao))
	assert.Equal(t, "LOCAL", string(ProviderLocal))
	assert.Equal(t, "ADMIN", string(RoleAdmin))
	assert.Equal(t, "DELETE", string(UserStatusDeleted))
}
