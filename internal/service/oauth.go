package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	kakaoAuthURL     = "https://kauth.kakao.com/oauth/authorize"
	kakaoTokenURL    = "https://kauth.kakao.com/oauth/token"
	kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"

	oauthStateTTL = 10 * time.Minute
)

type KakaoConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Endpoint and UserInfoURL default to Kakao's production hosts.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

type kakaoUser struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email string `json:"email"`
	} `json:"kakao_account"`
}

// OAuthService signs users in through Kakao and issues application tokens.
type OAuthService struct {
	db          *gorm.DB
	auth        *AuthService
	oauth       *oauth2.Config
	userInfoURL string
}

var _ IOAuthService = (*OAuthService)(nil)

func NewOAuthService(db *gorm.DB, auth *AuthService, cfg KakaoConfig) *OAuthService {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = oauth2.Endpoint{AuthURL: kakaoAuthURL, TokenURL: kakaoTokenURL, AuthStyle: oauth2.AuthStyleInParams}
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = kakaoUserInfoURL
	}
	return &OAuthService{
		db:   db,
		auth: auth,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"account_email"},
		},
		userInfoURL: userInfoURL,
	}
}

// AuthorizeURL returns the consent page URL with a signed state.
func (s *OAuthService) AuthorizeURL() (string, error) {
	state, err := s.auth.SignState(oauthStateTTL)
	if err != nil {
		return "", err
	}
	return s.oauth.AuthCodeURL(state), nil
}

// Callback completes the authorization-code flow, creating the user on first
// login.
func (s *OAuthService) Callback(ctx context.Context, code, state string) (*types.SignInResponse, error) {
	if code == "" {
		return nil, apperr.InvalidInput("authorization code is required")
	}
	if err := s.auth.VerifyState(state); err != nil {
		return nil, apperr.Unauthorized("invalid oauth state")
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, apperr.External("failed to exchange authorization code", err)
	}

	profile, err := s.fetchUser(ctx, s.oauth.Client(ctx, tok))
	if err != nil {
		return nil, err
	}
	if profile.KakaoAccount.Email == "" {
		return nil, apperr.InvalidInput("kakao account has no email; email consent is required")
	}

	user, err := s.findOrCreate(ctx, profile.KakaoAccount.Email, strconv.FormatInt(profile.ID, 10))
	if err != nil {
		return nil, err
	}
	return s.auth.IssueTokens(ctx, user)
}

func (s *OAuthService) fetchUser(ctx context.Context, client *http.Client) (*kakaoUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user info request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, apperr.External("failed to fetch kakao profile", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, apperr.External("failed to fetch kakao profile", fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var u kakaoUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, apperr.External("failed to decode kakao profile", err)
	}
	return &u, nil
}

func (s *OAuthService) findOrCreate(ctx context.Context, email, providerID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		if !user.IsActive() {
			return nil, apperr.Forbidden("account has been withdrawn")
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	hashed, err := HashProviderID(providerID)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Email:        email,
		Password:     hashed,
		Provider:     models.ProviderKakao,
		ProviderID:   providerID,
		Role:         models.RoleUser,
		ImageURL:     models.DefaultProfileImage,
		VeganType:    models.VeganTypeUnselected,
		AlarmSetting: true,
		Status:       models.UserStatusActive,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Ctx(ctx).Info().Str("user_id", user.ID.String()).Msg("created user from kakao login")
	return &user, nil
}
