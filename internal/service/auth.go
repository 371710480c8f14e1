package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

const grantType = "Bearer"

type AuthConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// AuthService issues and validates the application's JWTs and keeps the
// refresh token of each signed-in user.
type AuthService struct {
	db         *gorm.DB
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, cfg AuthConfig) *AuthService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		db:         db,
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        now,
	}
}

// HashProviderID hashes the identity provider's user id, which stands in for
// a password.
func HashProviderID(providerID string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(providerID), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash provider id: %w", err)
	}
	return string(hashed), nil
}

// SignIn authenticates by email and provider id.
func (s *AuthService) SignIn(ctx context.Context, req types.SignInRequest) (*types.SignInResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ? AND status = ?", req.Email, models.UserStatusActive).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.ProviderID)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	return s.IssueTokens(ctx, &user)
}

// IssueTokens creates an access/refresh pair for user and stores the refresh
// token, replacing any previous one.
func (s *AuthService) IssueTokens(ctx context.Context, user *models.User) (*types.SignInResponse, error) {
	now := s.now()
	access, err := s.sign(user.ID, user.Email, user.Role, types.AccessToken, now.Add(s.accessTTL))
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user.ID, user.Email, user.Role, types.RefreshToken, now.Add(s.refreshTTL))
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.Email, refresh); err != nil {
		return nil, err
	}

	return &types.SignInResponse{
		AuthTokens:      types.AuthTokens{GrantType: grantType, AccessToken: access, RefreshToken: refresh},
		SignUpCompleted: user.SignUpCompleted,
	}, nil
}

// Refresh exchanges a stored refresh token for a new pair. A token that is
// still valid is rotated with its original expiry; an expired one that is
// still on record is replaced by a pair with a full lifetime.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*types.AuthTokens, error) {
	claims, err := s.parse(refreshToken, jwt.WithoutClaimsValidation())
	if err != nil || claims.Kind != types.RefreshToken {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	var stored models.Token
	err = s.db.WithContext(ctx).Where("refresh_token = ?", refreshToken).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("refresh token is not recognised")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	user, err := findActiveUser(ctx, s.db, claims.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("invalid refresh token")
		}
		return nil, err
	}
	if user.Email != stored.UserEmail {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	now := s.now()
	expiry := now.Add(s.refreshTTL)
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.After(now) {
		expiry = claims.ExpiresAt.Time
	}

	access, err := s.sign(user.ID, user.Email, user.Role, types.AccessToken, now.Add(s.accessTTL))
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user.ID, user.Email, user.Role, types.RefreshToken, expiry)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.Email, refresh); err != nil {
		return nil, err
	}

	return &types.AuthTokens{GrantType: grantType, AccessToken: access, RefreshToken: refresh}, nil
}

// SignOut forgets the user's refresh token.
func (s *AuthService) SignOut(ctx context.Context, userID uuid.UUID) error {
	var user models.User
	if err := s.db.WithContext(ctx).Select("email").Where("id = ?", userID).First(&user).Error; err != nil {
		return notFoundOr(err, "user not found", "load user")
	}
	if err := s.db.WithContext(ctx).Where("user_email = ?", user.Email).Delete(&models.Token{}).Error; err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// ValidateToken checks an access token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if claims.Kind != types.AccessToken || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SignState returns a short-lived signed value for the OAuth state parameter.
func (s *AuthService) SignState(ttl time.Duration) (string, error) {
	return s.sign(uuid.Nil, "", "", types.OAuthState, s.now().Add(ttl))
}

// VerifyState checks a value produced by SignState.
func (s *AuthService) VerifyState(state string) error {
	claims, err := s.parse(state)
	if err != nil || claims.Kind != types.OAuthState {
		return ErrInvalidToken
	}
	return nil
}

func (s *AuthService) storeRefreshToken(ctx context.Context, email, refresh string) error {
	row := models.Token{UserEmail: email, RefreshToken: refresh}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_email"}},
		DoUpdates: clause.AssignmentColumns([]string{"refresh_token", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) sign(userID uuid.UUID, email string, role models.Role, kind types.TokenKind, expiresAt time.Time) (string, error) {
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Email:  email,
		Role:   string(role),
		Kind:   kind,
	}
	if userID != uuid.Nil {
		claims.Subject = userID.String()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parse(tokenString string, opts ...jwt.ParserOption) (*types.TokenClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
