package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/level"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const maxUserCode = 9999

// UserService handles profile, preference and account lifecycle operations.
type UserService struct {
	db     *gorm.DB
	images ImageStore
}

var _ IUserService = (*UserService)(nil)

func NewUserService(db *gorm.DB, images ImageStore) *UserService {
	return &UserService{db: db, images: images}
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*types.UserDetail, error) {
	user, err := findActiveUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return toUserDetail(user)
}

func (s *UserService) GetHome(ctx context.Context, userID uuid.UUID) (*types.HomeUserInfo, error) {
	user, err := findActiveUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	lvl, err := level.Classify(user.Point)
	if err != nil {
		return nil, fmt.Errorf("failed to classify level: %w", err)
	}
	return &types.HomeUserInfo{Nickname: user.Nickname, Level: lvl}, nil
}

func (s *UserService) GetMyPage(ctx context.Context, userID uuid.UUID) (*types.MyPageInfo, error) {
	user, err := findActiveUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	lvl, err := level.Classify(user.Point)
	if err != nil {
		return nil, fmt.Errorf("failed to classify level: %w", err)
	}

	info := &types.MyPageInfo{
		Nickname:  user.Nickname,
		UserCode:  user.UserCode,
		Email:     user.Email,
		ImageURL:  user.ImageURL,
		VeganType: user.VeganType,
		Point:     user.Point,
		Level:     lvl,
	}
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&info.ReviewCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	if err := db.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&info.BookmarkCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return info, nil
}

func (s *UserService) UpdateVeganType(ctx context.Context, userID uuid.UUID, veganType models.VeganType) error {
	if !veganType.Valid() {
		return apperr.InvalidInput("unknown vegan type")
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND status = ?", userID, models.UserStatusActive).
		Update("vegan_type", veganType)
	if res.Error != nil {
		return fmt.Errorf("failed to update vegan type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// CompleteVeganTest records the test result. The first completion earns a
// point.
func (s *UserService) CompleteVeganTest(ctx context.Context, userID uuid.UUID, veganType models.VeganType) error {
	if !veganType.Valid() {
		return apperr.InvalidInput("unknown vegan type")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findActiveUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("vegan_type", veganType).Error; err != nil {
			return fmt.Errorf("failed to save vegan test: %w", err)
		}
		first, err := flipFlag(tx, &models.User{}, user.ID, "vegan_test_completed", true)
		if err != nil || !first {
			return err
		}
		return adjustPoints(tx, user.ID, rewardVeganTest)
	})
}

func (s *UserService) GetAlarmSetting(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := findActiveUser(ctx, s.db, userID)
	if err != nil {
		return false, err
	}
	return user.AlarmSetting, nil
}

// ToggleAlarmSetting flips the push preference and returns the new value.
func (s *UserService) ToggleAlarmSetting(ctx context.Context, userID uuid.UUID) (bool, error) {
	var enabled bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findActiveUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		enabled = !user.AlarmSetting
		return tx.Model(user).Update("alarm_setting", enabled).Error
	})
	return enabled, err
}

func (s *UserService) UpdateFcmToken(ctx context.Context, userID uuid.UUID, token string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND status = ?", userID, models.UserStatusActive).
		Update("fcm_token", token)
	if res.Error != nil {
		return fmt.Errorf("failed to update fcm token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// CompleteSignUp fills in the profile chosen after the first login.
func (s *UserService) CompleteSignUp(ctx context.Context, userID uuid.UUID, req types.SignUpRequest, file *multipart.FileHeader) (*types.UserDetail, error) {
	if !req.VeganType.Valid() {
		return nil, apperr.InvalidInput("unknown vegan type")
	}
	user, err := findActiveUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user.SignUpCompleted {
		return nil, apperr.Conflict("sign-up is already completed")
	}

	imageURL, err := s.registerImage(ctx, file, req.IsDefaultImage)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := GenerateUserCode(ctx, tx, req.Nickname)
		if err != nil {
			return err
		}
		user.Nickname = req.Nickname
		user.UserCode = code
		user.VeganType = req.VeganType
		user.ImageURL = imageURL
		user.SignUpCompleted = true
		if err := tx.Model(user).Select("nickname", "user_code", "vegan_type", "image_url", "sign_up_completed").
			Updates(user).Error; err != nil {
			return fmt.Errorf("failed to save sign-up: %w", err)
		}
		return s.rewardProfileImage(tx, user)
	})
	if err != nil {
		s.discardImage(ctx, imageURL)
		return nil, err
	}

	return s.GetUser(ctx, userID)
}

// UpdateProfile changes nickname and image. A new nickname gets a new user
// code; the previous uploaded image is removed once the change is saved.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest, file *multipart.FileHeader) (*types.UserDetail, error) {
	user, err := findActiveUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.registerImage(ctx, file, req.IsDefaultImage)
	if err != nil {
		return nil, err
	}
	previousImage := user.ImageURL

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Nickname != user.Nickname {
			code, err := GenerateUserCode(ctx, tx, req.Nickname)
			if err != nil {
				return err
			}
			user.Nickname = req.Nickname
			user.UserCode = code
		}
		user.ImageURL = imageURL
		if err := tx.Model(user).Select("nickname", "user_code", "image_url").Updates(user).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return s.rewardProfileImage(tx, user)
	})
	if err != nil {
		s.discardImage(ctx, imageURL)
		return nil, err
	}

	if previousImage != imageURL {
		s.discardImage(ctx, previousImage)
	}
	return s.GetUser(ctx, userID)
}

// GenerateUserCode returns the next free four-digit code for nickname.
func GenerateUserCode(ctx context.Context, tx *gorm.DB, nickname string) (string, error) {
	var codes []string
	err := tx.WithContext(ctx).Model(&models.User{}).
		Where("nickname = ? AND user_code <> ''", nickname).
		Order("user_code DESC").Limit(1).
		Pluck("user_code", &codes).Error
	if err != nil {
		return "", fmt.Errorf("failed to look up user code: %w", err)
	}

	next := 1
	if len(codes) > 0 {
		n, err := strconv.Atoi(codes[0])
		if err != nil {
			return "", fmt.Errorf("corrupt user code %q: %w", codes[0], err)
		}
		next = n + 1
	}
	if next > maxUserCode {
		return "", apperr.Conflict("this nickname is no longer available")
	}
	return fmt.Sprintf("%04d", next), nil
}

// Withdraw anonymizes the account one-way: identifying fields are replaced
// with salted hashes and the refresh token is removed.
func (s *UserService) Withdraw(ctx context.Context, userID uuid.UUID) error {
	user, err := findActiveUser(ctx, s.db, userID)
	if err != nil {
		return err
	}

	email, err := anonymize(user.Email)
	if err != nil {
		return err
	}
	password, err := anonymize(user.Password)
	if err != nil {
		return err
	}
	providerID, err := anonymize(user.ProviderID)
	if err != nil {
		return err
	}

	previousImage := user.ImageURL
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_email = ?", user.Email).Delete(&models.Token{}).Error; err != nil {
			return fmt.Errorf("failed to delete refresh token: %w", err)
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
			"email":         email + "@email.com",
			"password":      password,
			"provider_id":   providerID,
			"nickname":      models.DeletedNickname,
			"image_url":     models.DefaultProfileImage,
			"fcm_token":     "",
			"alarm_setting": false,
			"status":        models.UserStatusDeleted,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to withdraw user: %w", err)
	}

	s.discardImage(ctx, previousImage)
	log.Ctx(ctx).Info().Str("user_id", userID.String()).Msg("user withdrawn")
	return nil
}

// registerImage applies the image rule: the default image needs no file, a
// custom one needs a file, and anything else is contradictory.
func (s *UserService) registerImage(ctx context.Context, file *multipart.FileHeader, isDefault bool) (string, error) {
	switch {
	case file == nil && isDefault:
		return models.DefaultProfileImage, nil
	case file != nil && !isDefault:
		return s.images.Upload(ctx, profileImageDir, file)
	default:
		return "", apperr.InvalidInput("choose either the default image or an uploaded file")
	}
}

func (s *UserService) rewardProfileImage(tx *gorm.DB, user *models.User) error {
	if !user.HasCustomImage() {
		return nil
	}
	first, err := flipFlag(tx, &models.User{}, user.ID, "custom_profile_completed", true)
	if err != nil || !first {
		return err
	}
	return adjustPoints(tx, user.ID, rewardProfileImage)
}

// discardImage deletes an uploaded image without failing the caller.
func (s *UserService) discardImage(ctx context.Context, url string) {
	if url == "" || url == models.DefaultProfileImage {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("url", url).Msg("failed to delete profile image")
	}
}

func anonymize(value string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	sum := sha256.Sum256(append([]byte(value), salt...))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func toUserDetail(user *models.User) (*types.UserDetail, error) {
	lvl, err := level.Classify(user.Point)
	if err != nil {
		return nil, apperr.Internal("invalid point balance", err)
	}
	return &types.UserDetail{
		ID:           user.ID,
		Email:        user.Email,
		Nickname:     user.Nickname,
		UserCode:     user.UserCode,
		ImageURL:     user.ImageURL,
		VeganType:    user.VeganType,
		Provider:     user.Provider,
		Point:        user.Point,
		Level:        lvl,
		AlarmSetting: user.AlarmSetting,
	}, nil
}
