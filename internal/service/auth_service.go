package service

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/vik9386/backend/internal/common"
	"github.com/vik9386/backend/internal/model"
	"github.com/vik9386/backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	// Local paths produced by the upload-staging middleware.
	AvatarPath     string
	CoverImagePath string
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResult struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// Register creates a user after uniqueness checks and a mandatory avatar
// upload. The returned record is safe to serialize: password and refresh
// token never leave the model.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	if in.Username == "" || in.Email == "" || in.FullName == "" || strings.TrimSpace(in.Password) == "" {
		discardStaged(in.AvatarPath, in.CoverImagePath)
		return nil, common.NewValidationError("all fields are required")
	}
	if ok, msg := utils.ValidateUsername(in.Username); !ok {
		discardStaged(in.AvatarPath, in.CoverImagePath)
		return nil, common.NewValidationError(msg)
	}
	if ok, msg := utils.ValidateEmail(in.Email); !ok {
		discardStaged(in.AvatarPath, in.CoverImagePath)
		return nil, common.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(in.Password); !ok {
		discardStaged(in.AvatarPath, in.CoverImagePath)
		return nil, common.NewValidationError(msg)
	}

	exists, err := s.users.ExistsByUsernameOrEmail(in.Username, in.Email)
	if err != nil {
		discardStaged(in.AvatarPath, in.CoverImagePath)
		return nil, common.NewInternalError("failed to check existing users")
	}
	if exists {
		discardStaged(in.AvatarPath, in.CoverImagePath)
		return nil, common.NewConflictError("user with username or email already exists")
	}

	if in.AvatarPath == "" {
		discardStaged(in.CoverImagePath)
		return nil, common.NewValidationError("avatar file is required")
	}

	avatar, err := s.uploader.Upload(ctx, in.AvatarPath)
	// A cover image is optional and a failed cover upload degrades to "none";
	// the uploader has already removed the staged file either way.
	cover, coverErr := s.uploader.Upload(ctx, in.CoverImagePath)
	if coverErr != nil {
		log.Printf("cover image upload failed, continuing without: %v", coverErr)
	}

	if err != nil || avatar == nil || avatar.URL == "" {
		if err != nil {
			log.Printf("avatar upload failed: %v", err)
		}
		return nil, common.NewValidationError("avatar file is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewInternalError("failed to process password")
	}

	user := &model.User{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Password: string(hashed),
		Avatar:   avatar.URL,
	}
	if cover != nil {
		user.CoverImage = cover.URL
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError("user with username or email already exists")
		}
		log.Printf("create user failed: %v", err)
		return nil, common.NewInternalError("something went wrong while registering the user")
	}

	return user, nil
}

// Login verifies credentials and issues a fresh access/refresh pair, storing
// the refresh token in the user's single slot.
func (s *Service) Login(in LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, common.NewValidationError("username and email are required")
	}
	if in.Password == "" {
		return nil, common.NewValidationError("password is required")
	}

	user, err := s.users.FindByUsernameOrEmail(in.Username, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("user does not exist")
		}
		return nil, common.NewInternalError("failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, common.NewUnauthorizedError("incorrect password")
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRefreshToken(user.ID, pair.RefreshToken); err != nil {
		return nil, common.NewInternalError("failed to persist session")
	}
	user.RefreshToken = pair.RefreshToken

	return &LoginResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout clears the stored refresh token. The user record itself survives.
func (s *Service) Logout(userID uint) error {
	if err := s.users.ClearRefreshToken(userID); err != nil {
		return common.NewInternalError("failed to log out")
	}
	return nil
}

// Refresh rotates the single-slot refresh token. A token that no longer
// matches the stored slot (already rotated, logged out, or raced by a
// concurrent refresh) is rejected as unauthorized.
func (s *Service) Refresh(incomingToken string) (*TokenPair, error) {
	if incomingToken == "" {
		return nil, common.NewUnauthorizedError("unauthorized request")
	}

	claims, err := utils.ParseRefreshToken(incomingToken)
	if err != nil {
		return nil, common.NewUnauthorizedError("invalid refresh token")
	}

	user, err := s.users.FindByID(claims.ID)
	if err != nil {
		return nil, common.NewUnauthorizedError("invalid refresh token")
	}

	if user.RefreshToken == "" || user.RefreshToken != incomingToken {
		return nil, common.NewUnauthorizedError("refresh token expired or used")
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	rotated, err := s.users.RotateRefreshToken(user.ID, incomingToken, pair.RefreshToken)
	if err != nil {
		return nil, common.NewInternalError("failed to persist session")
	}
	if !rotated {
		// Lost the race against another rotation of the same token.
		return nil, common.NewUnauthorizedError("refresh token expired or used")
	}

	return pair, nil
}

// ChangePassword swaps the caller's password after verifying the old one.
// A wrong old password leaves the stored credentials untouched.
func (s *Service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("user does not exist")
		}
		return common.NewInternalError("failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return common.NewValidationError("invalid old password")
	}

	if ok, msg := utils.ValidatePassword(newPassword); !ok {
		return common.NewValidationError(msg)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewInternalError("failed to process password")
	}

	if err := s.users.UpdatePasswordByID(userID, string(hashed)); err != nil {
		return common.NewInternalError("failed to update password")
	}
	return nil
}

// CurrentUser returns the authenticated caller's record.
func (s *Service) CurrentUser(userID uint) (*model.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("user does not exist")
		}
		return nil, common.NewInternalError("failed to look up user")
	}
	return user, nil
}

func (s *Service) issueTokenPair(user *model.User) (*TokenPair, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, user.Email, user.FullName, utils.AccessTokenTTL())
	if err != nil {
		return nil, common.NewInternalError("something went wrong while generating tokens")
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, utils.RefreshTokenTTL())
	if err != nil {
		return nil, common.NewInternalError("something went wrong while generating tokens")
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// discardStaged removes staged temp files on paths that never reached the
// uploader.
func discardStaged(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}
