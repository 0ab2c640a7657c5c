package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/vik9386/backend/internal/common"
	"github.com/vik9386/backend/internal/model"
	"github.com/vik9386/backend/internal/utils"

	"gorm.io/gorm"
)

// UpdateAccountDetails replaces the caller's full name and email.
func (s *Service) UpdateAccountDetails(userID uint, fullName, email string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" {
		return nil, common.NewValidationError("all fields are required")
	}
	if ok, msg := utils.ValidateEmail(email); !ok {
		return nil, common.NewValidationError(msg)
	}

	if err := s.users.UpdateAccountDetails(userID, fullName, email); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError("email already in use")
		}
		return nil, common.NewInternalError("failed to update account details")
	}

	return s.CurrentUser(userID)
}

// UpdateAvatar uploads a staged avatar file and persists its URL.
func (s *Service) UpdateAvatar(ctx context.Context, userID uint, localPath string) (*model.User, error) {
	return s.updateImage(ctx, userID, localPath, "avatar", s.users.UpdateAvatar)
}

// UpdateCoverImage uploads a staged cover image file and persists its URL.
func (s *Service) UpdateCoverImage(ctx context.Context, userID uint, localPath string) (*model.User, error) {
	return s.updateImage(ctx, userID, localPath, "cover image", s.users.UpdateCoverImage)
}

func (s *Service) updateImage(ctx context.Context, userID uint, localPath, kind string, persist func(uint, string) error) (*model.User, error) {
	if localPath == "" {
		return nil, common.NewValidationError(kind + " file is missing")
	}

	res, err := s.uploader.Upload(ctx, localPath)
	if err != nil {
		log.Printf("%s upload failed: %v", kind, err)
		return nil, common.NewValidationError("error while uploading " + kind)
	}
	if res == nil || res.URL == "" {
		return nil, common.NewValidationError("error while uploading " + kind)
	}

	if err := persist(userID, res.URL); err != nil {
		return nil, common.NewInternalError("failed to update " + kind)
	}

	return s.CurrentUser(userID)
}
