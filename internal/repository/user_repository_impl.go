package repository

import (
	"strings"

	"github.com/vik9386/backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", strings.ToLower(username)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsernameOrEmail(username, email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ? OR email = ?", strings.ToLower(username), email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("username = ? OR email = ?", strings.ToLower(username), email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) UpdateRefreshToken(userID uint, token string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("refresh_token", token).Error
}

func (r *UserRepository) RotateRefreshToken(userID uint, oldToken, newToken string) (bool, error) {
	// Compare-and-swap: of two concurrent rotations with the same token the
	// first one wins and the second sees zero rows affected.
	res := r.db.Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", userID, oldToken).
		Update("refresh_token", newToken)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepository) ClearRefreshToken(userID uint) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("refresh_token", "").Error
}

func (r *UserRepository) UpdatePasswordByID(userID uint, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

func (r *UserRepository) UpdateAccountDetails(userID uint, fullName, email string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"full_name": fullName, "email": email}).Error
}

func (r *UserRepository) UpdateAvatar(userID uint, url string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("avatar", url).Error
}

func (r *UserRepository) UpdateCoverImage(userID uint, url string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("cover_image", url).Error
}
