package repository

import "github.com/vik9386/backend/internal/model"

type UserStore interface {
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	// FindByUsernameOrEmail resolves a user by either identifier.
	FindByUsernameOrEmail(username, email string) (*model.User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	Create(user *model.User) error
	// UpdateRefreshToken unconditionally replaces the stored refresh token.
	UpdateRefreshToken(userID uint, token string) error
	// RotateRefreshToken swaps oldToken for newToken only if oldToken is still
	// the stored value. Returns false when the slot no longer matches, which
	// is how a replayed or concurrently rotated token is detected.
	RotateRefreshToken(userID uint, oldToken, newToken string) (bool, error)
	ClearRefreshToken(userID uint) error
	UpdatePasswordByID(userID uint, hashedPassword string) error
	UpdateAccountDetails(userID uint, fullName, email string) error
	UpdateAvatar(userID uint, url string) error
	UpdateCoverImage(userID uint, url string) error
}

type SubscriptionStore interface {
	// CountSubscribers counts edges pointing at the channel.
	CountSubscribers(channelID uint) (int64, error)
	// CountSubscribedTo counts channels the user follows.
	CountSubscribedTo(subscriberID uint) (int64, error)
	IsSubscribed(channelID, subscriberID uint) (bool, error)
	Create(sub *model.Subscription) error
}
