package service

import (
	"github.com/vik9386/backend/internal/repository"
	"github.com/vik9386/backend/internal/uploader"
)

// Service bundles the stores and the media uploader behind every operation.
type Service struct {
	users         repository.UserStore
	subscriptions repository.SubscriptionStore
	uploader      uploader.Uploader
}

func New(repos *repository.Repositories, up uploader.Uploader) *Service {
	return &Service{
		users:         repos.User,
		subscriptions: repos.Subscription,
		uploader:      up,
	}
}
