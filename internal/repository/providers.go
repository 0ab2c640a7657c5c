package repository

import (
	"gorm.io/gorm"
)

type Repositories struct {
	User         UserStore
	Subscription SubscriptionStore
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionStore {
	return &SubscriptionRepository{db: db}
}

func NewRepositories(user UserStore, subscription SubscriptionStore) *Repositories {
	return &Repositories{
		User:         user,
		Subscription: subscription,
	}
}
