package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/vik9386/backend/internal/common"

	"gorm.io/gorm"
)

// ChannelProfile is the public projection of a user viewed as a channel,
// with counts derived from subscription edges.
type ChannelProfile struct {
	Username                  string `json:"username"`
	Email                     string `json:"email"`
	FullName                  string `json:"fullName"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

const channelProfileCacheTTL = 60 * time.Second

// GetChannelProfile resolves a channel by username (case-insensitive) and
// derives subscriber counts plus the viewer-relative subscription flag.
// viewerID 0 means an anonymous viewer.
func (s *Service) GetChannelProfile(ctx context.Context, username string, viewerID uint) (*ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, common.NewValidationError("username is missing")
	}

	if profile, ok := s.cachedChannelProfile(ctx, username, viewerID); ok {
		return profile, nil
	}

	channel, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("channel does not exist")
		}
		return nil, common.NewInternalError("failed to look up channel")
	}

	subscribers, err := s.subscriptions.CountSubscribers(channel.ID)
	if err != nil {
		return nil, common.NewInternalError("failed to aggregate subscriptions")
	}
	subscribedTo, err := s.subscriptions.CountSubscribedTo(channel.ID)
	if err != nil {
		return nil, common.NewInternalError("failed to aggregate subscriptions")
	}

	isSubscribed := false
	if viewerID != 0 {
		isSubscribed, err = s.subscriptions.IsSubscribed(channel.ID, viewerID)
		if err != nil {
			return nil, common.NewInternalError("failed to aggregate subscriptions")
		}
	}

	profile := &ChannelProfile{
		Username:                  channel.Username,
		Email:                     channel.Email,
		FullName:                  channel.FullName,
		Avatar:                    channel.Avatar,
		CoverImage:                channel.CoverImage,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}

	s.storeChannelProfile(ctx, username, viewerID, profile)
	return profile, nil
}

func channelProfileKey(username string, viewerID uint) string {
	return RedisKey("channel", "profile", username, strconv.FormatUint(uint64(viewerID), 10))
}

func (s *Service) cachedChannelProfile(ctx context.Context, username string, viewerID uint) (*ChannelProfile, bool) {
	redisClient := GetRedisClient()
	if redisClient == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	raw, err := redisClient.Get(ctx, channelProfileKey(username, viewerID)).Result()
	if err != nil {
		return nil, false
	}
	var profile ChannelProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

func (s *Service) storeChannelProfile(ctx context.Context, username string, viewerID uint, profile *ChannelProfile) {
	redisClient := GetRedisClient()
	if redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	_ = redisClient.Set(ctx, channelProfileKey(username, viewerID), raw, channelProfileCacheTTL).Err()
}
