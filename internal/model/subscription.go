package model

import "time"

// Subscription is a directed edge: SubscriberID follows ChannelID.
// This service only reads the table to derive channel-profile counts.
type Subscription struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SubscriberID uint `json:"subscriber" gorm:"not null;index;uniqueIndex:idx_sub_edge"`
	ChannelID    uint `json:"channel" gorm:"not null;index;uniqueIndex:idx_sub_edge"`
}
