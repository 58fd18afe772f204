package model

import "time"

// WebhookEvent records payment-provider events that were already
// processed, so redelivered webhooks are handled at most once.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	Provider    string `gorm:"size:16;index"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
