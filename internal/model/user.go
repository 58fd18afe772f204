package model

import "time"

// SessionTokenTTL is how long a session token stays valid after issue.
const SessionTokenTTL = 30 * 24 * time.Hour

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`

	// A user may hold several concurrent sessions, one token each.
	Tokens []SessionToken `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SessionToken struct {
	Token     string `gorm:"primaryKey;size:64;not null"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
}

// ExpiresAt returns the instant the token stops being valid.
func (t *SessionToken) ExpiresAt() time.Time {
	return t.CreatedAt.Add(SessionTokenTTL)
}

// Expired reports whether the token is past its lifetime at the given
// instant. Expired tokens are also removed by the pruning sweep.
func (t *SessionToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt())
}
