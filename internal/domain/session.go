package domain

import "time"

// Session maps an opaque token to the user it authenticates. Tokens carry
// a fixed expiry from creation; multiple concurrent sessions per user are
// allowed.
type Session struct {
	Token     string    `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
