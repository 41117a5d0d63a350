package models

import "time"

type ResetToken struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expiresAt"` // unix milliseconds
}

func (t ResetToken) Expired(now time.Time) bool {
	return now.UnixMilli() > t.ExpiresAt
}
