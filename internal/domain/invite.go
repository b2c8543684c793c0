package domain

import "time"

// Invite is a single-use, time-limited registration token. UsedAt is set once
// at consumption and never cleared.
type Invite struct {
	ID        int32      `json:"id"`
	Token     string     `json:"token"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Notes     string     `json:"notes"`
	CreatedBy *int32     `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

func (i *Invite) IsUsed() bool {
	return i.UsedAt != nil
}

func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
