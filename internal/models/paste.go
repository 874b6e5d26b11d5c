package models

import "time"

// Paste is a stored text snippet addressed by a short id.
type Paste struct {
	ID        string `gorm:"primaryKey"`
	Title     string
	Content   string
	CreatedAt time.Time `gorm:"autoCreateTime:false;default:CURRENT_TIMESTAMP"`
	ExpiresIn *int
	Views     *int
}

// ViewCount treats a null views column as zero.
func (p Paste) ViewCount() int {
	if p.Views == nil {
		return 0
	}

	return *p.Views
}

// ExpiresAt reports the instant the paste expires. The second return
// is false when the paste never expires.
func (p Paste) ExpiresAt() (time.Time, bool) {
	if p.ExpiresIn == nil {
		return time.Time{}, false
	}

	return p.CreatedAt.Add(time.Duration(*p.ExpiresIn) * time.Minute), true
}
