package models

import "time"

// Response is a staff answer to a complaint. Complaints themselves live in
// the external feed and are never written by this system; responses are the
// only locally owned complaint data, keyed by the feed record ID.
type Response struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ComplaintID string    `gorm:"index;not null" json:"complaint_id"`
	UserID      string    `gorm:"index" json:"user_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}
