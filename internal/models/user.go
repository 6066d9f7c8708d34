package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User is a staff member who reviews complaints.
// AssignedCategories restricts which complaints the user may see: an empty
// array means unrestricted visibility.
type User struct {
	ID                 string         `gorm:"primaryKey" json:"id"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Name               string         `json:"name"`
	Role               string         `json:"role"` // "staff", "admin"
	AssignedCategories pq.StringArray `gorm:"type:text[]" json:"assigned_categories"`
	CreatedAt          time.Time      `json:"created_at"`
}

// BeforeCreate is a GORM hook generating a UUID for the user when the ID
// has not been set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
