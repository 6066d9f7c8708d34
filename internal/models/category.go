package models

// Category is one member of the canonical complaint-category vocabulary.
// The vocabulary is ordered; Position controls how clients list it.
type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Position int    `json:"position"`
}
