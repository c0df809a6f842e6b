package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`

	Role Role `gorm:"type:text;default:'user'" json:"role"`

	// Saved set: bookmarked property IDs (Postgres text array)
	SavedProperties pq.StringArray `gorm:"type:text[]" json:"savedProperties"`
}

// HasSaved reports whether propertyID is in the user's saved set
func (u *User) HasSaved(propertyID string) bool {
	for _, id := range u.SavedProperties {
		if id == propertyID {
			return true
		}
	}
	return false
}

// ToggleSaved adds propertyID to the saved set if absent, removes it if present
func (u *User) ToggleSaved(propertyID string) {
	if u.HasSaved(propertyID) {
		filtered := make(pq.StringArray, 0, len(u.SavedProperties))
		for _, id := range u.SavedProperties {
			if id != propertyID {
				filtered = append(filtered, id)
			}
		}
		u.SavedProperties = filtered
		return
	}
	u.SavedProperties = append(u.SavedProperties, propertyID)
}
