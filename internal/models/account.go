package models

import "gorm.io/gorm"

// Account represents a registered MoodBloom user.
//
// Email and Username are stored lowercase and are each globally unique;
// lookups by either must return at most one Account. Nickname is the
// display name and defaults to Username when empty.
type Account struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Nickname   string `json:"nickname" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Bio        string `json:"bio" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	AvatarURL  string `json:"avatar_url" gorm:"type:varchar(512)"`
	AvatarKey  string `json:"-" gorm:"type:varchar(255)"` // storage key of the current avatar object
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash; no json tag for security
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
