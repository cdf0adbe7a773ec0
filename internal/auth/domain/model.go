// Package domain contains the identity types the draw service reads.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is owned by the identity service; this service only reads it.
type User struct {
	ID        snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	Username  *string      `gorm:"type:varchar(50);uniqueIndex"`
	Nickname  *string      `gorm:"type:varchar(100)"`
	AvatarURL *string      `gorm:"column:avatar_url;type:varchar(500)"`
	OpenID    *string      `gorm:"column:openid;type:varchar(100);uniqueIndex"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }

// DisplayName prefers the nickname, then the username.
func (u User) DisplayName() string {
	if u.Nickname != nil && *u.Nickname != "" {
		return *u.Nickname
	}
	if u.Username != nil {
		return *u.Username
	}
	return ""
}
