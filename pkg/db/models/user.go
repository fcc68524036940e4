package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/pkg/enums"
)

// User represents the canonical artist account entity.
type User struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string     `gorm:"column:name;not null"`
	Email         string     `gorm:"column:email;type:text;not null;uniqueIndex:users_email_key"`
	PasswordHash  string     `gorm:"column:password_hash;not null"`
	Role          enums.Role `gorm:"column:role;type:user_role;not null;default:'artist'"`
	EmailVerified bool       `gorm:"column:email_verified;not null;default:false"`
	SpotifyURL    *string    `gorm:"column:spotify_url"`
	AppleMusicURL *string    `gorm:"column:apple_music_url"`
	YouTubeURL    *string    `gorm:"column:youtube_url"`
	Albums        []Album    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
