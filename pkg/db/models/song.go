package models

import (
	"time"

	"github.com/google/uuid"
)

// Song represents a single track inside an album.
type Song struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Fingerprint      string     `gorm:"column:fingerprint;not null;uniqueIndex:songs_fingerprint_key"`
	AlbumID          uuid.UUID  `gorm:"column:album_id;type:uuid;not null;index"`
	Title            string     `gorm:"column:title;not null;default:''"`
	Explicit         bool       `gorm:"column:explicit;not null;default:false"`
	ISRC             *string    `gorm:"column:isrc"`
	PrimaryArtist    *string    `gorm:"column:primary_artist"`
	SecondaryArtist  *string    `gorm:"column:secondary_artist"`
	Composer         *string    `gorm:"column:composer"`
	Lyricist         *string    `gorm:"column:lyricist"`
	Language         *string    `gorm:"column:language"`
	MainGenre        *string    `gorm:"column:main_genre"`
	SubGenre         *string    `gorm:"column:sub_genre"`
	MasterFileFormat *string    `gorm:"column:master_file_format"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// HasMaster reports whether a master audio file has been uploaded.
func (s Song) HasMaster() bool {
	return s.MasterFileFormat != nil && *s.MasterFileFormat != ""
}
