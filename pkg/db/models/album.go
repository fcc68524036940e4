package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/pkg/enums"
)

// Album represents a release owned by a single artist account. Fingerprint is
// the stable public identifier; it also keys the release's object-storage
// prefix, so it never changes after creation.
type Album struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Fingerprint     string            `gorm:"column:fingerprint;not null;uniqueIndex:albums_fingerprint_key"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Title           string            `gorm:"column:title;not null;default:''"`
	UPC             *string           `gorm:"column:upc"`
	PrimaryArtist   string            `gorm:"column:primary_artist;not null;default:''"`
	SecondaryArtist *string           `gorm:"column:secondary_artist"`
	Language        *string           `gorm:"column:language"`
	MainGenre       *string           `gorm:"column:main_genre"`
	SubGenre        *string           `gorm:"column:sub_genre"`
	ReleaseDate     *time.Time        `gorm:"column:release_date;type:date"`
	ProductionYear  *int              `gorm:"column:production_year"`
	Label           *string           `gorm:"column:label"`
	ReleasePartner  string            `gorm:"column:release_partner;not null;default:'Default'"`
	Status          enums.AlbumStatus `gorm:"column:status;type:album_status;not null;default:'draft'"`
	Deleted         bool              `gorm:"column:deleted;not null;default:false"`
	ArtFileFormat   *string           `gorm:"column:art_file_format"`
	Songs           []Song            `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// HasCoverArt reports whether art has ever been uploaded for the album.
func (a Album) HasCoverArt() bool {
	return a.ArtFileFormat != nil && *a.ArtFileFormat != ""
}
