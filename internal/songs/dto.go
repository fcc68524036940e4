package songs

import (
	"time"

	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/pkg/db/models"
	"github.com/soundrift/soundrift-backend/pkg/types"
)

// UpdateSongRequest carries the tri-state PATCH payload. Absent fields stay
// untouched, explicit nulls clear (deletable fields only), values overwrite.
type UpdateSongRequest struct {
	Title           types.Optional[string] `json:"title"`
	PrimaryArtist   types.Optional[string] `json:"primaryArtist"`
	SecondaryArtist types.Optional[string] `json:"secondaryArtist"`
	Composer        types.Optional[string] `json:"composer"`
	Lyricist        types.Optional[string] `json:"lyricist"`
	Explicit        types.Optional[bool]   `json:"explicit"`
	Language        types.Optional[string] `json:"language"`
	MainGenre       types.Optional[string] `json:"mainGenre"`
	SubGenre        types.Optional[string] `json:"subGenre"`
	ISRC            types.Optional[string] `json:"ISRC"`
}

// SongDTO is the public view of a song row.
type SongDTO struct {
	ID               uuid.UUID `json:"id"`
	Fingerprint      string    `json:"fingerprint"`
	AlbumID          uuid.UUID `json:"albumId"`
	Title            string    `json:"title"`
	Explicit         bool      `json:"explicit"`
	ISRC             *string   `json:"ISRC"`
	PrimaryArtist    *string   `json:"primaryArtist"`
	SecondaryArtist  *string   `json:"secondaryArtist"`
	Composer         *string   `json:"composer"`
	Lyricist         *string   `json:"lyricist"`
	Language         *string   `json:"language"`
	MainGenre        *string   `json:"mainGenre"`
	SubGenre         *string   `json:"subGenre"`
	MasterFileFormat *string   `json:"masterFileFormat"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SongDetailDTO is the song with its master audio signed URL resolved.
type SongDetailDTO struct {
	SongDTO
	MasterURL *string `json:"masterUrl"`
}

// FromModel maps a stored song onto the public DTO.
func FromModel(song *models.Song) *SongDTO {
	if song == nil {
		return nil
	}
	return &SongDTO{
		ID:               song.ID,
		Fingerprint:      song.Fingerprint,
		AlbumID:          song.AlbumID,
		Title:            song.Title,
		Explicit:         song.Explicit,
		ISRC:             song.ISRC,
		PrimaryArtist:    song.PrimaryArtist,
		SecondaryArtist:  song.SecondaryArtist,
		Composer:         song.Composer,
		Lyricist:         song.Lyricist,
		Language:         song.Language,
		MainGenre:        song.MainGenre,
		SubGenre:         song.SubGenre,
		MasterFileFormat: song.MasterFileFormat,
		CreatedAt:        song.CreatedAt,
		UpdatedAt:        song.UpdatedAt,
	}
}
