package albums

import (
	"time"

	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/pkg/db/models"
	"github.com/soundrift/soundrift-backend/pkg/enums"
	"github.com/soundrift/soundrift-backend/pkg/types"
)

const releaseDateLayout = "2006-01-02"

// UpdateAlbumRequest carries the tri-state PATCH payload. Absent fields stay
// untouched, explicit nulls clear (deletable fields only), values overwrite.
type UpdateAlbumRequest struct {
	Title           types.Optional[string] `json:"title"`
	PrimaryArtist   types.Optional[string] `json:"primaryArtist"`
	SecondaryArtist types.Optional[string] `json:"secondaryArtist"`
	Language        types.Optional[string] `json:"language"`
	MainGenre       types.Optional[string] `json:"mainGenre"`
	SubGenre        types.Optional[string] `json:"subGenre"`
	ReleaseDate     types.Optional[string] `json:"releaseDate"`
	ProductionYear  types.Optional[int]    `json:"productionYear"`
	Label           types.Optional[string] `json:"label"`
	UPC             types.Optional[string] `json:"UPC"`
}

// AlbumDTO is the public view of an album row.
type AlbumDTO struct {
	ID              uuid.UUID         `json:"id"`
	Fingerprint     string            `json:"fingerprint"`
	Title           string            `json:"title"`
	UPC             *string           `json:"UPC"`
	PrimaryArtist   string            `json:"primaryArtist"`
	SecondaryArtist *string           `json:"secondaryArtist"`
	Language        *string           `json:"language"`
	MainGenre       *string           `json:"mainGenre"`
	SubGenre        *string           `json:"subGenre"`
	ReleaseDate     *string           `json:"releaseDate"`
	ProductionYear  *int              `json:"productionYear"`
	Label           *string           `json:"label"`
	ReleasePartner  string            `json:"releasePartner"`
	Status          enums.AlbumStatus `json:"status"`
	Deleted         bool              `json:"deleted"`
	ArtFileFormat   *string           `json:"artFileFormat"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// SongView is the song shape embedded in an album detail, master signed URL
// resolved.
type SongView struct {
	ID               uuid.UUID `json:"id"`
	Fingerprint      string    `json:"fingerprint"`
	Title            string    `json:"title"`
	Explicit         bool      `json:"explicit"`
	MasterFileFormat *string   `json:"masterFileFormat"`
	MasterURL        *string   `json:"masterUrl"`
	CreatedAt        time.Time `json:"createdAt"`
}

// AlbumDetailDTO is the album with its resolved art URL and songs.
type AlbumDetailDTO struct {
	AlbumDTO
	ArtURL *string    `json:"artUrl"`
	Songs  []SongView `json:"songs"`
}

// FromModel maps a stored album onto the public DTO.
func FromModel(album *models.Album) *AlbumDTO {
	if album == nil {
		return nil
	}
	dto := &AlbumDTO{
		ID:              album.ID,
		Fingerprint:     album.Fingerprint,
		Title:           album.Title,
		UPC:             album.UPC,
		PrimaryArtist:   album.PrimaryArtist,
		SecondaryArtist: album.SecondaryArtist,
		Language:        album.Language,
		MainGenre:       album.MainGenre,
		SubGenre:        album.SubGenre,
		ProductionYear:  album.ProductionYear,
		Label:           album.Label,
		ReleasePartner:  album.ReleasePartner,
		Status:          album.Status,
		Deleted:         album.Deleted,
		ArtFileFormat:   album.ArtFileFormat,
		CreatedAt:       album.CreatedAt,
		UpdatedAt:       album.UpdatedAt,
	}
	if album.ReleaseDate != nil {
		formatted := album.ReleaseDate.Format(releaseDateLayout)
		dto.ReleaseDate = &formatted
	}
	return dto
}

func songView(song models.Song, masterURL *string) SongView {
	return SongView{
		ID:               song.ID,
		Fingerprint:      song.Fingerprint,
		Title:            song.Title,
		Explicit:         song.Explicit,
		MasterFileFormat: song.MasterFileFormat,
		MasterURL:        masterURL,
		CreatedAt:        song.CreatedAt,
	}
}
