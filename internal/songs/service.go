package songs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/pkg/db/models"
	pkgerrors "github.com/soundrift/soundrift-backend/pkg/errors"
	"github.com/soundrift/soundrift-backend/pkg/security"
	"github.com/soundrift/soundrift-backend/pkg/storage"
	"github.com/soundrift/soundrift-backend/pkg/types"
)

// Service exposes the song lifecycle operations.
type Service interface {
	List(ctx context.Context, ownerID, albumID uuid.UUID) ([]SongDTO, error)
	GetDetail(ctx context.Context, ownerID, songID uuid.UUID) (*SongDetailDTO, error)
	Create(ctx context.Context, ownerID, albumID uuid.UUID) (*SongDTO, error)
	Update(ctx context.Context, ownerID, songID uuid.UUID, req UpdateSongRequest) error
	UpdateMasterFile(ctx context.Context, ownerID, songID uuid.UUID, upload Upload) (string, error)
	Delete(ctx context.Context, ownerID, songID uuid.UUID) error
}

// Upload carries an accepted file into the service layer.
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Extension   string
}

type songRepository interface {
	FindOwnedAlbum(ctx context.Context, ownerID, albumID uuid.UUID) (*models.Album, error)
	FindOwned(ctx context.Context, ownerID, songID uuid.UUID) (*models.Song, *models.Album, error)
	ListByAlbum(ctx context.Context, albumID uuid.UUID) ([]models.Song, error)
	Create(ctx context.Context, song *models.Song) (*models.Song, error)
	UpdateFields(ctx context.Context, songID uuid.UUID, changes map[string]any) error
	SetMasterFormat(ctx context.Context, songID uuid.UUID, format string) error
	Delete(ctx context.Context, songID uuid.UUID) error
}

type objectStore interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error)
	SignedURL(ctx context.Context, objectPath string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type service struct {
	repo  songRepository
	store objectStore
}

// ServiceParams bundles the dependencies required to build a song service.
type ServiceParams struct {
	Repo  songRepository
	Store objectStore
}

// NewService constructs a song service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("song repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("object store is required")
	}
	return &service{repo: params.Repo, store: params.Store}, nil
}

// List returns the songs of an owned album in insertion order.
func (s *service) List(ctx context.Context, ownerID, albumID uuid.UUID) ([]SongDTO, error) {
	album, err := s.repo.FindOwnedAlbum(ctx, ownerID, albumID)
	if err != nil {
		return nil, ownershipError(err, pkgerrors.CodeUnprocessable)
	}

	songs, err := s.repo.ListByAlbum(ctx, album.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list songs")
	}

	dtos := make([]SongDTO, 0, len(songs))
	for i := range songs {
		dtos = append(dtos, *FromModel(&songs[i]))
	}
	return dtos, nil
}

// GetDetail returns the song with its master audio signed URL resolved.
func (s *service) GetDetail(ctx context.Context, ownerID, songID uuid.UUID) (*SongDetailDTO, error) {
	song, album, err := s.repo.FindOwned(ctx, ownerID, songID)
	if err != nil {
		return nil, ownershipError(err, pkgerrors.CodeUnprocessable)
	}

	detail := &SongDetailDTO{SongDTO: *FromModel(song)}
	if song.HasMaster() {
		key := storage.SongMasterPath(album.Fingerprint, song.Fingerprint, *song.MasterFileFormat)
		url, err := s.store.SignedURL(ctx, key)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign master url")
		}
		detail.MasterURL = &url
	}
	return detail, nil
}

// Create allocates a fresh song under an owned album.
func (s *service) Create(ctx context.Context, ownerID, albumID uuid.UUID) (*SongDTO, error) {
	album, err := s.repo.FindOwnedAlbum(ctx, ownerID, albumID)
	if err != nil {
		// A missing album and a foreign album answer the same way here; the
		// caller only ever holds album IDs it was handed.
		if errors.Is(err, ErrAlbumMissing) || errors.Is(err, ErrNotOwned) {
			return nil, pkgerrors.New(pkgerrors.CodeNotOwned, "album does not belong to user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load album")
	}

	fingerprint, err := security.NewFingerprint(security.SongFingerprintPrefix)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate fingerprint")
	}

	song := &models.Song{
		Fingerprint: fingerprint,
		AlbumID:     album.ID,
	}
	created, err := s.repo.Create(ctx, song)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert song")
	}
	return FromModel(created), nil
}

// Update applies a tri-state partial update to an owned song.
func (s *service) Update(ctx context.Context, ownerID, songID uuid.UUID, req UpdateSongRequest) error {
	if _, _, err := s.repo.FindOwned(ctx, ownerID, songID); err != nil {
		return ownershipError(err, pkgerrors.CodeUnprocessable)
	}

	changes, err := songChanges(req)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, songID, changes); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update song")
	}
	return nil
}

// UpdateMasterFile stores the uploaded master audio and records its extension.
func (s *service) UpdateMasterFile(ctx context.Context, ownerID, songID uuid.UUID, upload Upload) (string, error) {
	song, album, err := s.repo.FindOwned(ctx, ownerID, songID)
	if err != nil {
		return "", ownershipError(err, pkgerrors.CodeMissing)
	}

	key := storage.SongMasterPath(album.Fingerprint, song.Fingerprint, upload.Extension)
	signedURL, err := s.store.Upload(ctx, key, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload master audio")
	}

	if err := s.repo.SetMasterFormat(ctx, songID, upload.Extension); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: record master format")
	}
	return signedURL, nil
}

// Delete removes the song's stored objects, then the row.
func (s *service) Delete(ctx context.Context, ownerID, songID uuid.UUID) error {
	song, album, err := s.repo.FindOwned(ctx, ownerID, songID)
	if err != nil {
		return ownershipError(err, pkgerrors.CodeUnprocessable)
	}

	if err := s.store.DeleteByPrefix(ctx, storage.SongPrefix(album.Fingerprint, song.Fingerprint)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete song storage")
	}
	if err := s.repo.Delete(ctx, songID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete song")
	}
	return nil
}

// ownershipError maps repo sentinels onto public codes. An owned-by-someone-
// else record never reads as missing; the missing code varies per operation.
func ownershipError(err error, missingCode pkgerrors.Code) error {
	switch {
	case errors.Is(err, ErrNotOwned):
		return pkgerrors.New(pkgerrors.CodeNotOwned, "resource does not belong to user")
	case errors.Is(err, ErrSongMissing):
		return pkgerrors.New(missingCode, "song does not exist")
	case errors.Is(err, ErrAlbumMissing):
		return pkgerrors.New(missingCode, "album does not exist")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve ownership")
	}
}

// songDeletable names the fields a PATCH may clear with an explicit null.
// Title, primaryArtist and explicit stay clear-proof.
var songDeletable = map[string]bool{
	"secondaryArtist": true,
	"composer":        true,
	"lyricist":        true,
	"language":        true,
	"mainGenre":       true,
	"subGenre":        true,
	"ISRC":            true,
}

func songChanges(req UpdateSongRequest) (map[string]any, error) {
	changes := map[string]any{}

	if err := applyText(changes, "title", "title", req.Title); err != nil {
		return nil, err
	}
	if err := applyText(changes, "primaryArtist", "primary_artist", req.PrimaryArtist); err != nil {
		return nil, err
	}
	if err := applyText(changes, "secondaryArtist", "secondary_artist", req.SecondaryArtist); err != nil {
		return nil, err
	}
	if err := applyText(changes, "composer", "composer", req.Composer); err != nil {
		return nil, err
	}
	if err := applyText(changes, "lyricist", "lyricist", req.Lyricist); err != nil {
		return nil, err
	}
	if err := applyText(changes, "language", "language", req.Language); err != nil {
		return nil, err
	}
	if err := applyText(changes, "mainGenre", "main_genre", req.MainGenre); err != nil {
		return nil, err
	}
	if err := applyText(changes, "subGenre", "sub_genre", req.SubGenre); err != nil {
		return nil, err
	}
	if err := applyText(changes, "ISRC", "isrc", req.ISRC); err != nil {
		return nil, err
	}

	if req.Explicit.IsSet() {
		if req.Explicit.IsNull() {
			return nil, nonDeletableError("explicit")
		}
		value, _ := req.Explicit.Value()
		changes["explicit"] = value
	}

	return changes, nil
}

func applyText(changes map[string]any, name, column string, opt types.Optional[string]) error {
	if !opt.IsSet() {
		return nil
	}
	if opt.IsNull() {
		if !songDeletable[name] {
			return nonDeletableError(name)
		}
		changes[column] = nil
		return nil
	}
	value, _ := opt.Value()
	changes[column] = strings.TrimSpace(value)
	return nil
}

func nonDeletableError(field string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q cannot be cleared", field)).
		WithDetails(map[string]string{field: "cannot be cleared"})
}
