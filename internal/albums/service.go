package albums

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/soundrift/soundrift-backend/pkg/db"
	"github.com/soundrift/soundrift-backend/pkg/db/models"
	"github.com/soundrift/soundrift-backend/pkg/enums"
	pkgerrors "github.com/soundrift/soundrift-backend/pkg/errors"
	"github.com/soundrift/soundrift-backend/pkg/security"
	"github.com/soundrift/soundrift-backend/pkg/storage"
	"github.com/soundrift/soundrift-backend/pkg/types"
)

const maxDraftAlbums = 3

// Service exposes the album lifecycle operations.
type Service interface {
	List(ctx context.Context, ownerID uuid.UUID, statusFilter string) ([]AlbumDTO, error)
	GetDetail(ctx context.Context, ownerID, albumID uuid.UUID) (*AlbumDetailDTO, error)
	Create(ctx context.Context, ownerID uuid.UUID) (*AlbumDTO, error)
	Update(ctx context.Context, ownerID, albumID uuid.UUID, req UpdateAlbumRequest) error
	UpdateCoverArt(ctx context.Context, ownerID, albumID uuid.UUID, upload Upload) (string, error)
	Delete(ctx context.Context, ownerID, albumID uuid.UUID) error
	Submit(ctx context.Context, ownerID, albumID uuid.UUID) error
}

// Upload carries an accepted file into the service layer.
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Extension   string
}

type albumRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status *enums.AlbumStatus) ([]models.Album, error)
	FindOwned(ctx context.Context, ownerID, albumID uuid.UUID) (*models.Album, error)
	FindOwnedDraft(ctx context.Context, ownerID, albumID uuid.UUID) (*models.Album, error)
	CountDrafts(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Create(ctx context.Context, album *models.Album) (*models.Album, error)
	UpdateFields(ctx context.Context, albumID uuid.UUID, changes map[string]any) error
	SetStatus(ctx context.Context, albumID uuid.UUID, status enums.AlbumStatus) error
	SetArtFormat(ctx context.Context, albumID uuid.UUID, format string) error
	SetDeleted(ctx context.Context, albumID uuid.UUID) error
	DeleteCascade(ctx context.Context, albumID uuid.UUID) error
	ListSongs(ctx context.Context, albumID uuid.UUID) ([]models.Song, error)
}

type objectStore interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error)
	SignedURL(ctx context.Context, objectPath string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type service struct {
	repo  albumRepository
	store objectStore
}

// ServiceParams bundles the dependencies required to build an album service.
type ServiceParams struct {
	Repo  albumRepository
	Store objectStore
}

// NewService constructs an album service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("album repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("object store is required")
	}
	return &service{repo: params.Repo, store: params.Store}, nil
}

// List returns the caller's albums, optionally narrowed to one status.
// Unknown status values are ignored rather than rejected.
func (s *service) List(ctx context.Context, ownerID uuid.UUID, statusFilter string) ([]AlbumDTO, error) {
	var status *enums.AlbumStatus
	if parsed, err := enums.ParseAlbumStatus(statusFilter); err == nil {
		status = &parsed
	}

	albums, err := s.repo.ListByOwner(ctx, ownerID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list albums")
	}

	dtos := make([]AlbumDTO, 0, len(albums))
	for i := range albums {
		dtos = append(dtos, *FromModel(&albums[i]))
	}
	return dtos, nil
}

// GetDetail returns the album with its art URL and songs, master URLs
// resolved concurrently and merged back in original order.
func (s *service) GetDetail(ctx context.Context, ownerID, albumID uuid.UUID) (*AlbumDetailDTO, error) {
	album, err := s.repo.FindOwned(ctx, ownerID, albumID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeMissing, "album not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load album")
	}

	detail := &AlbumDetailDTO{AlbumDTO: *FromModel(album)}

	if album.HasCoverArt() {
		url, err := s.store.SignedURL(ctx, storage.AlbumArtPath(album.Fingerprint, *album.ArtFileFormat))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign cover art url")
		}
		detail.ArtURL = &url
	}

	songs, err := s.repo.ListSongs(ctx, album.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list songs")
	}

	urls := make([]*string, len(songs))
	g, gctx := errgroup.WithContext(ctx)
	for i := range songs {
		song := songs[i]
		if !song.HasMaster() {
			continue
		}
		idx := i
		g.Go(func() error {
			key := storage.SongMasterPath(album.Fingerprint, song.Fingerprint, *song.MasterFileFormat)
			url, err := s.store.SignedURL(gctx, key)
			if err != nil {
				return err
			}
			urls[idx] = &url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign master urls")
	}

	detail.Songs = make([]SongView, 0, len(songs))
	for i := range songs {
		detail.Songs = append(detail.Songs, songView(songs[i], urls[i]))
	}
	return detail, nil
}

// Create allocates a fresh draft album under the caller's draft quota.
func (s *service) Create(ctx context.Context, ownerID uuid.UUID) (*AlbumDTO, error) {
	drafts, err := s.repo.CountDrafts(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count drafts")
	}
	if drafts >= maxDraftAlbums {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "draft album limit reached")
	}

	fingerprint, err := security.NewFingerprint(security.AlbumFingerprintPrefix)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate fingerprint")
	}

	album := &models.Album{
		Fingerprint:    fingerprint,
		UserID:         ownerID,
		ReleasePartner: "Default",
		Status:         enums.AlbumStatusDraft,
	}
	created, err := s.repo.Create(ctx, album)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert album")
	}
	return FromModel(created), nil
}

// Update applies a tri-state partial update to an owned draft.
func (s *service) Update(ctx context.Context, ownerID, albumID uuid.UUID, req UpdateAlbumRequest) error {
	if _, err := s.repo.FindOwnedDraft(ctx, ownerID, albumID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeUnprocessable, "album is not an editable draft")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load album")
	}

	changes, err := albumChanges(req)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, albumID, changes); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update album")
	}
	return nil
}

// UpdateCoverArt stores the uploaded art and records its extension.
func (s *service) UpdateCoverArt(ctx context.Context, ownerID, albumID uuid.UUID, upload Upload) (string, error) {
	album, err := s.repo.FindOwned(ctx, ownerID, albumID)
	if err != nil {
		if db.IsNotFound(err) {
			return "", pkgerrors.New(pkgerrors.CodeNotOwned, "album does not belong to user")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load album")
	}

	key := storage.AlbumArtPath(album.Fingerprint, upload.Extension)
	signedURL, err := s.store.Upload(ctx, key, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload cover art")
	}

	if err := s.repo.SetArtFormat(ctx, albumID, upload.Extension); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: record art format")
	}
	return signedURL, nil
}

// Delete hard-deletes draft/rejected albums (storage prefix first, then songs
// and album in one transaction) and soft-deletes everything else.
func (s *service) Delete(ctx context.Context, ownerID, albumID uuid.UUID) error {
	album, err := s.repo.FindOwned(ctx, ownerID, albumID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotOwned, "album does not belong to user")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load album")
	}

	if !album.Status.IsHardDeletable() {
		if err := s.repo.SetDeleted(ctx, albumID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: soft delete album")
		}
		return nil
	}

	if err := s.store.DeleteByPrefix(ctx, storage.AlbumPrefix(album.Fingerprint)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete album storage")
	}
	if err := s.repo.DeleteCascade(ctx, albumID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete album")
	}
	return nil
}

// Submit transitions an owned album to submitted once it carries a title.
func (s *service) Submit(ctx context.Context, ownerID, albumID uuid.UUID) error {
	album, err := s.repo.FindOwned(ctx, ownerID, albumID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeMissing, "album not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load album")
	}

	if strings.TrimSpace(album.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "incomplete submission")
	}

	if err := s.repo.SetStatus(ctx, albumID, enums.AlbumStatusSubmitted); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: submit album")
	}
	return nil
}

// albumDeletable names the fields a PATCH may clear with an explicit null.
// Title and primaryArtist are required for submission and stay clear-proof.
var albumDeletable = map[string]bool{
	"secondaryArtist": true,
	"language":        true,
	"mainGenre":       true,
	"subGenre":        true,
	"releaseDate":     true,
	"productionYear":  true,
	"label":           true,
	"UPC":             true,
}

func albumChanges(req UpdateAlbumRequest) (map[string]any, error) {
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
	if err := applyText(changes, "language", "language", req.Language); err != nil {
		return nil, err
	}
	if err := applyText(changes, "mainGenre", "main_genre", req.MainGenre); err != nil {
		return nil, err
	}
	if err := applyText(changes, "subGenre", "sub_genre", req.SubGenre); err != nil {
		return nil, err
	}
	if err := applyText(changes, "label", "label", req.Label); err != nil {
		return nil, err
	}
	if err := applyText(changes, "UPC", "upc", req.UPC); err != nil {
		return nil, err
	}

	if req.ProductionYear.IsSet() {
		if req.ProductionYear.IsNull() {
			if !albumDeletable["productionYear"] {
				return nil, nonDeletableError("productionYear")
			}
			changes["production_year"] = nil
		} else {
			year, _ := req.ProductionYear.Value()
			changes["production_year"] = year
		}
	}

	if req.ReleaseDate.IsSet() {
		if req.ReleaseDate.IsNull() {
			if !albumDeletable["releaseDate"] {
				return nil, nonDeletableError("releaseDate")
			}
			changes["release_date"] = nil
		} else {
			raw, _ := req.ReleaseDate.Value()
			parsed, err := time.Parse(releaseDateLayout, strings.TrimSpace(raw))
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "releaseDate must use YYYY-MM-DD").
					WithDetails(map[string]string{"releaseDate": "is invalid"})
			}
			changes["release_date"] = parsed
		}
	}

	return changes, nil
}

func applyText(changes map[string]any, name, column string, opt types.Optional[string]) error {
	if !opt.IsSet() {
		return nil
	}
	if opt.IsNull() {
		if !albumDeletable[name] {
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
