package songs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundrift/soundrift-backend/pkg/db"
	"github.com/soundrift/soundrift-backend/pkg/db/models"
)

// Ownership sentinels. A song owned by someone else must answer the same way
// whether or not the song exists, so the repo reports which link in the
// song -> album -> owner chain broke and the service picks the public code.
var (
	ErrSongMissing  = errors.New("song does not exist")
	ErrAlbumMissing = errors.New("album does not exist")
	ErrNotOwned     = errors.New("resource does not belong to user")
)

// Repository exposes song persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOwnedAlbum loads the parent album only when it belongs to the owner.
func (r *Repository) FindOwnedAlbum(ctx context.Context, ownerID, albumID uuid.UUID) (*models.Album, error) {
	var album models.Album
	if err := r.db.WithContext(ctx).Where("id = ?", albumID).First(&album).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, ErrAlbumMissing
		}
		return nil, err
	}
	if album.UserID != ownerID {
		return nil, ErrNotOwned
	}
	return &album, nil
}

// FindOwned resolves the song and its album, walking the ownership chain.
func (r *Repository) FindOwned(ctx context.Context, ownerID, songID uuid.UUID) (*models.Song, *models.Album, error) {
	var song models.Song
	if err := r.db.WithContext(ctx).Where("id = ?", songID).First(&song).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, nil, ErrSongMissing
		}
		return nil, nil, err
	}

	album, err := r.FindOwnedAlbum(ctx, ownerID, song.AlbumID)
	if err != nil {
		return nil, nil, err
	}
	return &song, album, nil
}

// ListByAlbum returns the album's songs in insertion order.
func (r *Repository) ListByAlbum(ctx context.Context, albumID uuid.UUID) ([]models.Song, error) {
	var songs []models.Song
	if err := r.db.WithContext(ctx).
		Where("album_id = ?", albumID).
		Order("created_at ASC").
		Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

// Create inserts a new song and returns the persisted model.
func (r *Repository) Create(ctx context.Context, song *models.Song) (*models.Song, error) {
	if err := r.db.WithContext(ctx).Create(song).Error; err != nil {
		return nil, err
	}
	return song, nil
}

// UpdateFields applies a partial column update. Nil map values write NULL.
func (r *Repository) UpdateFields(ctx context.Context, songID uuid.UUID, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Song{}).
		Where("id = ?", songID).
		Updates(changes).Error
}

// SetMasterFormat records the stored master audio extension.
func (r *Repository) SetMasterFormat(ctx context.Context, songID uuid.UUID, format string) error {
	return r.db.WithContext(ctx).
		Model(&models.Song{}).
		Where("id = ?", songID).
		UpdateColumn("master_file_format", format).Error
}

// Delete removes the song row.
func (r *Repository) Delete(ctx context.Context, songID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", songID).Delete(&models.Song{}).Error
}
