package albums

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundrift/soundrift-backend/pkg/db/models"
	"github.com/soundrift/soundrift-backend/pkg/enums"
)

// Repository exposes album persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByOwner returns the caller's albums newest-first, optionally narrowed
// to one status.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, status *enums.AlbumStatus) ([]models.Album, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var albums []models.Album
	if err := query.Order("created_at DESC").Find(&albums).Error; err != nil {
		return nil, err
	}
	return albums, nil
}

// FindOwned loads the album only when it belongs to the owner.
func (r *Repository) FindOwned(ctx context.Context, ownerID, albumID uuid.UUID) (*models.Album, error) {
	var album models.Album
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", albumID, ownerID).
		First(&album).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

// FindOwnedDraft loads the album only when it is an owned draft.
func (r *Repository) FindOwnedDraft(ctx context.Context, ownerID, albumID uuid.UUID) (*models.Album, error) {
	var album models.Album
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", albumID, ownerID, enums.AlbumStatusDraft).
		First(&album).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

// CountDrafts returns how many draft albums the owner currently holds.
func (r *Repository) CountDrafts(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Album{}).
		Where("user_id = ? AND status = ?", ownerID, enums.AlbumStatusDraft).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new album and returns the persisted model.
func (r *Repository) Create(ctx context.Context, album *models.Album) (*models.Album, error) {
	if err := r.db.WithContext(ctx).Create(album).Error; err != nil {
		return nil, err
	}
	return album, nil
}

// UpdateFields applies a partial column update. Nil map values write NULL.
func (r *Repository) UpdateFields(ctx context.Context, albumID uuid.UUID, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Album{}).
		Where("id = ?", albumID).
		Updates(changes).Error
}

// SetStatus transitions the album status.
func (r *Repository) SetStatus(ctx context.Context, albumID uuid.UUID, status enums.AlbumStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Album{}).
		Where("id = ?", albumID).
		UpdateColumn("status", status).Error
}

// SetArtFormat records the stored cover-art extension.
func (r *Repository) SetArtFormat(ctx context.Context, albumID uuid.UUID, format string) error {
	return r.db.WithContext(ctx).
		Model(&models.Album{}).
		Where("id = ?", albumID).
		UpdateColumn("art_file_format", format).Error
}

// SetDeleted flips the soft-delete flag.
func (r *Repository) SetDeleted(ctx context.Context, albumID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Album{}).
		Where("id = ?", albumID).
		UpdateColumn("deleted", true).Error
}

// DeleteCascade removes the album and its songs inside one transaction.
func (r *Repository) DeleteCascade(ctx context.Context, albumID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("album_id = ?", albumID).Delete(&models.Song{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", albumID).Delete(&models.Album{}).Error
	})
}

// ListSongs returns the album's songs in insertion order.
func (r *Repository) ListSongs(ctx context.Context, albumID uuid.UUID) ([]models.Song, error) {
	var songs []models.Song
	if err := r.db.WithContext(ctx).
		Where("album_id = ?", albumID).
		Order("created_at ASC").
		Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}
