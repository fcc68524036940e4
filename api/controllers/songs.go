package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/api/responses"
	"github.com/soundrift/soundrift-backend/api/validators"
	songsvc "github.com/soundrift/soundrift-backend/internal/songs"
	pkgerrors "github.com/soundrift/soundrift-backend/pkg/errors"
	"github.com/soundrift/soundrift-backend/pkg/logger"
)

// ListSongs returns the songs of one owned album via ?albumId=.
func ListSongs(svc songsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "song service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		albumID, err := uuid.Parse(r.URL.Query().Get("albumId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid albumId"))
			return
		}

		songs, err := svc.List(r.Context(), ownerID, albumID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, songs)
	}
}

// GetSong returns one song with its master audio URL.
func GetSong(svc songsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "song service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		songID, err := pathID(r, "songID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithSongID(r.Context(), songID.String())
		detail, err := svc.GetDetail(ctx, ownerID, songID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

type createSongRequest struct {
	AlbumID uuid.UUID `json:"albumId" validate:"required"`
}

// CreateSong allocates a fresh song under an owned album.
func CreateSong(svc songsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "song service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createSongRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		song, err := svc.Create(r.Context(), ownerID, payload.AlbumID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, song)
	}
}

// UpdateSong applies a partial metadata update to an owned song.
func UpdateSong(svc songsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "song service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		songID, err := pathID(r, "songID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload songsvc.UpdateSongRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithSongID(r.Context(), songID.String())
		if err := svc.Update(ctx, ownerID, songID, payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": songID.String()})
	}
}

// UpdateSongMasterFile accepts an mp3/wav upload and returns its signed URL.
func UpdateSongMasterFile(svc songsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "song service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		songID, err := pathID(r, "songID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		upload, err := validators.ExtractUpload(w, r, validators.MasterAudioFilter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer upload.Close()

		ctx := logg.WithSongID(r.Context(), songID.String())
		url, err := svc.UpdateMasterFile(ctx, ownerID, songID, songsvc.Upload{
			Reader:      upload.File,
			Size:        upload.Size,
			ContentType: "application/octet-stream",
			Extension:   upload.Extension,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"masterUrl": url})
	}
}

// DeleteSong removes an owned song and its stored objects.
func DeleteSong(svc songsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "song service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		songID, err := pathID(r, "songID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithSongID(r.Context(), songID.String())
		if err := svc.Delete(ctx, ownerID, songID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": songID.String()})
	}
}
