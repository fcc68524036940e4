package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/api/middleware"
	"github.com/soundrift/soundrift-backend/api/responses"
	"github.com/soundrift/soundrift-backend/api/validators"
	albumsvc "github.com/soundrift/soundrift-backend/internal/albums"
	pkgerrors "github.com/soundrift/soundrift-backend/pkg/errors"
	"github.com/soundrift/soundrift-backend/pkg/logger"
)

// callerID pulls the authenticated user out of the request context.
func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func pathID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param)
	}
	return id, nil
}

// ListAlbums returns the caller's albums, optionally filtered by ?status=.
func ListAlbums(svc albumsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "album service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		albums, err := svc.List(r.Context(), ownerID, r.URL.Query().Get("status"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, albums)
	}
}

// GetAlbum returns one album with its art URL and songs.
func GetAlbum(svc albumsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "album service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		albumID, err := pathID(r, "albumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithAlbumID(r.Context(), albumID.String())
		detail, err := svc.GetDetail(ctx, ownerID, albumID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// CreateAlbum allocates a fresh draft album.
func CreateAlbum(svc albumsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "album service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		album, err := svc.Create(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, album)
	}
}

// UpdateAlbum applies a partial metadata update to an owned draft.
func UpdateAlbum(svc albumsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "album service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		albumID, err := pathID(r, "albumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload albumsvc.UpdateAlbumRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithAlbumID(r.Context(), albumID.String())
		if err := svc.Update(ctx, ownerID, albumID, payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": albumID.String()})
	}
}

// UpdateAlbumCoverArt accepts a jpg upload and returns its signed URL.
func UpdateAlbumCoverArt(svc albumsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "album service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		albumID, err := pathID(r, "albumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		upload, err := validators.ExtractUpload(w, r, validators.CoverArtFilter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer upload.Close()

		ctx := logg.WithAlbumID(r.Context(), albumID.String())
		url, err := svc.UpdateCoverArt(ctx, ownerID, albumID, albumsvc.Upload{
			Reader:      upload.File,
			Size:        upload.Size,
			ContentType: "image/jpeg",
			Extension:   upload.Extension,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"artUrl": url})
	}
}

// DeleteAlbum removes an owned album, hard or soft depending on status.
func DeleteAlbum(svc albumsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "album service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		albumID, err := pathID(r, "albumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithAlbumID(r.Context(), albumID.String())
		if err := svc.Delete(ctx, ownerID, albumID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": albumID.String()})
	}
}

// SubmitAlbum hands an owned album over for review.
func SubmitAlbum(svc albumsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "album service unavailable"))
			return
		}

		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		albumID, err := pathID(r, "albumID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithAlbumID(r.Context(), albumID.String())
		if err := svc.Submit(ctx, ownerID, albumID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": albumID.String()})
	}
}
