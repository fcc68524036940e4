package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/api/middleware"
	songsvc "github.com/soundrift/soundrift-backend/internal/songs"
)

func withSongRoute(ctx context.Context, songID string) context.Context {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("songID", songID)
	return context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
}

func TestListSongs(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	albumID := uuid.New()

	t.Run("missing album id", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/songs", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		ListSongs(&stubSongService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without albumId, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubSongService{}
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/songs?albumId="+albumID.String(), nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		ListSongs(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.listedAlbum != albumID {
			t.Fatalf("expected list for %s, got %s", albumID, stub.listedAlbum)
		}
	})
}

func TestCreateSong(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	albumID := uuid.New()

	t.Run("missing album id", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/songs", strings.NewReader("{}")).WithContext(ctx)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		CreateSong(&stubSongService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubSongService{}
		ctx := middleware.WithUserID(context.Background(), userID.String())
		body := `{"albumId":"` + albumID.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/songs", strings.NewReader(body)).WithContext(ctx)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		CreateSong(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.createdUnder != albumID {
			t.Fatalf("expected create under %s, got %s", albumID, stub.createdUnder)
		}
	})
}

func TestGetSong(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	songID := uuid.New()

	ctx := middleware.WithUserID(context.Background(), userID.String())
	ctx = withSongRoute(ctx, songID.String())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/songs/"+songID.String(), nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	url := "https://storage.example.com/master?sig=abc"
	stub := &stubSongService{detail: &songsvc.SongDetailDTO{MasterURL: &url}}
	GetSong(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool                  `json:"success"`
		Data    songsvc.SongDetailDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.MasterURL == nil || *envelope.Data.MasterURL != url {
		t.Fatalf("unexpected master url %v", envelope.Data.MasterURL)
	}
}

type stubSongService struct {
	listedAlbum  uuid.UUID
	createdUnder uuid.UUID
	detail       *songsvc.SongDetailDTO
}

func (s *stubSongService) List(ctx context.Context, ownerID, albumID uuid.UUID) ([]songsvc.SongDTO, error) {
	s.listedAlbum = albumID
	return nil, nil
}

func (s *stubSongService) GetDetail(ctx context.Context, ownerID, songID uuid.UUID) (*songsvc.SongDetailDTO, error) {
	if s.detail != nil {
		return s.detail, nil
	}
	return &songsvc.SongDetailDTO{}, nil
}

func (s *stubSongService) Create(ctx context.Context, ownerID, albumID uuid.UUID) (*songsvc.SongDTO, error) {
	s.createdUnder = albumID
	return &songsvc.SongDTO{ID: uuid.New(), AlbumID: albumID}, nil
}

func (s *stubSongService) Update(ctx context.Context, ownerID, songID uuid.UUID, req songsvc.UpdateSongRequest) error {
	return nil
}

func (s *stubSongService) UpdateMasterFile(ctx context.Context, ownerID, songID uuid.UUID, upload songsvc.Upload) (string, error) {
	return "https://storage.example.com/master?sig=abc", nil
}

func (s *stubSongService) Delete(ctx context.Context, ownerID, songID uuid.UUID) error {
	return nil
}
