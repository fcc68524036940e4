package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/api/middleware"
	albumsvc "github.com/soundrift/soundrift-backend/internal/albums"
)

func withAlbumRoute(ctx context.Context, albumID string) context.Context {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("albumID", albumID)
	return context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
}

func TestCreateAlbum(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()

	t.Run("missing user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/albums", nil)
		rec := httptest.NewRecorder()

		CreateAlbum(&stubAlbumService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubAlbumService{}
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/albums", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		CreateAlbum(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.createdFor != userID {
			t.Fatalf("expected create for %s, got %s", userID, stub.createdFor)
		}
	})
}

func TestSubmitAlbum(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	albumID := uuid.New()

	t.Run("invalid album id", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		ctx = withAlbumRoute(ctx, "not-a-uuid")
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/albums/not-a-uuid/submit", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		SubmitAlbum(&stubAlbumService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubAlbumService{}
		ctx := middleware.WithUserID(context.Background(), userID.String())
		ctx = withAlbumRoute(ctx, albumID.String())
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/albums/"+albumID.String()+"/submit", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		SubmitAlbum(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.submitted != albumID {
			t.Fatalf("expected submit for %s, got %s", albumID, stub.submitted)
		}
	})
}

func TestUpdateAlbumCoverArt(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	albumID := uuid.New()

	buildRequest := func(field, filename string) *http.Request {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte("jpeg-bytes"))
		writer.Close()

		ctx := middleware.WithUserID(context.Background(), userID.String())
		ctx = withAlbumRoute(ctx, albumID.String())
		req := httptest.NewRequest(http.MethodPut, "/api/v1/albums/"+albumID.String()+"/cover", &buf).WithContext(ctx)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return req
	}

	t.Run("success", func(t *testing.T) {
		stub := &stubAlbumService{}
		rec := httptest.NewRecorder()

		UpdateAlbumCoverArt(stub, logg).ServeHTTP(rec, buildRequest("coverArtFile", "cover.jpg"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.artUpload == nil || stub.artUpload.Extension != "jpg" {
			t.Fatalf("expected jpg upload, got %+v", stub.artUpload)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		rec := httptest.NewRecorder()

		UpdateAlbumCoverArt(&stubAlbumService{}, logg).ServeHTTP(rec, buildRequest("coverArtFile", "cover.png"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for png, got %d", rec.Code)
		}
	})

	t.Run("wrong field", func(t *testing.T) {
		rec := httptest.NewRecorder()

		UpdateAlbumCoverArt(&stubAlbumService{}, logg).ServeHTTP(rec, buildRequest("someOtherField", "cover.jpg"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for missing field, got %d", rec.Code)
		}
	})
}

type stubAlbumService struct {
	createdFor uuid.UUID
	submitted  uuid.UUID
	artUpload  *albumsvc.Upload
}

func (s *stubAlbumService) List(ctx context.Context, ownerID uuid.UUID, statusFilter string) ([]albumsvc.AlbumDTO, error) {
	return nil, nil
}

func (s *stubAlbumService) GetDetail(ctx context.Context, ownerID, albumID uuid.UUID) (*albumsvc.AlbumDetailDTO, error) {
	return &albumsvc.AlbumDetailDTO{}, nil
}

func (s *stubAlbumService) Create(ctx context.Context, ownerID uuid.UUID) (*albumsvc.AlbumDTO, error) {
	s.createdFor = ownerID
	return &albumsvc.AlbumDTO{ID: uuid.New()}, nil
}

func (s *stubAlbumService) Update(ctx context.Context, ownerID, albumID uuid.UUID, req albumsvc.UpdateAlbumRequest) error {
	return nil
}

func (s *stubAlbumService) UpdateCoverArt(ctx context.Context, ownerID, albumID uuid.UUID, upload albumsvc.Upload) (string, error) {
	s.artUpload = &upload
	return "https://storage.example.com/art?sig=abc", nil
}

func (s *stubAlbumService) Delete(ctx context.Context, ownerID, albumID uuid.UUID) error {
	return nil
}

func (s *stubAlbumService) Submit(ctx context.Context, ownerID, albumID uuid.UUID) error {
	s.submitted = albumID
	return nil
}
