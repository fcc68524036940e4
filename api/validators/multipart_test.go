package validators

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/soundrift/soundrift-backend/pkg/errors"
)

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/albums/x/cover", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestExtractUploadAcceptsAllowedExtension(t *testing.T) {
	req := multipartRequest(t, "coverArtFile", "cover.JPG", []byte("jpeg-bytes"))
	rec := httptest.NewRecorder()

	upload, err := ExtractUpload(rec, req, CoverArtFilter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer upload.Close()

	if upload.Extension != "jpg" {
		t.Fatalf("expected normalized extension jpg, got %s", upload.Extension)
	}
	if upload.Size != int64(len("jpeg-bytes")) {
		t.Fatalf("unexpected size %d", upload.Size)
	}
}

func TestExtractUploadRejectsWrongExtension(t *testing.T) {
	req := multipartRequest(t, "coverArtFile", "cover.png", []byte("png-bytes"))
	rec := httptest.NewRecorder()

	_, err := ExtractUpload(rec, req, CoverArtFilter)
	if err == nil {
		t.Fatal("expected rejection for png upload")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExtractUploadRejectsMissingField(t *testing.T) {
	req := multipartRequest(t, "wrongField", "cover.jpg", []byte("jpeg-bytes"))
	rec := httptest.NewRecorder()

	_, err := ExtractUpload(rec, req, CoverArtFilter)
	if err == nil {
		t.Fatal("expected rejection for missing field")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExtractUploadRejectsOversizedFile(t *testing.T) {
	filter := UploadFilter{Field: "coverArtFile", MaxBytes: 8, Extensions: []string{"jpg"}}
	req := multipartRequest(t, "coverArtFile", "cover.jpg", []byte("way-more-than-eight-bytes"))
	rec := httptest.NewRecorder()

	_, err := ExtractUpload(rec, req, filter)
	if err == nil {
		t.Fatal("expected rejection for oversized upload")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMasterAudioFilterExtensions(t *testing.T) {
	for _, name := range []string{"track.mp3", "track.wav"} {
		req := multipartRequest(t, "masterFilename", name, []byte("audio"))
		rec := httptest.NewRecorder()
		upload, err := ExtractUpload(rec, req, MasterAudioFilter)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		upload.Close()
	}

	req := multipartRequest(t, "masterFilename", "track.flac", []byte("audio"))
	rec := httptest.NewRecorder()
	if _, err := ExtractUpload(rec, req, MasterAudioFilter); err == nil {
		t.Fatal("expected flac upload to be rejected")
	}
}
