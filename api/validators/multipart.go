package validators

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/soundrift/soundrift-backend/pkg/enums"
	pkgerrors "github.com/soundrift/soundrift-backend/pkg/errors"
)

const (
	// multipartMemory bounds how much of the body is buffered in memory
	// before spilling to temp files.
	multipartMemory = 10 << 20

	MaxCoverArtBytes    = 3000 * 3000
	MaxMasterAudioBytes = 100 << 20
)

// UploadFilter gates a multipart file field by extension and size before any
// business logic runs.
type UploadFilter struct {
	Field      string
	MaxBytes   int64
	Extensions []string
}

// CoverArtFilter accepts album cover art uploads. Legacy png rows exist but
// new uploads are jpg only.
var CoverArtFilter = UploadFilter{
	Field:      "coverArtFile",
	MaxBytes:   MaxCoverArtBytes,
	Extensions: []string{enums.ArtFormatJPG.String()},
}

// MasterAudioFilter accepts song master audio uploads. Legacy flac rows exist
// but new uploads are mp3 or wav only.
var MasterAudioFilter = UploadFilter{
	Field:      "masterFilename",
	MaxBytes:   MaxMasterAudioBytes,
	Extensions: []string{enums.MasterFormatMP3.String(), enums.MasterFormatWAV.String()},
}

// FileUpload carries an accepted multipart file into the service layer.
type FileUpload struct {
	File      multipart.File
	Filename  string
	Extension string
	Size      int64
}

func (u *FileUpload) Close() error {
	if u == nil || u.File == nil {
		return nil
	}
	return u.File.Close()
}

// ExtractUpload parses the multipart form and returns the filtered file. The
// request body is capped before parsing so oversized uploads fail without
// being read in full.
func ExtractUpload(w http.ResponseWriter, r *http.Request, filter UploadFilter) (*FileUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, filter.MaxBytes+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the size limit")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	file, header, err := r.FormFile(filter.Field)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("missing file field %q", filter.Field))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !filter.allows(ext) {
		file.Close()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported file extension %q", ext)).
			WithDetails(map[string]any{"allowed": filter.Extensions})
	}

	if header.Size > filter.MaxBytes {
		file.Close()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the size limit")
	}

	return &FileUpload{
		File:      file,
		Filename:  header.Filename,
		Extension: ext,
		Size:      header.Size,
	}, nil
}

func (f UploadFilter) allows(ext string) bool {
	for _, allowed := range f.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
