package enums

// ArtFormat is the stored cover-art file extension. Uploads only ever record
// jpg; png exists because legacy rows carried it.
type ArtFormat string

const (
	ArtFormatJPG ArtFormat = "jpg"
	ArtFormatPNG ArtFormat = "png"
)

func (f ArtFormat) String() string {
	return string(f)
}

func (f ArtFormat) IsValid() bool {
	return f == ArtFormatJPG || f == ArtFormatPNG
}

// MasterFormat is the stored master-audio file extension. Uploads record mp3
// or wav; flac exists for legacy rows.
type MasterFormat string

const (
	MasterFormatMP3  MasterFormat = "mp3"
	MasterFormatWAV  MasterFormat = "wav"
	MasterFormatFLAC MasterFormat = "flac"
)

func (f MasterFormat) String() string {
	return string(f)
}

func (f MasterFormat) IsValid() bool {
	return f == MasterFormatMP3 || f == MasterFormatWAV || f == MasterFormatFLAC
}
