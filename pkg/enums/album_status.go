package enums

import "fmt"

// AlbumStatus describes where an album sits in the release lifecycle.
type AlbumStatus string

const (
	AlbumStatusDraft     AlbumStatus = "draft"
	AlbumStatusSubmitted AlbumStatus = "submitted"
	AlbumStatusRejected  AlbumStatus = "rejected"
	AlbumStatusApproved  AlbumStatus = "approved"
	AlbumStatusLive      AlbumStatus = "live"
)

var validAlbumStatuses = []AlbumStatus{
	AlbumStatusDraft,
	AlbumStatusSubmitted,
	AlbumStatusRejected,
	AlbumStatusApproved,
	AlbumStatusLive,
}

// String returns the literal string for the status.
func (s AlbumStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is known.
func (s AlbumStatus) IsValid() bool {
	for _, candidate := range validAlbumStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsHardDeletable reports whether albums in this status may be removed for
// good; every other status only ever soft-deletes.
func (s AlbumStatus) IsHardDeletable() bool {
	return s == AlbumStatusDraft || s == AlbumStatusRejected
}

// ParseAlbumStatus converts raw input into an AlbumStatus.
func ParseAlbumStatus(value string) (AlbumStatus, error) {
	for _, candidate := range validAlbumStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid album status %q", value)
}
