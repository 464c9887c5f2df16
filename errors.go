package ytinfo

import (
	"errors"

	"ytinfo/youtube"
)

// Type aliases for convenient error handling.
type (
	// APIError wraps a failed Data API call.
	APIError = youtube.APIError
	// NotFoundError reports a reference that matched no channel.
	NotFoundError = youtube.NotFoundError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrInvalidURLFormat indicates the URL has no /channel/, /user/ or /c/ segment.
	ErrInvalidURLFormat = youtube.ErrInvalidURLFormat
	// ErrChannelNotFound indicates no channel matched the reference.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrResolveDepth indicates channel resolution recursed past its bound.
	ErrResolveDepth = youtube.ErrResolveDepth
)

// IsNotFound reports whether err means the channel does not exist, as opposed
// to the lookup having failed.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrChannelNotFound)
}
