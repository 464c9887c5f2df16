// Package youtube resolves channel references and lists channel uploads
// through the YouTube Data API v3.
package youtube

import (
	"errors"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for channel lookups.
var (
	ErrInvalidURLFormat = errors.New("youtube: invalid or unsupported channel URL format")
	ErrChannelNotFound  = errors.New("youtube: channel not found")
	ErrResolveDepth     = errors.New("youtube: channel resolution exceeded maximum depth")
)

const (
	// DefaultMaxVideos is the number of uploads listed when no limit is given.
	DefaultMaxVideos = 5

	// HiddenSubscriberCount replaces the subscriber count of channels that keep it private.
	HiddenSubscriberCount = "Hidden"

	watchURLPrefix = "https://www.youtube.com/watch?v="
)

// ChannelInfo contains channel metadata and statistics.
type ChannelInfo struct {
	// ChannelID is the canonical channel ID (e.g., "UCuAXFkgsw1L7xaCfnd5JJOw").
	ChannelID string `json:"channel_id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// PublishedAt is the channel creation time as returned by the API (RFC 3339).
	PublishedAt string `json:"published_at"`

	// SubscriberCount is a decimal count, or HiddenSubscriberCount.
	SubscriberCount string `json:"subscriber_count"`

	// SubscribersHidden is true when SubscriberCount holds HiddenSubscriberCount.
	SubscribersHidden bool `json:"subscribers_hidden"`

	// ViewCount and VideoCount are decimal counts, "0" when the API omits them.
	ViewCount  string `json:"view_count"`
	VideoCount string `json:"video_count"`

	// UploadsPlaylistID identifies the playlist holding every public upload.
	UploadsPlaylistID string `json:"uploads_playlist_id"`
}

// VideoSummary describes one item of a channel's uploads playlist.
type VideoSummary struct {
	Title       string `json:"title"`
	VideoID     string `json:"video_id"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
}

// VideoURL returns the watch page URL for a video ID.
func VideoURL(videoID string) string {
	return watchURLPrefix + videoID
}

// NotFoundError reports that a reference did not match any channel.
// It matches ErrChannelNotFound with errors.Is:
//
//	var nf *youtube.NotFoundError
//	if errors.As(err, &nf) {
//		fmt.Println(nf.Error())
//	}
type NotFoundError struct {
	// Ref is the reference that was being resolved.
	Ref Reference
	// ViaSearch is true when the search fallback for custom URLs came back empty.
	ViaSearch bool
}

func (e *NotFoundError) Error() string {
	if e.ViaSearch {
		return "No channel found for custom URL or search term."
	}
	return "No channel found."
}

// Is reports whether target is ErrChannelNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrChannelNotFound }

// APIError wraps a failed Data API call with the operation that issued it.
// Transport errors, rejected credentials and quota errors all surface as APIError.
type APIError struct {
	// Op names the API method ("channels.list", "search.list", "playlistItems.list").
	Op string
	// Err is the underlying error returned by the API client.
	Err error
}

func (e *APIError) Error() string {
	return "youtube: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *APIError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status of the failed call, or 0 when the call
// never got a response.
func (e *APIError) StatusCode() int {
	var gerr *googleapi.Error
	if errors.As(e.Err, &gerr) {
		return gerr.Code
	}
	return 0
}
