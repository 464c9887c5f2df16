package youtube

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// maxResolveDepth bounds re-resolution: a custom reference resolves to an
// ID reference, which never recurses again.
const maxResolveDepth = 1

var channelParts = []string{"snippet", "statistics", "contentDetails"}

// Client wraps the YouTube Data API v3 service.
// It is safe to reuse for every call of a run; it holds no mutable state.
type Client struct {
	service *youtube.Service
	logger  *slog.Logger
}

// NewClient creates a Data API client authenticated with apiKey.
// The key is not checked against the API; a rejected key surfaces as an
// APIError from the first call. Extra options are applied after the key,
// e.g. option.WithEndpoint to target a test server. Passing
// option.WithHTTPClient replaces the keyed client, and subscriber counts
// are then judged from hiddenSubscriberCount alone.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	opts = append([]option.ClientOption{option.WithHTTPClient(newHTTPClient(apiKey))}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{
		service: service,
		logger:  slog.Default().With("component", "youtube"),
	}, nil
}

// SetLogger replaces the logger used for lookup diagnostics.
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	c.logger = logger.With("component", "youtube")
}

// ResolveChannel fetches metadata and statistics for the channel ref points to.
//
// Custom references are resolved through a one-result channel search whose
// first hit is then looked up by ID. This is a relevance match, not an exact
// one. When nothing matches, the returned error is a *NotFoundError.
func (c *Client) ResolveChannel(ctx context.Context, ref Reference) (*ChannelInfo, error) {
	return c.resolve(ctx, ref, 0)
}

func (c *Client) resolve(ctx context.Context, ref Reference, depth int) (*ChannelInfo, error) {
	if depth > maxResolveDepth {
		return nil, fmt.Errorf("%w: %s", ErrResolveDepth, ref)
	}

	call := c.service.Channels.List(channelParts)
	switch ref.Kind {
	case KindID:
		call = call.Id(ref.Value)
	case KindUsername:
		call = call.ForUsername(ref.Value)
	case KindCustom:
		channelID, err := c.searchChannel(ctx, ref)
		if err != nil {
			return nil, err
		}
		return c.resolve(ctx, Reference{Kind: KindID, Value: channelID}, depth+1)
	default:
		return nil, fmt.Errorf("youtube: unsupported reference kind %s", ref.Kind)
	}

	c.logger.Debug("looking up channel", "ref", ref.String())
	var raw bytes.Buffer
	resp, err := call.Context(withRawBody(ctx, &raw)).Do()
	if err != nil {
		return nil, &APIError{Op: "channels.list", Err: err}
	}

	if len(resp.Items) == 0 {
		nf := &NotFoundError{Ref: ref}
		c.logger.Info(nf.Error(), "ref", ref.String())
		return nil, nf
	}

	info := channelInfo(resp.Items[0])
	if present, known := subscriberCountPresent(raw.Bytes()); known && !present {
		info.SubscriberCount = HiddenSubscriberCount
		info.SubscribersHidden = true
	}
	return info, nil
}

// searchChannel returns the ID of the best search match for a custom name.
func (c *Client) searchChannel(ctx context.Context, ref Reference) (string, error) {
	c.logger.Debug("searching channel", "query", ref.Value)
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(ref.Value).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", &APIError{Op: "search.list", Err: err}
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		nf := &NotFoundError{Ref: ref, ViaSearch: true}
		c.logger.Info(nf.Error(), "ref", ref.String())
		return "", nf
	}

	channelID := resp.Items[0].Snippet.ChannelId
	c.logger.Debug("search matched channel", "query", ref.Value, "channel_id", channelID)
	return channelID, nil
}

// channelInfo flattens an API channel resource. The client decodes absent
// counts as zero, so a missing subscriberCount is only caught here through
// hiddenSubscriberCount; ResolveChannel also checks the raw body.
func channelInfo(ch *youtube.Channel) *ChannelInfo {
	info := &ChannelInfo{
		ChannelID:         ch.Id,
		SubscriberCount:   HiddenSubscriberCount,
		SubscribersHidden: true,
		ViewCount:         "0",
		VideoCount:        "0",
	}

	if ch.Snippet != nil {
		info.Title = ch.Snippet.Title
		info.Description = ch.Snippet.Description
		info.PublishedAt = ch.Snippet.PublishedAt
	}

	if st := ch.Statistics; st != nil {
		if !st.HiddenSubscriberCount {
			info.SubscriberCount = strconv.FormatUint(st.SubscriberCount, 10)
			info.SubscribersHidden = false
		}
		info.ViewCount = strconv.FormatUint(st.ViewCount, 10)
		info.VideoCount = strconv.FormatUint(st.VideoCount, 10)
	}

	if cd := ch.ContentDetails; cd != nil && cd.RelatedPlaylists != nil {
		info.UploadsPlaylistID = cd.RelatedPlaylists.Uploads
	}

	return info
}

// ListLatestVideos returns up to maxResults items of an uploads playlist,
// newest first. Only the first page is fetched. maxResults <= 0 means
// DefaultMaxVideos.
func (c *Client) ListLatestVideos(ctx context.Context, uploadsPlaylistID string, maxResults int) ([]VideoSummary, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxVideos
	}

	c.logger.Debug("listing uploads", "playlist_id", uploadsPlaylistID, "max_results", maxResults)
	resp, err := c.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(uploadsPlaylistID).
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &APIError{Op: "playlistItems.list", Err: err}
	}

	videos := make([]VideoSummary, 0, len(resp.Items))
	for _, item := range resp.Items {
		var v VideoSummary
		if sn := item.Snippet; sn != nil {
			v.Title = sn.Title
			v.PublishedAt = sn.PublishedAt
			if sn.ResourceId != nil {
				v.VideoID = sn.ResourceId.VideoId
			}
		}
		v.URL = VideoURL(v.VideoID)
		videos = append(videos, v)
	}

	return videos, nil
}
