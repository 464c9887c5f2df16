package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"ytinfo/youtube"
)

// hitLog records requested API paths in order.
type hitLog struct {
	mu    sync.Mutex
	paths []string
}

func (h *hitLog) add(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, path)
}

func (h *hitLog) list() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.paths...)
}

// newTestClient returns a client whose API calls are answered from routes,
// keyed by request path. Unknown paths fail with a quota error.
func newTestClient(t *testing.T, routes map[string]string, hits *hitLog) *youtube.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.add(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `{"error":{"code":403,"message":"quota exceeded","errors":[{"reason":"quotaExceeded"}]}}`)
			return
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	client, err := youtube.NewClient(context.Background(), "test-key", option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	client.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return client
}

const (
	channelBody = `{"items":[{
  "id": "UC_x5XG1OV2P6uZZ5FSM9Ttw",
  "snippet": {"title": "Google for Developers", "description": "Dev talks", "publishedAt": "2007-08-23T00:34:43Z"},
  "statistics": {"viewCount": "1000", "hiddenSubscriberCount": true, "videoCount": "12"},
  "contentDetails": {"relatedPlaylists": {"uploads": "UU_x5XG1OV2P6uZZ5FSM9Ttw"}}
}]}`
	playlistBody = `{"items":[
  {"snippet": {"title": "Go 1.23 release", "publishedAt": "2024-08-13T16:00:00Z", "resourceId": {"videoId": "abc123"}}},
  {"snippet": {"title": "Intro to generics", "publishedAt": "2024-08-01T16:00:00Z", "resourceId": {"videoId": "def456"}}}
]}`
)

func TestRunPrintsChannelAndVideos(t *testing.T) {
	var hits hitLog
	client := newTestClient(t, map[string]string{
		"/youtube/v3/channels":      channelBody,
		"/youtube/v3/playlistItems": playlistBody,
	}, &hits)

	var out bytes.Buffer
	in := strings.NewReader("https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw\n")
	require.NoError(t, run(context.Background(), client, 5, 0, in, &out))

	want := prompt + "\n>" + `
Channel Information:
Channel ID: UC_x5XG1OV2P6uZZ5FSM9Ttw
Title: Google for Developers
Description: Dev talks
Published At: 2007-08-23T00:34:43Z
Subscribers: Hidden
Views: 1000
Video Count: 12
Uploads Playlist ID: UU_x5XG1OV2P6uZZ5FSM9Ttw

Latest Videos:
- Go 1.23 release (2024-08-13T16:00:00Z)
  https://www.youtube.com/watch?v=abc123
- Intro to generics (2024-08-01T16:00:00Z)
  https://www.youtube.com/watch?v=def456
`
	assert.Equal(t, want, out.String())
	assert.Equal(t, []string{"/youtube/v3/channels", "/youtube/v3/playlistItems"}, hits.list())
}

func TestRunInputWithoutTrailingNewline(t *testing.T) {
	var hits hitLog
	client := newTestClient(t, map[string]string{
		"/youtube/v3/channels":      channelBody,
		"/youtube/v3/playlistItems": `{"items":[]}`,
	}, &hits)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), client, 5, 0, strings.NewReader("https://www.youtube.com/user/GoogleDevelopers"), &out))
	assert.Contains(t, out.String(), "Channel ID: UC_x5XG1OV2P6uZZ5FSM9Ttw")
	assert.True(t, strings.HasSuffix(out.String(), "Latest Videos:\n"))
}

func TestRunNotFoundSkipsVideos(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		routes  map[string]string
		wantMsg string
	}{
		{
			name:    "direct lookup",
			input:   "https://www.youtube.com/channel/UCmissing\n",
			routes:  map[string]string{"/youtube/v3/channels": `{"items":[]}`},
			wantMsg: "No channel found.\n",
		},
		{
			name:    "custom url search",
			input:   "https://www.youtube.com/c/NoSuchCreator\n",
			routes:  map[string]string{"/youtube/v3/search": `{"items":[]}`},
			wantMsg: "No channel found for custom URL or search term.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits hitLog
			client := newTestClient(t, tt.routes, &hits)

			var out bytes.Buffer
			require.NoError(t, run(context.Background(), client, 5, 0, strings.NewReader(tt.input), &out))
			assert.Equal(t, prompt+"\n>"+tt.wantMsg, out.String())
			assert.NotContains(t, hits.list(), "/youtube/v3/playlistItems")
		})
	}
}

func TestRunInvalidURL(t *testing.T) {
	var hits hitLog
	client := newTestClient(t, nil, &hits)

	var out bytes.Buffer
	err := run(context.Background(), client, 5, 0, strings.NewReader("https://www.youtube.com/watch?v=abc\n"), &out)
	require.ErrorIs(t, err, youtube.ErrInvalidURLFormat)
	assert.Empty(t, hits.list())
}

func TestRunEmptyInput(t *testing.T) {
	var hits hitLog
	client := newTestClient(t, nil, &hits)

	err := run(context.Background(), client, 5, 0, strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Empty(t, hits.list())
}

func TestRunAPIFailurePropagates(t *testing.T) {
	var hits hitLog
	client := newTestClient(t, map[string]string{"/youtube/v3/channels": channelBody}, &hits)

	err := run(context.Background(), client, 5, 0, strings.NewReader("https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw\n"), io.Discard)

	var apiErr *youtube.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "playlistItems.list", apiErr.Op)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode())
}

// slowReader returns its content only after delay has passed.
type slowReader struct {
	delay time.Duration
	r     io.Reader
}

func (s *slowReader) Read(p []byte) (int, error) {
	time.Sleep(s.delay)
	s.delay = 0
	return s.r.Read(p)
}

func TestRunTimeoutStartsAfterPrompt(t *testing.T) {
	var hits hitLog
	client := newTestClient(t, map[string]string{
		"/youtube/v3/channels":      channelBody,
		"/youtube/v3/playlistItems": playlistBody,
	}, &hits)

	in := &slowReader{
		delay: 200 * time.Millisecond,
		r:     strings.NewReader("https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw\n"),
	}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), client, 5, 150*time.Millisecond, in, &out))
	assert.Contains(t, out.String(), "Latest Videos:")
	assert.Equal(t, []string{"/youtube/v3/channels", "/youtube/v3/playlistItems"}, hits.list())
}

func TestRunTimeoutBoundsAPICalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	client, err := youtube.NewClient(context.Background(), "test-key", option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	client.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	err = run(context.Background(), client, 5, 50*time.Millisecond, strings.NewReader("https://www.youtube.com/channel/UCx\n"), io.Discard)

	var apiErr *youtube.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
