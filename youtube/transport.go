package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"google.golang.org/api/googleapi/transport"
)

type rawBodyKey struct{}

// withRawBody asks the client transport to copy the response body of the
// request made with the returned context into buf.
func withRawBody(ctx context.Context, buf *bytes.Buffer) context.Context {
	return context.WithValue(ctx, rawBodyKey{}, buf)
}

// rawBodyTransport tees response bodies into the buffer carried by the
// request context, if any.
type rawBodyTransport struct {
	base http.RoundTripper
}

func (t *rawBodyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.Body == nil {
		return resp, err
	}
	if buf, ok := req.Context().Value(rawBodyKey{}).(*bytes.Buffer); ok {
		resp.Body = teeReadCloser{Reader: io.TeeReader(resp.Body, buf), Closer: resp.Body}
	}
	return resp, nil
}

type teeReadCloser struct {
	io.Reader
	io.Closer
}

// newHTTPClient returns an HTTP client that authenticates every request with
// apiKey as the "key" query parameter.
func newHTTPClient(apiKey string) *http.Client {
	return &http.Client{
		Transport: &rawBodyTransport{
			base: &transport.APIKey{Key: apiKey, Transport: http.DefaultTransport},
		},
	}
}

// subscriberCountPresent reports whether the first channel of a raw
// channels.list body carries a subscriberCount key. known is false when the
// body could not be inspected.
func subscriberCountPresent(body []byte) (present, known bool) {
	var raw struct {
		Items []struct {
			Statistics map[string]json.RawMessage `json:"statistics"`
		} `json:"items"`
	}
	if len(body) == 0 {
		return false, false
	}
	if err := json.Unmarshal(body, &raw); err != nil || len(raw.Items) == 0 {
		return false, false
	}
	_, present = raw.Items[0].Statistics["subscriberCount"]
	return present, true
}
