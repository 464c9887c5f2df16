package youtube

import (
	"fmt"
	"strings"
)

// Kind identifies how a channel is addressed before it is resolved.
type Kind int

const (
	// KindID addresses a channel by its canonical ID (e.g., "UCuAXFkgsw1L7xaCfnd5JJOw").
	KindID Kind = iota
	// KindUsername addresses a channel by its legacy username.
	KindUsername
	// KindCustom addresses a channel by its custom URL name.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindUsername:
		return "username"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Reference is a typed pointer to a channel prior to resolution.
type Reference struct {
	Kind  Kind
	Value string
}

func (r Reference) String() string {
	return r.Kind.String() + ":" + r.Value
}

// urlSegments lists the recognized path segments in match order.
var urlSegments = []struct {
	segment string
	kind    Kind
}{
	{"/channel/", KindID},
	{"/user/", KindUsername},
	{"/c/", KindCustom},
}

// ParseChannelURL extracts a channel Reference from a channel URL.
//
// The value is the text following the first recognized segment, up to the
// next "/" or the end of the string. Query strings are kept as part of the
// value when no "/" follows them.
func ParseChannelURL(rawURL string) (Reference, error) {
	for _, s := range urlSegments {
		_, rest, found := strings.Cut(rawURL, s.segment)
		if !found {
			continue
		}
		value, _, _ := strings.Cut(rest, "/")
		return Reference{Kind: s.kind, Value: value}, nil
	}
	return Reference{}, fmt.Errorf("%w: %q", ErrInvalidURLFormat, rawURL)
}
