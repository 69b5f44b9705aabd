package page

import (
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Link is one hyperlink discovered on a page together with its
// selection state. A fresh batch of links is created by every Discover
// call; after creation the only mutation is the selection flag.
type Link struct {
	id       string
	url      string
	selected bool
}

// NewLink creates a link for an already-absolute http(s) URL. It is the
// entry point for callers that carry URLs from elsewhere instead of a
// Discover result.
func NewLink(rawURL string) (*Link, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, errors.Wrap(ErrInvalidURL, rawURL)
	}
	return newLink(u), nil
}

func newLink(u *url.URL) *Link {
	return &Link{
		id:       uuid.NewString(),
		url:      u.String(),
		selected: looksLikePDF(u),
	}
}

func (l Link) ID() string {
	return l.id
}

func (l Link) URL() string {
	return l.url
}

func (l Link) IsSelected() bool {
	return l.selected
}

func (l *Link) Select(selected bool) {
	l.selected = selected
}

// Toggle flips the selection state.
func (l *Link) Toggle() {
	l.selected = !l.selected
}

// Selected returns the links whose selection flag is set, keeping order.
func Selected(links []*Link) []*Link {
	selected := make([]*Link, 0, len(links))
	for _, l := range links {
		if l.IsSelected() {
			selected = append(selected, l)
		}
	}
	return selected
}

// looksLikePDF reports whether the URL path ends in ".pdf", ignoring
// case. Query strings do not take part in the check.
func looksLikePDF(u *url.URL) bool {
	return strings.EqualFold(path.Ext(u.Path), ".pdf")
}
