package page

import (
	"bytes"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/pagegrab/go-pagegrab/internal/extract"
	"github.com/pagegrab/go-pagegrab/internal/misc"
)

// Discovery failures. Callers match them with errors.Is; the wrapped
// message carries the detail.
var (
	ErrInvalidURL = errors.New("invalid page URL")
	ErrNetwork    = errors.New("network failure")
	ErrDecode     = errors.New("response body is not valid UTF-8")
	ErrHTMLParse  = errors.New("malformed HTML")
)

// Browser-like headers for the page fetch. Some sites refuse requests
// without them.
var discoverHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

var log = misc.NewLogger("Page", 2)

// Discoverer fetches a page and extracts its anchor links.
type Discoverer struct {
	client *resty.Client
}

func NewDiscoverer() *Discoverer {
	return &Discoverer{
		client: resty.New().
			SetTimeout(time.Minute).
			SetHeaders(discoverHeaders),
	}
}

// Discover fetches pageURL and returns one Link per resolvable anchor
// href, in document order. A page carrying the same href twice yields
// two links. Any failure aborts the whole call; no partial result is
// returned.
func (d Discoverer) Discover(pageURL string) ([]*Link, error) {
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() || base.Host == "" {
		return nil, errors.Wrap(ErrInvalidURL, pageURL)
	}

	resp, err := d.client.R().Get(base.String())
	if err != nil {
		return nil, errors.Wrap(ErrNetwork, "GET "+pageURL+" failed: "+err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Wrap(ErrNetwork, "GET "+pageURL+" failed: "+resp.Status())
	}

	body := resp.Body()
	if !utf8.Valid(body) {
		return nil, errors.Wrap(ErrDecode, pageURL)
	}

	hrefs, err := extract.Links(bytes.NewReader(body), base)
	if err != nil {
		return nil, errors.Wrap(ErrHTMLParse, err.Error())
	}

	links := make([]*Link, 0, len(hrefs))
	for _, u := range hrefs {
		links = append(links, newLink(u))
	}
	log.Trace("Discovered %d links on %s.", len(links), pageURL)

	return links, nil
}
