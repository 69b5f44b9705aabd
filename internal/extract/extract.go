package extract

import (
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// Links parses HTML from r and returns the absolute URL of every anchor
// href, resolved against base, in document order. Empty hrefs, hrefs
// that fail to parse, and non-http(s) schemes (javascript:, mailto:)
// are dropped without error. Duplicates are kept.
func Links(r io.Reader, base *url.URL) ([]*url.URL, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var links []*url.URL
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		if u := resolve(base, href); u != nil {
			links = append(links, u)
		}
	})

	return links, nil
}

func resolve(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}

	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}
	return u
}
