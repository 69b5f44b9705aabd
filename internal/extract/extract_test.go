package extract

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, rawURL string) *url.URL {
	u, err := url.Parse(rawURL)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return u
}

func TestLinks_ResolvesAgainstBase(t *testing.T) {
	base := mustParse(t, "https://example.com/docs/")
	html := `<html><body>
		<a href="report.pdf">r</a>
		<a href="/page2">p</a>
		<a href="https://other.example.org/file.zip">z</a>
	</body></html>`

	links, err := Links(strings.NewReader(html), base)
	assert.NoError(t, err)
	if !assert.Len(t, links, 3) {
		t.FailNow()
	}
	assert.Equal(t, "https://example.com/docs/report.pdf", links[0].String())
	assert.Equal(t, "https://example.com/page2", links[1].String())
	assert.Equal(t, "https://other.example.org/file.zip", links[2].String())
}

func TestLinks_DropsEmptyAndNonHTTP(t *testing.T) {
	base := mustParse(t, "https://example.com/")
	html := `<html><body>
		<a href="">empty</a>
		<a>missing</a>
		<a href="javascript:void(0)">js</a>
		<a href="mailto:someone@example.com">mail</a>
		<a href="ok.html">kept</a>
	</body></html>`

	links, err := Links(strings.NewReader(html), base)
	assert.NoError(t, err)
	if !assert.Len(t, links, 1) {
		t.FailNow()
	}
	assert.Equal(t, "https://example.com/ok.html", links[0].String())
}

func TestLinks_DropsUnparsableHref(t *testing.T) {
	base := mustParse(t, "https://example.com/")
	html := `<a href="http://[::1]:namedport/">bad</a><a href="good">g</a>`

	links, err := Links(strings.NewReader(html), base)
	assert.NoError(t, err)
	if !assert.Len(t, links, 1) {
		t.FailNow()
	}
	assert.Equal(t, "https://example.com/good", links[0].String())
}

func TestLinks_KeepsDuplicatesInDocumentOrder(t *testing.T) {
	base := mustParse(t, "https://example.com/")
	html := `<a href="a">1</a><a href="b">2</a><a href="a">3</a>`

	links, err := Links(strings.NewReader(html), base)
	assert.NoError(t, err)
	if !assert.Len(t, links, 3) {
		t.FailNow()
	}
	assert.Equal(t, "https://example.com/a", links[0].String())
	assert.Equal(t, "https://example.com/b", links[1].String())
	assert.Equal(t, "https://example.com/a", links[2].String())
}

func TestLinks_RecoversFromSloppyMarkup(t *testing.T) {
	base := mustParse(t, "https://example.com/")
	html := `<div><a href="one">unclosed<table><a href="two">`

	links, err := Links(strings.NewReader(html), base)
	assert.NoError(t, err)
	assert.Len(t, links, 2)
}
