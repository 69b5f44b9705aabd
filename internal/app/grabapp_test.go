package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagegrab/go-pagegrab/internal/export/csv"
	"github.com/pagegrab/go-pagegrab/internal/misc"
)

func TestParseOption(t *testing.T) {
	opt, err := ParseOption(ArgsList{
		URL:     "https://example.com/docs",
		Output:  ".",
		Pattern: `\.zip$`,
		All:     false,
	})
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/docs", opt.PageURL)
	assert.True(t, filepath.IsAbs(opt.Root))
	assert.True(t, opt.Pattern.MatchString("https://example.com/a.zip"))
}

func TestParseOption_InvalidURL(t *testing.T) {
	for _, rawURL := range []string{"", "not a url", "/docs"} {
		opt, err := ParseOption(ArgsList{URL: rawURL})
		assert.Nil(t, opt)
		assert.Error(t, err)
	}
}

func TestParseOption_InvalidPattern(t *testing.T) {
	opt, err := ParseOption(ArgsList{URL: "https://example.com", Pattern: "["})
	assert.Nil(t, opt)
	assert.Error(t, err)
}

func TestApplySelection(t *testing.T) {
	srvPage := `<html><body>
		<a href="a.pdf">a</a>
		<a href="b.zip">b</a>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(srvPage))
	}))
	t.Cleanup(srv.Close)

	opt, err := ParseOption(ArgsList{URL: srv.URL, Output: t.TempDir(), Pattern: `\.zip$`})
	assert.NoError(t, err)

	a := NewApp(opt)
	links, err := a.discoverer.Discover(opt.PageURL)
	assert.NoError(t, err)

	a.applySelection(links)
	assert.False(t, links[0].IsSelected())
	assert.True(t, links[1].IsSelected())

	a.option.Pattern = nil
	a.option.All = true
	a.applySelection(links)
	assert.True(t, links[0].IsSelected())
	assert.True(t, links[1].IsSelected())
}

func TestExecute_DownloadsSelectedAndWritesManifest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<a href="/files/report.pdf">r</a><a href="/page2">p</a>`))
	})
	mux.HandleFunc("/files/report.pdf", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	root := t.TempDir()
	opt, err := ParseOption(ArgsList{URL: srv.URL + "/docs", Output: root, Manifest: true})
	assert.NoError(t, err)

	assert.NoError(t, NewApp(opt).Execute(context.Background()))

	u, err := url.Parse(srv.URL)
	assert.NoError(t, err)
	dir := filepath.Join(root, u.Hostname())

	// Only the pre-selected pdf link is downloaded.
	assert.True(t, misc.IsFileExists(filepath.Join(dir, "report.pdf")))
	assert.False(t, misc.IsFileExists(filepath.Join(dir, "page2")))
	assert.True(t, misc.IsFileExists(filepath.Join(dir, csv.FileName)))
}

func TestExecute_DiscoveryFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	opt, err := ParseOption(ArgsList{URL: srv.URL, Output: t.TempDir()})
	assert.NoError(t, err)

	assert.Error(t, NewApp(opt).Execute(context.Background()))
}
