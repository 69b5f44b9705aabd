package downloader

import (
	"context"
	"net/url"
	"path"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pagegrab/go-pagegrab/api/page"
	"github.com/pagegrab/go-pagegrab/internal/core"
	"github.com/pagegrab/go-pagegrab/internal/misc"
	"github.com/pagegrab/go-pagegrab/internal/platform"
)

// Run-level failures. Per-item failures never surface here; they are
// collected into the Run instead.
var (
	ErrInvalidURL = errors.New("page URL has no host")
	ErrFilesystem = errors.New("destination directory setup failed")
)

var log = misc.NewLogger("Batch", 2)

// ItemResult is the terminal outcome of one attempted item: Path is set
// on success, Err on failure. Exactly one of the two is set.
type ItemResult struct {
	URL  string
	Path string
	Err  error
}

func (r ItemResult) Failed() bool {
	return r.Err != nil
}

// Listener receives one call per attempted item with its outcome and
// the aggregate progress so far.
type Listener func(link *page.Link, result ItemResult, completed, total int)

var doNothingListener Listener = func(link *page.Link, result ItemResult, completed, total int) {
	// Do nothing. This is a substitution when listener is passed as nil in DownloadAll
}

// Run summarises one batch download.
type Run struct {
	Dir       string
	Completed int
	Total     int
	Results   []ItemResult
}

// Batch downloads selected links one at a time into a directory named
// after the page host.
type Batch struct {
	root       string
	rootErr    error
	downloader core.Downloader
}

// New creates a batch downloader rooted at root. An empty root falls
// back to the platform downloads directory; if that directory cannot
// be resolved, the failure surfaces on the next DownloadAll call.
func New(root string) *Batch {
	b := &Batch{downloader: core.NewDownloader()}
	if root == "" {
		root, b.rootErr = platform.DownloadsDir()
	}
	b.root = root
	return b
}

// DownloadAll downloads every link into "<root>/<host of pageURL>",
// strictly one at a time. The destination directory is wiped and
// recreated before the first item, so two runs against the same host
// never mix artifacts. One item's failure never aborts the run; the
// completed counter moves only on success. Cancellation via ctx is
// honored between items, never mid-transfer, and files already moved
// into place stay on disk.
func (b Batch) DownloadAll(ctx context.Context, links []*page.Link, pageURL string, listener Listener) (*Run, error) {
	if listener == nil {
		listener = doNothingListener
	}

	pu, err := url.Parse(pageURL)
	if err != nil || pu.Host == "" {
		return nil, errors.Wrap(ErrInvalidURL, pageURL)
	}

	if b.rootErr != nil {
		return nil, errors.Wrap(ErrFilesystem, b.rootErr.Error())
	}

	dir := filepath.Join(b.root, pu.Hostname())
	if err = misc.ResetDir(dir); err != nil {
		return nil, errors.Wrap(ErrFilesystem, err.Error())
	}

	run := &Run{Dir: dir, Total: len(links)}
	for _, l := range links {
		if ctx.Err() != nil {
			log.Warn("Download run stopped after %d of %d items.", len(run.Results), run.Total)
			break
		}

		name, ok := targetName(l.URL())
		if !ok {
			log.Warn("Skipping %s: no usable file name.", l.URL())
			continue
		}

		result := b.downloadOne(l.URL(), filepath.Join(dir, name))
		if result.Failed() {
			log.Error("Download %s failed: %v.", l.URL(), result.Err)
		} else {
			run.Completed++
		}
		run.Results = append(run.Results, result)
		listener(l, result, run.Completed, run.Total)
	}

	return run, nil
}

func (b Batch) downloadOne(srcURL, toFilePath string) ItemResult {
	if _, _, err := b.downloader.Download(srcURL, toFilePath); err != nil {
		return ItemResult{
			URL: srcURL,
			Err: errors.Wrap(err, "download item ["+srcURL+"] failed"),
		}
	}
	return ItemResult{URL: srcURL, Path: toFilePath}
}

// targetName derives the destination file name from the final path
// segment of rawURL. Collisions are not de-duplicated; the last write
// wins. ".." is rejected so a hostile href can never name a file
// outside the destination directory.
func targetName(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", false
	}
	return name, true
}
