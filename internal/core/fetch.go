package core

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/pagegrab/go-pagegrab/internal/misc"
)

const partSuffix = ".part"

var log = misc.NewLogger("Fetch", 2)

type HTTPDownload struct {
	client *resty.Client
}

func NewDownloader() Downloader {
	return &HTTPDownload{
		client: resty.New().
			SetTimeout(5 * time.Minute).
			SetDoNotParseResponse(true),
	}
}

// Download streams URL into toFilePath. The body lands in a ".part"
// file first and is renamed into place on success, so a broken transfer
// never shows up under the final name. Each call runs exactly once;
// callers decide what to do with a failure.
func (h HTTPDownload) Download(URL string, toFilePath string) (httpStatusCode int, filesize int64, err error) {
	resp, err := h.client.R().Get(URL)
	if err != nil {
		log.Error("Download %s failed: %v.", URL, err)
		return
	}

	body := resp.RawBody()
	defer func() {
		_ = body.Close()
	}()

	httpStatusCode = resp.StatusCode()
	if httpStatusCode != http.StatusOK {
		log.Warn("Download %s failed %d:%s.", URL, httpStatusCode, resp.Status())
		err = fmt.Errorf("http error %d:%s", httpStatusCode, resp.Status())
		return
	}

	filesize, err = h.saveBodyToDisk(body, toFilePath)
	return
}

func (h HTTPDownload) saveBodyToDisk(body io.Reader, path string) (filesize int64, err error) {
	// Create dir if not exists
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		err = errors.Wrap(err, "Create folder ["+dir+"] failed")
		return
	}

	partPath := path + partSuffix
	f, err := os.OpenFile(partPath, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0666)
	if err != nil {
		err = errors.Wrap(err, "Create file ["+partPath+"] failed")
		return
	}

	filesize, err = io.Copy(f, body)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(partPath)
		err = errors.Wrap(err, "Saving ["+partPath+"] failed")
		return
	}

	if err = os.Rename(partPath, path); err != nil {
		_ = os.Remove(partPath)
		err = errors.Wrap(err, "Moving ["+partPath+"] into place failed")
	}
	return
}
