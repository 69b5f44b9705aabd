package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pagegrab/go-pagegrab/api/page/downloader"
)

// FileName of the manifest written into a run's destination directory.
const FileName = "manifest.csv"

var csvHeader = []string{"url", "file", "status", "error"}

// WriteManifest writes one row per attempted item of run into
// manifest.csv inside the run's destination directory and returns the
// manifest path.
func WriteManifest(run *downloader.Run) (string, error) {
	fpath := filepath.Join(run.Dir, FileName)
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0666)
	if err != nil {
		return "", errors.Wrap(err, "Create file ["+fpath+"] failed")
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err = w.Write(csvHeader); err != nil {
		return "", errors.Wrap(err, "Write manifest header failed")
	}
	for _, r := range run.Results {
		row := []string{r.URL, "", "ok", ""}
		if r.Failed() {
			row[2] = "failed"
			row[3] = r.Err.Error()
		} else {
			row[1] = filepath.Base(r.Path)
		}
		if err = w.Write(row); err != nil {
			return "", errors.Wrap(err, "Write manifest row failed")
		}
	}
	w.Flush()

	return fpath, errors.Wrap(w.Error(), "Flush manifest failed")
}
