package core

// Downloader fetches a single URL into a local file.
type Downloader interface {
	Download(URL string, toFilePath string) (httpStatusCode int, filesize int64, err error)
}
