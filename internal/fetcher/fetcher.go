// Package fetcher downloads spectrum-licence dumps over HTTP or FTP.
package fetcher

import (
	"context"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// Fetcher downloads a remote document.
type Fetcher interface {
	// Download fetches the URL and returns the response body. The caller
	// must close it.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// FetchString downloads the URL and returns the body as a newline-normalized
// string (CRLF converted to LF). The parser operates on LF-delimited text;
// normalization happens here at the boundary, not in the parser.
func FetchString(ctx context.Context, f Fetcher, url string) (string, error) {
	rc, err := f.Download(ctx, url)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: read body of %s", url)
	}
	return Normalize(string(data)), nil
}

// Normalize converts CRLF line endings to LF.
func Normalize(doc string) string {
	return strings.ReplaceAll(doc, "\r\n", "\n")
}

// ForURL returns the fetcher matching the URL scheme: FTP for ftp://,
// HTTP otherwise.
func ForURL(url string, httpF *HTTPFetcher, ftpF *FTPFetcher) Fetcher {
	if strings.HasPrefix(url, "ftp://") {
		return ftpF
	}
	return httpF
}
