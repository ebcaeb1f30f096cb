package mortality

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Sleep to not hammer the portal when called in a loop.
var downloadDelay = 250 * time.Millisecond

// Download fetches url and writes the body to dst. dst is left untouched on
// failure.
func Download(ctx context.Context, client *http.Client, url, dst string) (int64, error) {
	if client == nil {
		client = http.DefaultClient
	}

	ctxlog.From(ctx).Info("Download", "url", url)

	select {
	case <-time.After(downloadDelay):
	case <-ctx.Done():
		return 0, goerr.Wrap(ctx.Err(), "download cancelled", goerr.V("url", url))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to build request", goerr.V("url", url))
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to download", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, goerr.New("unexpected response status",
			goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".download-*")
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create temporary file", goerr.V("dst", dst))
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return 0, goerr.Wrap(err, "failed to read response body", goerr.V("url", url))
	}
	if err := tmp.Close(); err != nil {
		return 0, goerr.Wrap(err, "failed to write download", goerr.V("dst", dst))
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return 0, goerr.Wrap(err, "failed to move download into place", goerr.V("dst", dst))
	}

	return n, nil
}
