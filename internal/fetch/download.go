package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/previoip/srcds-resource-manager/internal/domain"
)

const partSuffix = ".part"

// Download fetches rawURL into dir. The file name comes from
// Content-Disposition or the final URL. An existing file of the announced
// size is kept and reported as skipped. Data is streamed to a .part file
// that is renamed on success and removed on failure.
func (c *Client) Download(ctx context.Context, rawURL, dir string) (domain.DownloadResult, error) {
	result := domain.DownloadResult{URL: rawURL}

	resp, isGet, err := c.inspect(ctx, rawURL)
	if err != nil {
		return result, err
	}
	defer func() { _ = resp.Body.Close() }()

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	name := pickFilename(resp.Header.Get("Content-Disposition"), finalURL)
	size := resp.ContentLength

	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, fmt.Errorf("create download directory: %w", err)
	}

	dst := filepath.Join(dir, name)
	result.Filename = name
	result.Path = dst

	if info, err := os.Stat(dst); err == nil && info.Mode().IsRegular() {
		if size >= 0 && info.Size() == size {
			c.logger.Info("fetch: %s already exists (%d bytes)", dst, size)
			result.Size = size
			result.Skipped = true
			return result, nil
		}
		c.logger.Info("fetch: size mismatch, downloading again: %s", dst)
	}

	if !isGet {
		_ = resp.Body.Close()
		resp, err = c.do(ctx, http.MethodGet, rawURL, nil, nil)
		if err != nil {
			return result, err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.ContentLength >= 0 {
			size = resp.ContentLength
		}
	}

	n, err := c.stream(ctx, resp.Body, dst, name, size)
	if err != nil {
		return result, err
	}

	result.Size = n
	c.logger.Info("fetch: saved %s (%d bytes)", dst, n)
	return result, nil
}

// inspect asks for file info with HEAD and falls back to GET when the server
// refuses HEAD. isGet reports whether resp already carries the body.
func (c *Client) inspect(ctx context.Context, rawURL string) (*http.Response, bool, error) {
	resp, err := c.do(ctx, http.MethodHead, rawURL, nil, nil)
	if err == nil {
		return resp, false, nil
	}
	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}

	c.logger.Warn("fetch: HEAD %s failed, trying GET: %v", rawURL, err)
	resp, err = c.do(ctx, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return nil, false, err
	}
	return resp, true, nil
}

func (c *Client) stream(ctx context.Context, body io.Reader, dst, name string, size int64) (int64, error) {
	part := dst + partSuffix

	f, err := os.OpenFile(part, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", part, err)
	}

	tracker := c.reporter.Track(name, size)
	n, err := io.Copy(io.MultiWriter(f, tracker), body)
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err == nil && size >= 0 && n != size {
		err = fmt.Errorf("short body: got %d of %d bytes", n, size)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	tracker.Finish(err)

	if err != nil {
		_ = os.Remove(part)
		c.logger.Error("fetch: %s: %v", name, err)
		return n, fmt.Errorf("download %s: %w", name, err)
	}

	if err := os.Rename(part, dst); err != nil {
		_ = os.Remove(part)
		return n, fmt.Errorf("finish %s: %w", name, err)
	}
	return n, nil
}
