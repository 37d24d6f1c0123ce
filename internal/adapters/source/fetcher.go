// Package source makes build sources and release archives available on disk.
package source

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/rbwasm/internal/build"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

const responseHeaderTimeout = 60 * time.Second

var _ ports.ArchiveFetcher = (*Fetcher)(nil)

// Fetcher downloads gzip compressed tarballs and extracts them with tar.
type Fetcher struct {
	client    *http.Client
	runner    ports.CommandRunner
	userAgent string
}

// NewFetcher creates a new Fetcher extracting with runner.
func NewFetcher(runner ports.CommandRunner) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = responseHeaderTimeout

	return NewFetcherWithClient(runner, &http.Client{Transport: transport})
}

// NewFetcherWithClient creates a Fetcher using a custom http client.
func NewFetcherWithClient(runner ports.CommandRunner, client *http.Client) *Fetcher {
	return &Fetcher{
		client:    client,
		runner:    runner,
		userAgent: "rbwasm/" + build.Version,
	}
}

// Fetch streams the archive at url into "tar xz --strip-components <strip>".
// Extraction happens in a sibling of targetDir which is renamed into place
// only when both the download and tar succeeded. On failure nothing is left behind.
func (f *Fetcher) Fetch(ctx context.Context, url, targetDir string, strip int) error {
	parent := filepath.Dir(targetDir)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "dir", parent)
	}

	partial, err := os.MkdirTemp(parent, filepath.Base(targetDir)+".partial-")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "dir", parent)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(partial)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := zerr.With(domain.ErrUnexpectedStatus, "status", resp.StatusCode)
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}

	err = f.runner.Run(ctx, &domain.Command{
		Name:        "tar",
		Args:        []string{"xz", "--strip-components", strconv.Itoa(strip)},
		Dir:         partial,
		Stdin:       resp.Body,
		Description: "tar",
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "url", url)
	}

	if err := os.Rename(partial, targetDir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "dir", targetDir)
	}
	committed = true

	return nil
}
