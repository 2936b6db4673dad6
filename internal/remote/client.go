// Package remote implements the mirroring engine's upstream gallery index
// client: fetching one galleryinfo by id and listing the ids a set of
// index files advertise.
package remote

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/saebasol/sunflower/internal/galleryinfo"
	"github.com/saebasol/sunflower/internal/mirror"
)

// ErrNotFound is the concrete not-found sentinel the engine checks for via
// mirror.ErrGalleryinfoNotFound; it is the same error value, aliased here
// so callers constructing a Client never need to import internal/mirror
// directly for error classification.
var ErrNotFound = mirror.ErrGalleryinfoNotFound

// Client fetches galleryinfo records from the upstream index over HTTP,
// and enumerates known ids from a configured set of index files.
type Client struct {
	root       *url.URL
	indexFiles []string
	http       *retryablehttp.Client
}

// New constructs a Client against rootURL, reading the given index files
// to compute AllIDs. A retrying HTTP client is used throughout so
// transient upstream failures do not fail a whole mirror iteration.
func New(rootURL *url.URL, indexFiles []string) *Client {
	c := retryablehttp.NewClient()
	c.Logger = nil

	c.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return &Client{
		root:       rootURL,
		indexFiles: indexFiles,
		http:       c,
	}
}

// Get fetches the galleryinfo for id. A 404 response is translated to
// ErrNotFound; any other non-2xx response or transport failure is wrapped
// and returned.
func (c *Client) Get(ctx context.Context, id int64) (galleryinfo.Galleryinfo, error) {
	u := c.root.ResolveReference(&url.URL{Path: "/galleries/" + strconv.FormatInt(id, 10)})

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return galleryinfo.Galleryinfo{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return galleryinfo.Galleryinfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return galleryinfo.Galleryinfo{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return galleryinfo.Galleryinfo{}, fmt.Errorf("remote: get %d: %s: %s", id, resp.Status, string(b))
	}

	var g galleryinfo.Galleryinfo
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		return galleryinfo.Galleryinfo{}, fmt.Errorf("remote: decode galleryinfo %d: %w", id, err)
	}
	return g, nil
}

// AllIDs reads every configured index file and returns the union of ids
// each one advertises, as a flat newline-delimited id list per line
// (the upstream "index file" format).
func (c *Client) AllIDs(ctx context.Context) ([]int64, error) {
	seen := make(map[int64]struct{})
	var ids []int64

	for _, path := range c.indexFiles {
		fileIDs, err := c.readIndexFile(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, id := range fileIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// readIndexFile reads one index file, either a local path or an absolute
// http(s) URL (used as given, not resolved against root), and parses one
// id per line.
func (c *Client) readIndexFile(ctx context.Context, path string) ([]int64, error) {
	var r io.ReadCloser
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("remote: index file %s: %s", path, resp.Status)
		}
		r = resp.Body
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("remote: index file %s: %w", path, err)
		}
		r = f
	}
	defer r.Close()

	var ids []int64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("remote: index file %s: %w", path, err)
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
