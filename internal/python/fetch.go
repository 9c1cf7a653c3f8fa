package python

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	goversion "github.com/hashicorp/go-version"

	"github.com/skshetry/uv/internal/netclient"
)

// DefaultIndexURL is the release index queried when fetching a managed
// interpreter. Overridable through configuration.
const DefaultIndexURL = "https://raw.githubusercontent.com/indygreg/python-build-standalone/latest-release/latest-release.json"

// Release is one entry in the interpreter release index.
type Release struct {
	Version string `json:"version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
	URL     string `json:"url"`
}

// Downloads fetches managed interpreters from a release index into the cache.
type Downloads struct {
	IndexURL string
	Client   *netclient.Client
	Cache    *Cache
}

// FetchMatching downloads the best release satisfying the request. The
// highest matching version for the current platform wins.
func (d *Downloads) FetchMatching(ctx context.Context, req *Request) (*Interpreter, error) {
	releases, err := d.fetchIndex(ctx)
	if err != nil {
		return nil, err
	}

	release, version := selectRelease(releases, req)
	if release == nil {
		return nil, &ResolutionError{Request: req.String(), Err: fmt.Errorf("no downloadable release for %s/%s", runtime.GOOS, runtime.GOARCH)}
	}

	dir, err := d.Cache.InterpreterDir(version.String())
	if err != nil {
		return nil, err
	}
	if err := d.download(ctx, release.URL, filepath.Join(dir, filepath.Base(release.URL))); err != nil {
		return nil, err
	}

	return NewInterpreter(version, dir, SourceManaged), nil
}

func (d *Downloads) fetchIndex(ctx context.Context) ([]Release, error) {
	url := d.IndexURL
	if url == "" {
		url = DefaultIndexURL
	}

	resp, err := d.Client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching interpreter index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching interpreter index: unexpected status code: %d", resp.StatusCode)
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("decoding interpreter index: %w", err)
	}
	return releases, nil
}

// selectRelease picks the highest release for the current platform that
// satisfies the request.
func selectRelease(releases []Release, req *Request) (*Release, *goversion.Version) {
	type candidate struct {
		release Release
		version *goversion.Version
	}

	var candidates []candidate
	for _, release := range releases {
		if release.OS != runtime.GOOS || release.Arch != runtime.GOARCH {
			continue
		}
		version, err := goversion.NewVersion(release.Version)
		if err != nil {
			continue
		}
		if !req.Matches(version) {
			continue
		}
		candidates = append(candidates, candidate{release: release, version: version})
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].version.GreaterThan(candidates[j].version)
	})
	return &candidates[0].release, candidates[0].version
}

func (d *Downloads) download(ctx context.Context, url, dest string) error {
	resp, err := d.Client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("downloading interpreter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading interpreter: unexpected status code: %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
