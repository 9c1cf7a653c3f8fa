// Package python_test exercises system discovery, managed cache lookup, and
// index fetches through the exported resolver API.
// Related: internal/python/resolver.go, internal/python/discover.go
// Tags: python, resolver, discovery, fetch
package python_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skshetry/uv/internal/netclient"
	"github.com/skshetry/uv/internal/python"
	"github.com/skshetry/uv/internal/testutil"
)

func onlineClient(t *testing.T) *netclient.Client {
	t.Helper()
	client, err := netclient.NewBuilder().Build()
	require.NoError(t, err)
	return client
}

func parseRequest(t *testing.T, s string) *python.Request {
	t.Helper()
	req, err := python.ParseRequest(s)
	require.NoError(t, err)
	return req
}

func TestFinder_FindSystem(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		interpreters map[string][2]string
		virtualEnv   string
		request      string
		wantVersion  string
		wantMiss     bool
	}{
		"first candidate wins": {
			interpreters: map[string][2]string{
				"python3.12": {"/usr/bin/python3.12", "3.12.4"},
				"python3":    {"/usr/bin/python3", "3.11.2"},
			},
			request:     "",
			wantVersion: "3.12.4",
		},
		"versioned request selects match": {
			interpreters: map[string][2]string{
				"python3.11": {"/usr/bin/python3.11", "3.11.9"},
				"python3":    {"/usr/bin/python3", "3.12.0"},
			},
			request:     "3.11",
			wantVersion: "3.11.9",
		},
		"executable request probes only that name": {
			interpreters: map[string][2]string{
				"pypy3":   {"/usr/bin/pypy3", "3.10.14"},
				"python3": {"/usr/bin/python3", "3.12.0"},
			},
			request:     "pypy3",
			wantVersion: "3.10.14",
		},
		"virtualenv interpreter skipped under only-system": {
			interpreters: map[string][2]string{
				"python3": {"/venv/bin/python3", "3.12.0"},
			},
			virtualEnv: "/venv",
			request:    "",
			wantMiss:   true,
		},
		"no interpreter satisfies request": {
			interpreters: map[string][2]string{
				"python3": {"/usr/bin/python3", "3.9.0"},
			},
			request:  "3.12",
			wantMiss: true,
		},
		"probe failure skipped": {
			interpreters: map[string][2]string{
				"python3.12": {"/usr/bin/python3.12", ""},
				"python3":    {"/usr/bin/python3", "3.12.6"},
			},
			request:     "3.12",
			wantVersion: "3.12.6",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			finder := testutil.StubFinder(tt.interpreters)
			finder.VirtualEnv = tt.virtualEnv

			interp, err := finder.FindSystem(context.Background(), parseRequest(t, tt.request), python.OnlySystem)
			require.NoError(t, err)

			if tt.wantMiss {
				assert.Nil(t, interp)
				return
			}
			require.NotNil(t, interp)
			assert.Equal(t, tt.wantVersion, interp.Version())
			assert.Equal(t, python.SourceSystem, interp.Source())
		})
	}
}

func TestResolver_FindOrFetch_SystemMatch(t *testing.T) {
	t.Parallel()

	resolver := python.NewResolver(python.NewCache(t.TempDir()), "").
		WithFinder(testutil.StubFinder(map[string][2]string{
			"python3": {"/usr/bin/python3", "3.12.3"},
		}))

	interp, err := resolver.FindOrFetch(
		context.Background(), parseRequest(t, "3.12"),
		python.OnlySystem, python.PreferSystem, python.FetchNever, onlineClient(t),
	)
	require.NoError(t, err)
	assert.Equal(t, "3.12.3", interp.Version())
}

func TestResolver_FindOrFetch_FetchNeverFails(t *testing.T) {
	t.Parallel()

	resolver := python.NewResolver(python.NewCache(t.TempDir()), "").
		WithFinder(testutil.StubFinder(nil))

	_, err := resolver.FindOrFetch(
		context.Background(), parseRequest(t, "3.12"),
		python.OnlySystem, python.PreferSystem, python.FetchNever, onlineClient(t),
	)

	var resolution *python.ResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.Contains(t, err.Error(), "3.12")
}

func TestResolver_FindOrFetch_ManagedFromCache(t *testing.T) {
	t.Parallel()

	cacheRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cacheRoot, "python", "3.12.2"), 0o755))

	resolver := python.NewResolver(python.NewCache(cacheRoot), "").
		WithFinder(testutil.StubFinder(nil))

	interp, err := resolver.FindOrFetch(
		context.Background(), parseRequest(t, "3.12"),
		python.OnlySystem, python.PreferManaged, python.FetchNever, onlineClient(t),
	)
	require.NoError(t, err)
	assert.Equal(t, "3.12.2", interp.Version())
	assert.Equal(t, python.SourceManaged, interp.Source())
}

func TestResolver_FindOrFetch_DownloadsFromIndex(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/index.json", func(w http.ResponseWriter, r *http.Request) {
		releases := []python.Release{
			{Version: "3.12.2", OS: runtime.GOOS, Arch: runtime.GOARCH, URL: server.URL + "/cpython-3.12.2.tar.gz"},
			{Version: "3.11.8", OS: runtime.GOOS, Arch: runtime.GOARCH, URL: server.URL + "/cpython-3.11.8.tar.gz"},
			{Version: "3.12.9", OS: "plan9", Arch: "mips", URL: server.URL + "/other.tar.gz"},
		}
		json.NewEncoder(w).Encode(releases)
	})
	mux.HandleFunc("/cpython-3.12.2.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "archive-bytes")
	})

	cacheRoot := t.TempDir()
	resolver := python.NewResolver(python.NewCache(cacheRoot), server.URL+"/index.json").
		WithFinder(testutil.StubFinder(nil))

	interp, err := resolver.FindOrFetch(
		context.Background(), parseRequest(t, "3.12"),
		python.OnlySystem, python.PreferManaged, python.FetchAutomatic, onlineClient(t),
	)
	require.NoError(t, err)

	assert.Equal(t, "3.12.2", interp.Version())
	assert.Equal(t, python.SourceManaged, interp.Source())
	assert.FileExists(t, filepath.Join(cacheRoot, "python", "3.12.2", "cpython-3.12.2.tar.gz"))
}

func TestResolver_FindOrFetch_OfflineClientFails(t *testing.T) {
	t.Parallel()

	client, err := netclient.NewBuilder().Connectivity(netclient.Offline).Build()
	require.NoError(t, err)

	resolver := python.NewResolver(python.NewCache(t.TempDir()), "http://example.invalid/index.json").
		WithFinder(testutil.StubFinder(nil))

	_, err = resolver.FindOrFetch(
		context.Background(), parseRequest(t, "3.12"),
		python.OnlySystem, python.PreferManaged, python.FetchAutomatic, client,
	)
	require.ErrorIs(t, err, netclient.ErrOffline)
}
