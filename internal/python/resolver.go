package python

import (
	"context"
	"fmt"

	"github.com/skshetry/uv/internal/netclient"
)

// ResolutionError reports that no interpreter satisfying a request could be
// found or fetched.
type ResolutionError struct {
	Request string
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no interpreter found for %s: %v", e.Request, e.Err)
	}
	return fmt.Sprintf("no interpreter found for %s", e.Request)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Resolver finds or fetches interpreters. A zero Resolver is not usable;
// construct one with NewResolver.
type Resolver struct {
	finder   *Finder
	cache    *Cache
	indexURL string
}

// NewResolver builds a resolver over the given cache. An empty indexURL
// means DefaultIndexURL.
func NewResolver(cache *Cache, indexURL string) *Resolver {
	return &Resolver{
		finder:   DefaultFinder(),
		cache:    cache,
		indexURL: indexURL,
	}
}

// WithFinder replaces the system interpreter finder. Used by tests.
func (r *Resolver) WithFinder(finder *Finder) *Resolver {
	r.finder = finder
	return r
}

// FindOrFetch resolves an interpreter for the request. Managed and system
// interpreters are consulted in the order the preference dictates; when
// neither yields a match and the fetch policy is automatic, a matching
// release is downloaded through the client.
func (r *Resolver) FindOrFetch(ctx context.Context, req *Request, env EnvironmentPreference, pref Preference, fetch FetchPolicy, client *netclient.Client) (*Interpreter, error) {
	var sources []func(context.Context, *Request) (*Interpreter, error)
	switch pref {
	case OnlyManaged:
		sources = append(sources, r.findManaged)
	case OnlySystemInterpreters:
		sources = append(sources, r.systemSource(env))
	case PreferSystem:
		sources = append(sources, r.systemSource(env), r.findManaged)
	default: // PreferManaged
		sources = append(sources, r.findManaged, r.systemSource(env))
	}

	for _, source := range sources {
		interpreter, err := source(ctx, req)
		if err != nil {
			return nil, err
		}
		if interpreter != nil {
			return interpreter, nil
		}
	}

	if fetch != FetchAutomatic || pref == OnlySystemInterpreters {
		return nil, &ResolutionError{Request: req.String()}
	}

	downloads := &Downloads{IndexURL: r.indexURL, Client: client, Cache: r.cache}
	interpreter, err := downloads.FetchMatching(ctx, req)
	if err != nil {
		return nil, err
	}
	return interpreter, nil
}

func (r *Resolver) findManaged(_ context.Context, req *Request) (*Interpreter, error) {
	for _, interpreter := range r.cache.Installed() {
		if req.Matches(interpreter.version) {
			return interpreter, nil
		}
	}
	return nil, nil
}

func (r *Resolver) systemSource(env EnvironmentPreference) func(context.Context, *Request) (*Interpreter, error) {
	return func(ctx context.Context, req *Request) (*Interpreter, error) {
		return r.finder.FindSystem(ctx, req, env)
	}
}
