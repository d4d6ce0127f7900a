package offline

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/weeks/pkg/cache"
	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/observability"
)

const (
	// NamePrefix starts every cache name; Activate only purges names with it.
	NamePrefix = "weeks-cache-"

	// FallbackPath is the root document served when navigation fails.
	FallbackPath = "/index.html"

	// CacheStatusHeader reports how a response was produced.
	CacheStatusHeader = "X-Cache"

	StatusHit      = "HIT"
	StatusMiss     = "MISS"
	StatusFallback = "FALLBACK"

	defaultMaxEntrySize = 10 << 20
)

// DefaultAssets are precached by [Transport.Install].
var DefaultAssets = []string{"/", "/index.html", "/manifest.webmanifest"}

// Transport is a cache-first http.RoundTripper.
type Transport struct {
	base     http.RoundTripper
	store    cache.Cache
	entries  *cache.Scoped
	name     string
	ttl      time.Duration
	attempts int
	delay    time.Duration
	maxEntry int64
}

// Option configures a Transport.
type Option func(*Transport)

// WithBase sets the transport used for network requests (default http.DefaultTransport).
func WithBase(rt http.RoundTripper) Option {
	return func(t *Transport) {
		if rt != nil {
			t.base = rt
		}
	}
}

// WithTTL expires entries after d. Zero keeps entries until the cache
// version changes.
func WithTTL(d time.Duration) Option {
	return func(t *Transport) { t.ttl = d }
}

// WithRetry sets how often failed network requests are attempted and the
// initial backoff between attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(t *Transport) {
		t.attempts = max(attempts, 1)
		t.delay = delay
	}
}

// WithMaxEntrySize sets the largest response body that is stored.
func WithMaxEntrySize(n int64) Option {
	return func(t *Transport) { t.maxEntry = n }
}

// New creates a Transport storing entries in store under the cache name
// "weeks-cache-<version>".
func New(store cache.Cache, version string, opts ...Option) (*Transport, error) {
	if err := errors.ValidateCacheVersion(version); err != nil {
		return nil, err
	}
	if store == nil {
		store = cache.NewNullCache()
	}
	name := NamePrefix + version
	t := &Transport{
		base:     http.DefaultTransport,
		store:    store,
		entries:  cache.NewScoped(store, name+":"),
		name:     name,
		attempts: 3,
		delay:    time.Second,
		maxEntry: defaultMaxEntrySize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Name returns the versioned cache name.
func (t *Transport) Name() string { return t.name }

// Client returns an http.Client using t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// RoundTrip serves GET requests from the cache, filling it from the network
// on a miss. When the network fails for a navigation request, the cached
// root document is served instead. Other methods pass through untouched.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}

	ctx := req.Context()
	key := requestKey(req.URL)

	if e, ok := t.lookup(ctx, key); ok {
		observability.Cache().OnCacheHit(ctx, key)
		return e.response(req, StatusHit), nil
	}
	observability.Cache().OnCacheMiss(ctx, key)

	e, storable, err := t.fetch(req)
	if err != nil {
		if isNavigation(req) {
			fallback := requestKey(req.URL.ResolveReference(&url.URL{Path: FallbackPath}))
			if fe, ok := t.lookup(ctx, fallback); ok {
				return fe.response(req, StatusFallback), nil
			}
		}
		return nil, err
	}

	if storable && e.Status >= 200 && e.Status < 300 {
		if err := t.save(ctx, key, e); err != nil {
			observability.Cache().OnCacheError(ctx, key, err)
		}
	}
	return e.response(req, StatusMiss), nil
}

// Install fetches every asset relative to origin and stores them. Either all
// assets are stored or none are.
func (t *Transport) Install(ctx context.Context, origin string, assets []string) error {
	base, err := url.Parse(origin)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return errors.New(errors.ErrCodeInvalidInput, "invalid origin %q", origin)
	}

	fetched := make(map[string]entry, len(assets))
	for _, asset := range assets {
		ref, err := url.Parse(asset)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse asset %q", asset)
		}
		u := base.ResolveReference(ref)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return err
		}
		e, _, err := t.fetch(req)
		if err != nil {
			return err
		}
		if e.Status < 200 || e.Status >= 300 {
			return errors.Wrap(errors.ErrCodeNotFound, cache.ErrNotFound, "precache %s: status %d", u, e.Status)
		}
		fetched[requestKey(u)] = e
	}

	for key, e := range fetched {
		if err := t.save(ctx, key, e); err != nil {
			return err
		}
	}
	return nil
}

// Activate deletes the entries of every other cache version and returns the
// number of deleted entries.
func (t *Transport) Activate(ctx context.Context) (int, error) {
	keys, err := t.store.Keys(ctx, NamePrefix)
	if err != nil {
		return 0, err
	}

	removed := make(map[string]int)
	for _, key := range keys {
		name, _, _ := strings.Cut(key, ":")
		if name == t.name {
			continue
		}
		if err := t.store.Delete(ctx, key); err != nil {
			return 0, err
		}
		removed[name]++
	}

	total := 0
	for name, n := range removed {
		observability.Cache().OnCachePurge(ctx, name, n)
		total += n
	}
	return total, nil
}

// Entries lists the request keys stored under the current cache name, sorted.
func (t *Transport) Entries(ctx context.Context) ([]string, error) {
	keys, err := t.entries.Keys(ctx, "")
	if err != nil {
		return nil, err
	}
	slices.Sort(keys)
	return keys, nil
}

func (t *Transport) lookup(ctx context.Context, key string) (entry, bool) {
	data, ok, err := t.entries.Get(ctx, key)
	if err != nil || !ok {
		return entry{}, false
	}
	e, err := unmarshalEntry(data)
	if err != nil {
		return entry{}, false
	}
	return e, true
}

func (t *Transport) save(ctx context.Context, key string, e entry) error {
	data, err := e.marshal()
	if err != nil {
		return err
	}
	if err := t.entries.Set(ctx, key, data, t.ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, key, len(e.Body))
	return nil
}

// fetch performs req on the network, retrying connection failures and 5xx
// responses. A final 5xx response is returned as a response, not an error.
func (t *Transport) fetch(req *http.Request) (entry, bool, error) {
	ctx := req.Context()
	hooks := observability.HTTP()

	var (
		result   entry
		storable bool
	)
	err := cache.Retry(ctx, t.attempts, t.delay, func() error {
		hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
		start := time.Now()

		resp, err := t.base.RoundTrip(req.Clone(ctx))
		if err != nil {
			hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
			return cache.Retryable(stderrors.Join(cache.ErrNetwork, err))
		}
		hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

		e, ok, err := readEntry(resp, t.maxEntry)
		if err != nil {
			return cache.Retryable(stderrors.Join(cache.ErrNetwork, err))
		}
		result, storable = e, ok
		if e.Status >= 500 {
			return cache.Retryable(cache.ErrNetwork)
		}
		return nil
	})

	if err != nil && result.Status >= 500 && ctx.Err() == nil {
		return result, false, nil
	}
	if err != nil {
		return entry{}, false, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", req.URL.Redacted())
	}
	return result, storable, nil
}

// requestKey identifies a GET request by its absolute URL without fragment.
func requestKey(u *url.URL) string {
	c := *u
	c.Fragment, c.RawFragment = "", ""
	return http.MethodGet + ":" + c.String()
}

// isNavigation reports whether req loads a document rather than a subresource.
func isNavigation(req *http.Request) bool {
	if req.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}
