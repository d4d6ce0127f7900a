// Package offline provides a cache-first HTTP transport so the app shell
// stays available without a network.
//
// # Policy
//
// [Transport] implements http.RoundTripper:
//
//   - GET requests are answered from the cache when possible.
//   - On a miss the request goes to the network; successful responses are
//     stored under the versioned cache name.
//   - When the network fails for a navigation request (Sec-Fetch-Mode:
//     navigate, or an Accept header asking for HTML), the cached root
//     document at [FallbackPath] is served.
//   - Any other method passes through untouched and is never stored.
//
// Every response carries an X-Cache header of HIT, MISS or FALLBACK.
//
// # Versions
//
// Entries are stored under "weeks-cache-<version>:GET:<url>". The version
// defaults to the build version, so a new release gets a fresh cache.
// [Transport.Install] precaches the app shell and [Transport.Activate]
// deletes every other version:
//
//	store, _ := cache.NewFileCache(dir)
//	t, _ := offline.New(store, buildinfo.CacheVersion())
//	_ = t.Install(ctx, "https://weeks.example.com", offline.DefaultAssets)
//	_, _ = t.Activate(ctx)
//	resp, err := t.Client().Get("https://weeks.example.com/")
package offline
