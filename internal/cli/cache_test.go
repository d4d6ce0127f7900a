package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/weeks/pkg/cache"
	"github.com/matzehuels/weeks/pkg/offline"
)

// newShellServer serves a minimal app shell.
func newShellServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!doctype html><title>4000 Weeks</title>"))
	})
	mux.HandleFunc("/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!doctype html><title>4000 Weeks</title>"))
	})
	mux.HandleFunc("/manifest.webmanifest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/manifest+json")
		w.Write([]byte(`{"name":"4000 Weeks"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newCacheCLI returns a test CLI whose offline cache lives in a fresh
// directory under a pinned cache version. The environment is set after
// newTestCLI has cleared it, so every run of the returned CLI sees it.
func newCacheCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	c := newTestCLI(t)
	dir := filepath.Join(t.TempDir(), "offline")
	t.Setenv("WEEKS_CACHE_DIR", dir)
	t.Setenv("WEEKS_CACHE_VERSION", "v1")
	return c, dir
}

func TestCachePath(t *testing.T) {
	c, dir := newCacheCLI(t)
	out, err := run(t, c, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("path = %q, want %q", out, dir)
	}
}

func TestFetchServesFromCacheWhenOffline(t *testing.T) {
	c, _ := newCacheCLI(t)
	srv := newShellServer(t)
	url := srv.URL + "/manifest.webmanifest"

	out, err := run(t, c, "fetch", url)
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"name":"4000 Weeks"}` {
		t.Fatalf("body = %q", out)
	}

	srv.Close()
	out, err = run(t, c, "fetch", url)
	if err != nil {
		t.Fatalf("offline fetch: %v", err)
	}
	if out != `{"name":"4000 Weeks"}` {
		t.Errorf("offline body = %q", out)
	}

	out, err = run(t, c, "cache", "list")
	if err != nil {
		t.Fatal(err)
	}
	if want := "GET:" + url + "\n"; out != want {
		t.Errorf("list = %q, want %q", out, want)
	}
}

func TestFetchNoCache(t *testing.T) {
	c, _ := newCacheCLI(t)
	srv := newShellServer(t)
	if _, err := run(t, c, "fetch", srv.URL+"/index.html", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, c, "cache", "list")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("--no-cache stored entries: %q", out)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	c, _ := newCacheCLI(t)
	if _, err := run(t, c, "fetch", "not a url"); err == nil {
		t.Error("expected error")
	}
}

func TestCacheInstallActivateClear(t *testing.T) {
	c, dir := newCacheCLI(t)
	srv := newShellServer(t)
	ctx := context.Background()

	// An entry left behind by an older release.
	store, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, offline.NamePrefix+"v0:GET:"+srv.URL+"/", []byte("{}"), 0); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, c, "cache", "install", srv.URL); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, c, "cache", "list")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"GET:" + srv.URL + "/",
		"GET:" + srv.URL + "/index.html",
		"GET:" + srv.URL + "/manifest.webmanifest",
	}
	if diff := cmp.Diff(want, strings.Fields(out)); diff != "" {
		t.Errorf("installed entries (-want +got):\n%s", diff)
	}

	if _, err := run(t, c, "cache", "activate"); err != nil {
		t.Fatal(err)
	}
	keys, err := store.Keys(ctx, offline.NamePrefix+"v0")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Errorf("old version survived activate: %v", keys)
	}

	if _, err := run(t, c, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	keys, err = store.Keys(ctx, offline.NamePrefix)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Errorf("clear left %d entries", len(keys))
	}
}

func TestCacheInstallRequiresOrigin(t *testing.T) {
	c, _ := newCacheCLI(t)
	if _, err := run(t, c, "cache", "install"); err == nil {
		t.Error("expected error without origin")
	}
}
