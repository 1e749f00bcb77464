package rustywords

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeStaticFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile %s: %v", name, err)
	}
	return path
}

func TestStaticServing_PrefixHandling(t *testing.T) {
	publicDir := filepath.Join(t.TempDir(), "public")
	writeStaticFile(t, publicDir, "main.js", "ok")

	app := New(Config{
		Static: StaticConfig{Dir: publicDir, Prefix: "/static"},
		Logger: quietLogger(),
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/static/main.js", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /static/main.js status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Body.String(); got != "ok" {
		t.Fatalf("GET /static/main.js body = %q, want %q", got, "ok")
	}

	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/static/missing.js", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("GET /static/missing.js status = %d, want %d", rr.Code, http.StatusNotFound)
	}

	// Outside the prefix, /main.js is a client route and redirects home.
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/main.js", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("GET /main.js status = %d, want %d", rr.Code, http.StatusFound)
	}
}

func TestStaticServing_RootPrefixFallsThroughToPages(t *testing.T) {
	publicDir := filepath.Join(t.TempDir(), "public")
	writeStaticFile(t, publicDir, "favicon.ico", "icon")

	app := New(Config{
		Static: StaticConfig{Dir: publicDir, Prefix: "/"},
		Logger: quietLogger(),
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/favicon.ico", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "icon" {
		t.Fatalf("GET /favicon.ico = %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/add", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `data-view="AddWord"`) {
		t.Fatalf("GET /add = %d, body %q", rr.Code, rr.Body.String())
	}
}

func TestStaticServing_BlocksDirectoryTraversal(t *testing.T) {
	tmpDir := t.TempDir()
	publicDir := filepath.Join(tmpDir, "public")
	writeStaticFile(t, publicDir, "ok.txt", "ok")
	writeStaticFile(t, tmpDir, "secret.txt", "secret")

	app := New(Config{
		Static: StaticConfig{Dir: publicDir},
		Logger: quietLogger(),
	})

	cases := []string{
		"/assets/../secret.txt",
		"/assets/%2e%2e/secret.txt",
		"/assets/..//secret.txt",
		"/assets//" + filepath.ToSlash(filepath.Join(tmpDir, "secret.txt")),
	}
	for _, p := range cases {
		rr := httptest.NewRecorder()
		app.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com"+p, nil))

		if strings.Contains(rr.Body.String(), "secret") {
			t.Fatalf("GET %s unexpectedly served secret content", p)
		}
	}
}

func TestStaticRelPath(t *testing.T) {
	app := New(Config{
		Static: StaticConfig{Dir: t.TempDir()},
		Logger: quietLogger(),
	})

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/assets/main.js", "main.js", true},
		{"/assets/css/site.css", "css/site.css", true},
		{"/assets/", "", false},
		{"/other/main.js", "", false},
		{"/assets/../x", "", false},
		{"/assets/./x", "", false},
		{"/assets//etc/passwd", "", false},
		{"/assets/a\\b", "", false},
		{"/assets/a\x00b", "", false},
	}

	for _, tt := range tests {
		got, ok := app.staticRelPath(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("staticRelPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStaticCacheHeaders(t *testing.T) {
	publicDir := filepath.Join(t.TempDir(), "public")
	writeStaticFile(t, publicDir, "main.a1b2c3d4.js", "hashed")
	writeStaticFile(t, publicDir, "main.js", "plain")

	app := New(Config{
		Static: StaticConfig{Dir: publicDir},
		Logger: quietLogger(),
	})

	tests := []struct {
		path string
		want string
	}{
		{"/assets/main.a1b2c3d4.js", "public, max-age=31536000, immutable"},
		{"/assets/main.js", "public, max-age=3600, must-revalidate"},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		app.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com"+tt.path, nil))
		if got := rr.Header().Get("Cache-Control"); got != tt.want {
			t.Errorf("GET %s Cache-Control = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsFingerprinted(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"app.a1b2c3d4.css", true},
		{"js/app.DEADBEEF.js", true},
		{"app.css", false},
		{"app.min.css", false},
		{"app.a1b2c3.css", false},
		{"app.zzzzzzzz.css", false},
	}
	for _, tt := range tests {
		if got := isFingerprinted(tt.path); got != tt.want {
			t.Errorf("isFingerprinted(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
