// Package assets maps asset names to their fingerprinted files.
//
// A build step writes manifest.json next to the static files, mapping each
// source name to the hashed file it produced:
//
//	{
//	  "main.js": "main.a1b2c3d4.js",
//	  "styles.css": "styles.e5f6a7b8.css"
//	}
//
// The page shell links assets through a Resolver so it always points at the
// current build:
//
//	m, _ := assets.LoadOptional("public/manifest.json")
//	r := assets.NewResolver(m, "/assets/")
//	r.URL("main.js") // "/assets/main.a1b2c3d4.js"
package assets

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/oversys/Rusty-Words/internal/errors"
)

// Manifest maps source asset names to fingerprinted names.
// A Manifest is immutable and safe for concurrent use.
type Manifest struct {
	entries map[string]string
}

// New creates a manifest from entries. Entries are copied.
func New(entries map[string]string) (*Manifest, error) {
	m := &Manifest{entries: make(map[string]string, len(entries))}
	for source, resolved := range entries {
		if !validName(source) || !validName(resolved) {
			return nil, errors.New("E104").WithDetailf("entry %q -> %q", source, resolved)
		}
		m.entries[source] = resolved
	}
	return m, nil
}

// Load reads a manifest.json file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E104").WithDetail(path).Wrap(err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.New("E104").
			WithDetailf("parsing %s", path).
			WithSuggestion("The manifest must be a JSON object of name to file name").
			Wrap(err)
	}

	return New(entries)
}

// LoadOptional is Load, except that a missing file yields an empty
// manifest. Development builds do not fingerprint.
func LoadOptional(path string) (*Manifest, error) {
	if path == "" {
		return &Manifest{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	return Load(path)
}

// Resolve returns the fingerprinted name for source, or source itself.
func (m *Manifest) Resolve(source string) string {
	if m == nil {
		return source
	}
	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// validName accepts relative slash-separated names without dot segments.
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.ContainsAny(name, "\\\x00?#") {
		return false
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

// Resolver turns asset names into URL paths under a static prefix.
type Resolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver. A nil manifest passes names through.
func NewResolver(m *Manifest, prefix string) *Resolver {
	return &Resolver{manifest: m, prefix: prefix}
}

// URL returns the URL path for source.
func (r *Resolver) URL(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}
