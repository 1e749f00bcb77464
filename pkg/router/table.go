package router

import (
	"strings"

	"github.com/oversys/Rusty-Words/internal/errors"
	"github.com/oversys/Rusty-Words/pkg/routepath"
)

// DefaultPath is the home route every unmatched path falls back to.
const DefaultPath = "/"

// Table is an ordered, immutable route table.
// It is safe for concurrent use.
type Table struct {
	routes   []RouteDefinition
	patterns []*pattern
}

// NewTable builds a table from route definitions in declaration order.
//
// The table is rejected when:
//   - a pattern does not start with "/" or has an unnamed parameter (E200)
//   - a wildcard is not the last segment, or the catch-all is not the
//     last entry (E201)
//   - a parameter name repeats within a pattern (E202)
//   - an entry has neither a view nor a redirect, or both (E200)
//   - a redirect target does not resolve to a view (E200)
func NewTable(defs ...RouteDefinition) (*Table, error) {
	if len(defs) == 0 {
		return nil, errors.New("E200").WithDetail("route table is empty")
	}

	t := &Table{
		routes:   make([]RouteDefinition, len(defs)),
		patterns: make([]*pattern, len(defs)),
	}
	copy(t.routes, defs)

	for i, def := range t.routes {
		p, err := compilePattern(def.Path)
		if err != nil {
			return nil, err
		}
		if p.catchAll() && i != len(defs)-1 {
			return nil, errors.New("E201").
				WithDetailf("catch-all %q is entry %d of %d and would shadow every later route", def.Path, i+1, len(defs)).
				WithSuggestion("Move the catch-all route to the end of the table")
		}
		if def.View == "" && def.Redirect == "" {
			return nil, errors.New("E200").WithDetailf("route %q has no view and no redirect", def.Path)
		}
		if def.View != "" && def.Redirect != "" {
			return nil, errors.New("E200").WithDetailf("route %q has both a view and a redirect", def.Path)
		}
		t.patterns[i] = p
	}

	for _, def := range t.routes {
		if !def.IsRedirect() {
			continue
		}
		if res := t.Resolve(def.Redirect); res.Redirected() {
			return nil, errors.New("E200").
				WithDetailf("redirect target %q of %q does not resolve to a view", def.Redirect, def.Path)
		}
	}

	return t, nil
}

// MustNewTable is like NewTable but panics on error.
func MustNewTable(defs ...RouteDefinition) *Table {
	t, err := NewTable(defs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve matches path against the table in declaration order.
//
// The first structural match wins. When only the catch-all matches, the
// result carries RedirectTo instead of a view. A table without a catch-all
// redirects unmatched paths to DefaultPath. Query strings and fragments are
// ignored for matching and kept in Resolution.Query.
func (t *Table) Resolve(path string) Resolution {
	path, _, _ = strings.Cut(path, "#")
	path, query := routepath.SplitPathAndQuery(path)
	if path == "" {
		path = "/"
	}

	segments := routepath.SplitPath(path)

	for i, p := range t.patterns {
		params, ok := p.match(segments)
		if !ok {
			continue
		}

		def := t.routes[i]
		res := Resolution{
			Path:   path,
			Query:  query,
			Route:  def,
			Params: params,
		}
		if def.IsRedirect() {
			res.RedirectTo = def.Redirect
			return res
		}
		if def.Props {
			res.Props = make(map[string]string, len(params))
			for k, v := range params {
				res.Props[k] = v
			}
		}
		return res
	}

	return Resolution{
		Path:       path,
		Query:      query,
		Params:     map[string]string{},
		RedirectTo: DefaultPath,
	}
}

// Routes returns a copy of the route definitions in declaration order.
func (t *Table) Routes() []RouteDefinition {
	out := make([]RouteDefinition, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup returns the first route rendering view.
func (t *Table) Lookup(view ViewID) (RouteDefinition, bool) {
	for _, def := range t.routes {
		if def.View == view {
			return def, true
		}
	}
	return RouteDefinition{}, false
}

// Href builds the path of the first route rendering view, filling its
// parameters from params. Parameter values are path-escaped.
//
// Example:
//
//	t.Href(ViewWordDetails, map[string]string{"wordId": "42"}) // "/word/42", nil
func (t *Table) Href(view ViewID, params map[string]string) (string, error) {
	for i, def := range t.routes {
		if def.View == view {
			return t.patterns[i].build(params)
		}
	}
	return "", errors.New("E204").WithDetailf("no route renders view %q", view)
}
