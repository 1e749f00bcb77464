package router

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oversys/Rusty-Words/internal/errors"
)

func TestResolveDefaultTable(t *testing.T) {
	table := MustDefaultTable()

	tests := []struct {
		name       string
		path       string
		wantView   ViewID
		wantProps  map[string]string
		wantTitle  string
		wantRedir  string
		wantQuery  string
		wantParams map[string]string
	}{
		{
			name:       "home",
			path:       "/",
			wantView:   ViewWordList,
			wantTitle:  "Rusty Words",
			wantParams: map[string]string{},
		},
		{
			name:       "add",
			path:       "/add",
			wantView:   ViewAddWord,
			wantTitle:  "Add Word | Rusty Words",
			wantParams: map[string]string{},
		},
		{
			name:       "add trailing slash",
			path:       "/add/",
			wantView:   ViewAddWord,
			wantTitle:  "Add Word | Rusty Words",
			wantParams: map[string]string{},
		},
		{
			name:       "word details",
			path:       "/word/42",
			wantView:   ViewWordDetails,
			wantProps:  map[string]string{"wordId": "42"},
			wantTitle:  "Word Details | Rusty Words",
			wantParams: map[string]string{"wordId": "42"},
		},
		{
			name:       "edit word",
			path:       "/edit/17",
			wantView:   ViewEditWord,
			wantProps:  map[string]string{"wordId": "17"},
			wantTitle:  "Edit Word | Rusty Words",
			wantParams: map[string]string{"wordId": "17"},
		},
		{
			name:       "decoded parameter",
			path:       "/word/hallo%20wereld",
			wantView:   ViewWordDetails,
			wantProps:  map[string]string{"wordId": "hallo wereld"},
			wantTitle:  "Word Details | Rusty Words",
			wantParams: map[string]string{"wordId": "hallo wereld"},
		},
		{
			name:       "query kept aside",
			path:       "/word/42?tab=notes",
			wantView:   ViewWordDetails,
			wantProps:  map[string]string{"wordId": "42"},
			wantTitle:  "Word Details | Rusty Words",
			wantQuery:  "tab=notes",
			wantParams: map[string]string{"wordId": "42"},
		},
		{
			name:       "bogus path",
			path:       "/bogus/path",
			wantRedir:  "/",
			wantParams: map[string]string{},
		},
		{
			name:       "missing parameter",
			path:       "/word",
			wantRedir:  "/",
			wantParams: map[string]string{},
		},
		{
			name:       "missing parameter trailing slash",
			path:       "/word/",
			wantRedir:  "/",
			wantParams: map[string]string{},
		},
		{
			name:       "empty parameter segment",
			path:       "/word//42",
			wantRedir:  "/",
			wantParams: map[string]string{},
		},
		{
			name:       "extra segment",
			path:       "/edit/17/extra",
			wantRedir:  "/",
			wantParams: map[string]string{},
		},
		{
			name:       "case sensitive",
			path:       "/ADD",
			wantRedir:  "/",
			wantParams: map[string]string{},
		},
		{
			name:       "encoded slash in parameter",
			path:       "/word/a%2Fb",
			wantRedir:  "/",
			wantParams: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := table.Resolve(tt.path)

			if res.RedirectTo != tt.wantRedir {
				t.Fatalf("RedirectTo = %q, want %q", res.RedirectTo, tt.wantRedir)
			}
			if res.Route.View != tt.wantView {
				t.Errorf("View = %q, want %q", res.Route.View, tt.wantView)
			}
			if res.Route.Meta.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", res.Route.Meta.Title, tt.wantTitle)
			}
			if res.Query != tt.wantQuery {
				t.Errorf("Query = %q, want %q", res.Query, tt.wantQuery)
			}
			if diff := cmp.Diff(tt.wantProps, res.Props); diff != "" {
				t.Errorf("Props mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantParams, res.Params); diff != "" {
				t.Errorf("Params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveParameterValues(t *testing.T) {
	table := MustDefaultTable()

	for _, value := range []string{"1", "42", "abc", "hond", "de-kat", "9999999999", "ü"} {
		for prefix, view := range map[string]ViewID{"/word/": ViewWordDetails, "/edit/": ViewEditWord} {
			res := table.Resolve(prefix + value)
			if res.Redirected() {
				t.Errorf("Resolve(%q) redirected", prefix+value)
				continue
			}
			if res.Route.View != view {
				t.Errorf("Resolve(%q) view = %q, want %q", prefix+value, res.Route.View, view)
			}
			if res.Props[ParamWordID] != value {
				t.Errorf("Resolve(%q) wordId = %q, want %q", prefix+value, res.Props[ParamWordID], value)
			}
		}
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	table := MustNewTable(
		RouteDefinition{Path: "/word/new", View: "NewWord"},
		RouteDefinition{Path: "/word/:wordId", View: ViewWordDetails, Props: true},
		RouteDefinition{Path: "/*", Redirect: "/word/new"},
	)

	if got := table.Resolve("/word/new").Route.View; got != "NewWord" {
		t.Errorf("static route declared first should win, got %q", got)
	}
	if got := table.Resolve("/word/7").Route.View; got != ViewWordDetails {
		t.Errorf("parameter route should match /word/7, got %q", got)
	}
}

func TestResolveNamedCatchAll(t *testing.T) {
	table := MustNewTable(
		RouteDefinition{Path: "/", View: ViewWordList},
		RouteDefinition{Path: "/*pathMatch", Redirect: "/"},
	)

	res := table.Resolve("/a/b/c")
	if !res.Redirected() {
		t.Fatal("expected redirect")
	}
	if res.Params["pathMatch"] != "a/b/c" {
		t.Errorf("pathMatch = %q, want %q", res.Params["pathMatch"], "a/b/c")
	}
}

func TestResolveWithoutCatchAll(t *testing.T) {
	table := MustNewTable(RouteDefinition{Path: "/", View: ViewWordList})

	res := table.Resolve("/nowhere")
	if res.RedirectTo != DefaultPath {
		t.Errorf("RedirectTo = %q, want %q", res.RedirectTo, DefaultPath)
	}
}

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name     string
		defs     []RouteDefinition
		wantCode string
	}{
		{
			name:     "empty",
			defs:     nil,
			wantCode: "E200",
		},
		{
			name: "catch-all not last",
			defs: []RouteDefinition{
				{Path: "/", View: ViewWordList},
				{Path: "/*", Redirect: "/"},
				{Path: "/add", View: ViewAddWord},
			},
			wantCode: "E201",
		},
		{
			name: "wildcard not last segment",
			defs: []RouteDefinition{
				{Path: "/files/*/meta", View: "Files"},
			},
			wantCode: "E201",
		},
		{
			name: "duplicate parameter",
			defs: []RouteDefinition{
				{Path: "/word/:id/:id", View: ViewWordDetails},
			},
			wantCode: "E202",
		},
		{
			name: "relative pattern",
			defs: []RouteDefinition{
				{Path: "add", View: ViewAddWord},
			},
			wantCode: "E200",
		},
		{
			name: "unnamed parameter",
			defs: []RouteDefinition{
				{Path: "/word/:", View: ViewWordDetails},
			},
			wantCode: "E200",
		},
		{
			name: "no view or redirect",
			defs: []RouteDefinition{
				{Path: "/"},
			},
			wantCode: "E200",
		},
		{
			name: "view and redirect",
			defs: []RouteDefinition{
				{Path: "/", View: ViewWordList, Redirect: "/add"},
			},
			wantCode: "E200",
		},
		{
			name: "redirect to nowhere",
			defs: []RouteDefinition{
				{Path: "/add", View: ViewAddWord},
				{Path: "/*", Redirect: "/"},
			},
			wantCode: "E200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.defs...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !stderrors.Is(err, errors.New(tt.wantCode)) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestMustNewTablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustNewTable(RouteDefinition{Path: "/*", Redirect: "/"}, RouteDefinition{Path: "/", View: ViewWordList})
}

func TestRoutesReturnsCopy(t *testing.T) {
	table := MustDefaultTable()

	routes := table.Routes()
	if len(routes) != 5 {
		t.Fatalf("len(Routes()) = %d, want 5", len(routes))
	}
	routes[0].View = "Tampered"

	if table.Resolve("/").Route.View != ViewWordList {
		t.Error("mutating Routes() result changed the table")
	}
}

func TestDefaultRoutesOrder(t *testing.T) {
	var paths []string
	for _, r := range DefaultRoutes() {
		paths = append(paths, r.Path)
	}
	want := "/ /add /word/:wordId /edit/:wordId /*"
	if got := strings.Join(paths, " "); got != want {
		t.Errorf("paths = %q, want %q", got, want)
	}
}

func TestLookup(t *testing.T) {
	table := MustDefaultTable()

	def, ok := table.Lookup(ViewEditWord)
	if !ok || def.Path != "/edit/:wordId" {
		t.Errorf("Lookup(EditWord) = %+v, %v", def, ok)
	}
	if _, ok := table.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) should fail")
	}
}

func TestHref(t *testing.T) {
	table := MustDefaultTable()

	tests := []struct {
		view     ViewID
		params   map[string]string
		want     string
		wantCode string
	}{
		{ViewWordList, nil, "/", ""},
		{ViewAddWord, nil, "/add", ""},
		{ViewWordDetails, map[string]string{"wordId": "42"}, "/word/42", ""},
		{ViewEditWord, map[string]string{"wordId": "hallo wereld"}, "/edit/hallo%20wereld", ""},
		{ViewWordDetails, nil, "", "E203"},
		{"Missing", nil, "", "E204"},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			got, err := table.Href(tt.view, tt.params)
			if tt.wantCode != "" {
				if !stderrors.Is(err, errors.New(tt.wantCode)) {
					t.Fatalf("error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Href = %q, want %q", got, tt.want)
			}

			// Built paths resolve back to the same view.
			if res := table.Resolve(got); res.Route.View != tt.view {
				t.Errorf("Resolve(%q) view = %q, want %q", got, res.Route.View, tt.view)
			}
		})
	}
}
