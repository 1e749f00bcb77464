package router

import (
	"context"
	"fmt"
	"net/url"

	"github.com/oversys/Rusty-Words/internal/errors"
	"github.com/oversys/Rusty-Words/pkg/routepath"
)

// ErrNoHistory is returned by Back and Forward at either end of history.
var ErrNoHistory = errors.New("E210")

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Params are query parameters to add to the URL.
	Params map[string]any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithParams adds query parameters to the navigation URL.
func WithParams(params map[string]any) NavigateOption {
	return func(o *NavigateOptions) {
		o.Params = params
	}
}

// NavigationKind says how a navigation moves through history.
type NavigationKind int

const (
	NavigationPush NavigationKind = iota
	NavigationReplace
	NavigationTraverse
)

// String returns the kind name.
func (k NavigationKind) String() string {
	switch k {
	case NavigationPush:
		return "push"
	case NavigationReplace:
		return "replace"
	case NavigationTraverse:
		return "traverse"
	default:
		return fmt.Sprintf("NavigationKind(%d)", int(k))
	}
}

// NavigationRequest represents a pending navigation.
type NavigationRequest struct {
	Path    string
	Options NavigateOptions
	Kind    NavigationKind

	// Saved is the scroll position stored with the history entry being
	// traversed to. Nil for push and replace.
	Saved *ScrollPosition
}

// BuildURL constructs the full URL for a navigation request.
func (nr *NavigationRequest) BuildURL() (string, error) {
	u, err := url.Parse(nr.Path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %s", nr.Path)
	}

	if nr.Options.Params != nil {
		q := u.Query()
		for k, v := range nr.Options.Params {
			q.Set(k, fmt.Sprintf("%v", v))
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

type historyEntry struct {
	url    string
	scroll ScrollPosition
}

// Navigator performs navigations against a Resolver and keeps history.
//
// A Navigator processes one navigation at a time and is not safe for
// concurrent use; hosts keep one per client (one per websocket connection,
// one per HTTP request).
type Navigator struct {
	resolver   *Resolver
	middleware []Middleware
	handler    NavigateFunc

	history []historyEntry
	index   int
	current *Navigation
}

// NewNavigator creates a navigator with optional middleware.
func NewNavigator(resolver *Resolver, mw ...Middleware) *Navigator {
	n := &Navigator{
		resolver: resolver,
		index:    -1,
	}
	n.Use(mw...)
	return n
}

// Use appends middleware to the navigation chain.
func (n *Navigator) Use(mw ...Middleware) {
	n.middleware = append(n.middleware, mw...)
	n.handler = Chain(n.middleware...)(n.navigate)
}

// Navigate navigates to path.
//
// Unmatched and malformed paths are not errors: they redirect to the home
// route, and the returned Navigation names the original path in
// RedirectedFrom. Errors only come from middleware.
func (n *Navigator) Navigate(ctx context.Context, path string, opts ...NavigateOption) (*Navigation, error) {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}

	kind := NavigationPush
	if options.Replace {
		kind = NavigationReplace
	}

	return n.run(ctx, &NavigationRequest{
		Path:    path,
		Options: options,
		Kind:    kind,
	}, -1)
}

// Back navigates to the previous history entry.
func (n *Navigator) Back(ctx context.Context) (*Navigation, error) {
	return n.traverse(ctx, n.index-1)
}

// Forward navigates to the next history entry.
func (n *Navigator) Forward(ctx context.Context) (*Navigation, error) {
	return n.traverse(ctx, n.index+1)
}

func (n *Navigator) traverse(ctx context.Context, target int) (*Navigation, error) {
	if target < 0 || target >= len(n.history) || n.index < 0 {
		return nil, errors.New("E210").WithDetailf("history has %d entries, at %d", len(n.history), n.index+1)
	}
	entry := n.history[target]
	saved := entry.scroll
	return n.run(ctx, &NavigationRequest{
		Path:  entry.url,
		Kind:  NavigationTraverse,
		Saved: &saved,
	}, target)
}

// Current returns the current navigation, or nil before the first one.
func (n *Navigator) Current() *Navigation {
	return n.current
}

// SaveScroll records the viewport position for the current history entry.
func (n *Navigator) SaveScroll(pos ScrollPosition) {
	if n.index >= 0 {
		n.history[n.index].scroll = pos
	}
}

// History returns the URLs in history and the index of the current entry.
func (n *Navigator) History() ([]string, int) {
	urls := make([]string, len(n.history))
	for i, e := range n.history {
		urls[i] = e.url
	}
	return urls, n.index
}

func (n *Navigator) run(ctx context.Context, req *NavigationRequest, traverseTo int) (*Navigation, error) {
	nav, err := n.handler(ctx, req)
	if err != nil {
		return nil, err
	}
	n.commit(nav, req.Kind, traverseTo)
	return nav, nil
}

// navigate is the innermost NavigateFunc: resolve, follow a catch-all
// redirect, sync the title and compute the scroll position.
func (n *Navigator) navigate(_ context.Context, req *NavigationRequest) (*Navigation, error) {
	target := req.Path
	if len(req.Options.Params) > 0 {
		if u, err := req.BuildURL(); err == nil {
			target = u
		}
	}

	var from string
	var fromRes Resolution
	if n.current != nil {
		from = n.current.URL()
		fromRes = n.current.Resolution
	}

	res := n.resolve(target)
	var redirectedFrom string
	if res.Redirected() {
		redirectedFrom = target
		res = n.resolve(res.RedirectTo)
	}

	n.resolver.OnNavigate(NavigationEvent{
		To:   res.URL(),
		From: from,
		Meta: res.Route.Meta,
	})

	return &Navigation{
		Resolution:     res,
		From:           from,
		RedirectedFrom: redirectedFrom,
		Title:          n.resolver.TitleFor(res.Route.Meta),
		Scroll:         n.resolver.OnBeforeRender(res, fromRes, req.Saved),
	}, nil
}

// resolve canonicalizes path and resolves it. Paths that fail
// canonicalization are handled like unmatched paths.
func (n *Navigator) resolve(path string) Resolution {
	canon, err := routepath.CanonicalizeNavPath(path)
	if err != nil {
		return Resolution{
			Path:       path,
			Params:     map[string]string{},
			RedirectTo: DefaultPath,
		}
	}
	return n.resolver.Resolve(canon.URL())
}

func (n *Navigator) commit(nav *Navigation, kind NavigationKind, traverseTo int) {
	n.current = nav
	entry := historyEntry{url: nav.URL()}

	switch {
	case kind == NavigationTraverse:
		n.index = traverseTo
		n.history[n.index].url = entry.url
	case kind == NavigationReplace && n.index >= 0:
		n.history[n.index] = entry
	default:
		n.history = append(n.history[:n.index+1], entry)
		n.index = len(n.history) - 1
	}
}
