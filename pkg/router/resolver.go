package router

// Resolver resolves paths against a table and applies the per-navigation
// side effects: title sync and scroll reset.
type Resolver struct {
	table         *Table
	titles        TitleSink
	fallbackTitle string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFallbackTitle sets the title used when a route declares none.
// Defaults to AppTitle.
func WithFallbackTitle(title string) ResolverOption {
	return func(r *Resolver) {
		r.fallbackTitle = title
	}
}

// NewResolver creates a resolver writing titles to sink.
// A nil sink discards titles.
func NewResolver(table *Table, sink TitleSink, opts ...ResolverOption) *Resolver {
	if sink == nil {
		sink = discardTitle{}
	}
	r := &Resolver{
		table:         table,
		titles:        sink,
		fallbackTitle: AppTitle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the route table.
func (r *Resolver) Table() *Table {
	return r.table
}

// Resolve matches path against the route table.
func (r *Resolver) Resolve(path string) Resolution {
	return r.table.Resolve(path)
}

// TitleFor returns the title for meta, or the fallback title.
func (r *Resolver) TitleFor(meta PageMeta) string {
	if meta.Title != "" {
		return meta.Title
	}
	return r.fallbackTitle
}

// OnNavigate writes the resolved title to the title sink.
// It runs once for every navigation, including the initial load.
func (r *Resolver) OnNavigate(event NavigationEvent) {
	r.titles.SetTitle(r.TitleFor(event.Meta))
}

// OnBeforeRender returns the scroll position for the new view.
// Every navigation resets to the top; saved positions are never restored.
func (r *Resolver) OnBeforeRender(to, from Resolution, saved *ScrollPosition) ScrollPosition {
	return ScrollPosition{Top: 0}
}
