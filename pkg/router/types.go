package router

// ViewID identifies the view a route renders.
type ViewID string

// PageMeta contains page metadata.
type PageMeta struct {
	Title string `json:"title,omitempty"`
}

// RouteDefinition declares one entry of the route table.
type RouteDefinition struct {
	// Path is the URL pattern (e.g., "/word/:wordId" or "/*").
	Path string

	// View is the view rendered for this route. Empty on redirect routes.
	View ViewID

	// Meta is the page metadata applied after navigation.
	Meta PageMeta

	// Props forwards captured path parameters to the view as inputs.
	Props bool

	// Redirect is the redirect target for the catch-all route.
	Redirect string
}

// IsRedirect reports whether the route redirects instead of rendering.
func (d RouteDefinition) IsRedirect() bool {
	return d.Redirect != ""
}

// Resolution is the result of resolving a path against the table.
type Resolution struct {
	// Path is the resolved path, without query string or fragment.
	Path string

	// Query is the query string (without leading "?").
	Query string

	// Route is the matched route definition.
	Route RouteDefinition

	// Params are the captured path parameters.
	Params map[string]string

	// Props are the view inputs. Nil unless Route.Props is set.
	Props map[string]string

	// RedirectTo is set when only the catch-all matched.
	RedirectTo string
}

// Redirected reports whether resolution ended in a redirect instruction.
func (r Resolution) Redirected() bool {
	return r.RedirectTo != ""
}

// URL returns the resolved path with its query string.
func (r Resolution) URL() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// NavigationEvent is handed to the title sync hook once per navigation.
type NavigationEvent struct {
	To   string
	From string
	Meta PageMeta
}

// ScrollPosition is the viewport offset applied before render.
type ScrollPosition struct {
	Top int `json:"top"`
}

// Navigation is the outcome of one completed navigation.
type Navigation struct {
	Resolution

	// From is the URL of the previous navigation, empty on initial load.
	From string

	// RedirectedFrom is the requested path when the catch-all redirected.
	RedirectedFrom string

	// Title is the page title written to the title sink.
	Title string

	// Scroll is the scroll position for the new view.
	Scroll ScrollPosition
}
