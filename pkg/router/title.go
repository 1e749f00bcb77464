package router

import "sync"

// TitleSink receives the page title after every navigation.
type TitleSink interface {
	SetTitle(title string)
}

// TitleFunc is a function adapter for TitleSink.
type TitleFunc func(title string)

// SetTitle implements TitleSink.
func (f TitleFunc) SetTitle(title string) {
	f(title)
}

// DocumentTitle is an in-memory title slot.
// It is safe for concurrent use.
type DocumentTitle struct {
	mu    sync.RWMutex
	title string
}

// SetTitle implements TitleSink.
func (d *DocumentTitle) SetTitle(title string) {
	d.mu.Lock()
	d.title = title
	d.mu.Unlock()
}

// Title returns the current title.
func (d *DocumentTitle) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

type discardTitle struct{}

func (discardTitle) SetTitle(string) {}
