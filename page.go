package rustywords

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/oversys/Rusty-Words/pkg/router"
)

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.StyleHref}}">
</head>
<body>
<div id="app" data-view="{{.View}}" data-path="{{.Path}}" data-props="{{.Props}}" data-nav="{{.NavPath}}"></div>
<script type="module" src="{{.ScriptSrc}}"></script>
</body>
</html>
`))

type shellData struct {
	Title     string
	View      router.ViewID
	Path      string
	Props     string
	NavPath   string
	StyleHref string
	ScriptSrc string
}

// handlePage resolves the request path and renders the page shell. A
// catch-all redirect answers 302 to the home route.
func (a *App) handlePage(w http.ResponseWriter, r *http.Request) {
	if a.isStaticPath(r.URL.Path) || (a.config.Static.Prefix == "/" && a.hasStaticFile(r.URL.Path)) {
		a.serveStatic(w, r)
		return
	}

	target := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	title := &router.DocumentTitle{}
	nav, err := a.NewNavigator(title).Navigate(r.Context(), target)
	if err != nil {
		a.logger.Error("navigation failed", "path", target, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if nav.RedirectedFrom != "" {
		http.Redirect(w, r, nav.URL(), http.StatusFound)
		return
	}

	props := []byte("{}")
	if nav.Props != nil {
		if props, err = json.Marshal(nav.Props); err != nil {
			a.logger.Error("encoding props failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	var buf bytes.Buffer
	err = shellTemplate.Execute(&buf, shellData{
		Title:     title.Title(),
		View:      nav.Route.View,
		Path:      nav.URL(),
		Props:     string(props),
		NavPath:   NavPath,
		StyleHref: a.assets.URL("styles.css"),
		ScriptSrc: a.assets.URL("main.js"),
	})
	if err != nil {
		a.logger.Error("render failed", "error", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
