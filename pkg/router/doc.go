// Package router resolves Rusty Words navigation paths against an ordered
// route table.
//
// The router provides:
//   - An immutable, ordered route table built once at startup
//   - First-match resolution over static, parameter and catch-all segments
//   - A catch-all redirect policy instead of a not-found error
//   - Title sync after every navigation through an injected TitleSink
//   - Scroll reset before every render
//   - A Navigator with history and middleware
//
// # Patterns
//
//	/               → static root
//	/add            → static segment
//	/word/:wordId   → named parameter, captured as params["wordId"]
//	/*              → catch-all, must be the last entry of the table
//
// Parameters match any non-empty segment. Patterns are tried in
// declaration order and the first structural match wins, so a catch-all
// declared anywhere but last would shadow every route after it; NewTable
// rejects such tables.
//
// # Usage
//
//	title := &router.DocumentTitle{}
//	resolver := router.NewResolver(router.MustDefaultTable(), title)
//	nav := router.NewNavigator(resolver)
//
//	n, _ := nav.Navigate(ctx, "/word/42")
//	// n.Route.View == router.ViewWordDetails
//	// n.Props["wordId"] == "42"
//	// title.Title() == "Word Details | Rusty Words"
//	// n.Scroll == router.ScrollPosition{Top: 0}
package router
