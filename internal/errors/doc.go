// Package errors provides structured, coded errors for Rusty Words.
//
// Every error carries a short code (e.g. "E300") registered with a
// category and a one-line message. Call sites attach a detail, a hint and
// an underlying cause:
//
//	err := errors.New("E300").
//	    WithDetail("no word with id 42").
//	    WithSuggestion("List words with GET /api/words")
//
// Two errors with the same code compare equal under errors.Is, so packages
// export sentinels built with New and return fresh instances that carry
// call-site detail:
//
//	var ErrNotFound = errors.New("E300")
//
//	if stderrors.Is(err, words.ErrNotFound) { ... }
//
// # Error Categories
//
//   - config: configuration file errors (E100-E199)
//   - route: route table and navigation errors (E200-E299)
//   - store: word store errors (E300-E399)
//   - cli: command line usage errors (E400-E499)
//
// The CLI prints errors with Format, which renders the code, message,
// detail and hint for a terminal.
package errors
