package rustywords

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/oversys/Rusty-Words/pkg/words"
)

// GreetResponse is returned by GET /api/greet.
type GreetResponse struct {
	Message string `json:"message"`
}

// Greeting returns the greeting for name.
func Greeting(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Rusty Words!", name)
}

func (a *App) handleGreet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.logger, http.StatusOK, GreetResponse{Message: Greeting(r.URL.Query().Get("name"))})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if p, ok := a.config.Store.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(r.Context()); err != nil {
			a.logger.Error("health check failed", "error", err)
			writeJSON(w, a.logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, a.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleListWords(w http.ResponseWriter, r *http.Request) {
	store, ok := a.store(w)
	if !ok {
		return
	}

	list, err := store.All(r.Context())
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, a.logger, http.StatusOK, list)
}

func (a *App) handleGetWord(w http.ResponseWriter, r *http.Request) {
	store, ok := a.store(w)
	if !ok {
		return
	}

	id, err := wordID(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	word, err := store.Get(r.Context(), id)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, a.logger, http.StatusOK, word)
}

func (a *App) handleAddWord(w http.ResponseWriter, r *http.Request) {
	store, ok := a.store(w)
	if !ok {
		return
	}

	var word words.Word
	if err := a.readJSON(w, r, &word); err != nil {
		writeError(w, a.logger, err)
		return
	}
	word.ID = 0

	id, err := store.Add(r.Context(), word)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	saved, err := store.Get(r.Context(), id)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	w.Header().Set("Location", "/api/words/"+strconv.FormatInt(id, 10))
	writeJSON(w, a.logger, http.StatusCreated, saved)
}

func (a *App) handleUpdateWord(w http.ResponseWriter, r *http.Request) {
	store, ok := a.store(w)
	if !ok {
		return
	}

	id, err := wordID(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	var word words.Word
	if err := a.readJSON(w, r, &word); err != nil {
		writeError(w, a.logger, err)
		return
	}
	if word.ID != 0 && word.ID != id {
		writeError(w, a.logger, BadRequestf("body id %d does not match path id %d", word.ID, id))
		return
	}
	word.ID = id

	if err := store.Update(r.Context(), word); err != nil {
		writeError(w, a.logger, err)
		return
	}

	saved, err := store.Get(r.Context(), id)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, a.logger, http.StatusOK, saved)
}

func (a *App) store(w http.ResponseWriter) (WordStore, bool) {
	if a.config.Store == nil {
		writeError(w, a.logger, &HTTPError{Code: http.StatusServiceUnavailable, Message: "word store not configured"})
		return nil, false
	}
	return a.config.Store, true
}

func wordID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, BadRequestf("invalid word id %q", raw)
	}
	return id, nil
}

// readJSON decodes a JSON request body into dst, bounded by MaxBodyBytes.
func (a *App) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !isJSONContentType(ct) {
		return &HTTPError{Code: http.StatusUnsupportedMediaType, Message: "unsupported content type"}
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.config.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return &HTTPError{Code: http.StatusRequestEntityTooLarge, Message: "request body too large", Err: err}
		}
		return &HTTPError{Code: http.StatusBadRequest, Message: "invalid request body", Err: err}
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return BadRequestf("missing request body")
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return &HTTPError{Code: http.StatusBadRequest, Message: "invalid JSON body", Err: err}
	}
	return nil
}

func isJSONContentType(contentType string) bool {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType))
	return contentType == "application/json" || strings.HasSuffix(contentType, "+json")
}
