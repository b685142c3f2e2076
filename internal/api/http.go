// Package api serves the task list over HTTP as JSON, with a plain-text
// checklist download.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"taskpad/internal/export"
	"taskpad/internal/storage"
)

// Todo is the wire form of a task.
type Todo struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate"`
	Notified  bool       `json:"notified"`
}

func toTodo(t storage.Task) Todo {
	out := Todo{ID: t.ID, Text: t.Text, Completed: t.Completed, Notified: t.Notified}
	if t.HasDue() {
		due := t.Due
		out.DueDate = &due
	}
	return out
}

// update carries the fields a PUT may change. DueDate stays raw so an
// explicit null can be told apart from an absent field.
type update struct {
	Text      *string         `json:"text"`
	Completed *bool           `json:"completed"`
	DueDate   json.RawMessage `json:"dueDate"`
}

// Handler owns one store snapshot. Each request swaps it under the lock.
type Handler struct {
	mu     sync.RWMutex
	store  storage.Store
	export export.Options
	logger *slog.Logger
}

func NewHandler(store storage.Store, opts export.Options, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{store: store, export: opts, logger: logger}
}

// Store returns the current snapshot.
func (h *Handler) Store() storage.Store {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store
}

// Routes registers the API on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/todos", h.TodosRoot)
	mux.HandleFunc("/todos/", h.TodosSub)
	mux.HandleFunc("/download", h.Download)
	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// /todos
func (h *Handler) TodosRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tasks := h.Store().Tasks()
		out := make([]Todo, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, toTodo(t))
		}
		writeJSON(w, 200, out)

	case http.MethodPost:
		var in struct {
			Text *string `json:"text"`
		}
		if err := decodeJSON(r, &in); err != nil || in.Text == nil {
			writeErr(w, 400, "missing 'text' in request body")
			return
		}

		h.mu.Lock()
		next, err := h.store.Add(*in.Text)
		if err == nil {
			h.store = next
		}
		h.mu.Unlock()
		if errors.Is(err, storage.ErrValidation) {
			writeErr(w, 400, err.Error())
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}

		tasks := next.Tasks()
		created := tasks[len(tasks)-1]
		h.logger.Info("task added", "id", created.ID)
		writeJSON(w, 201, toTodo(created))

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /todos/{id}
func (h *Handler) TodosSub(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/todos/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeErr(w, 404, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var in update
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "invalid json")
			return
		}
		if in.Text != nil && strings.TrimSpace(*in.Text) == "" {
			writeErr(w, 400, storage.ErrBlankText.Error())
			return
		}
		due, clearDue, err := parseDue(in.DueDate)
		if err != nil {
			writeErr(w, 400, "invalid dueDate: "+err.Error())
			return
		}

		h.mu.Lock()
		cur, err := h.store.Get(id)
		if err != nil {
			h.mu.Unlock()
			writeErr(w, 404, "todo not found")
			return
		}
		next := h.store
		if in.Text != nil {
			next = next.SetText(id, *in.Text)
		}
		if in.Completed != nil && *in.Completed != cur.Completed {
			next = next.Toggle(id)
		}
		if clearDue || !due.IsZero() {
			next = next.SetDue(id, due)
		}
		h.store = next
		h.mu.Unlock()

		updated, _ := next.Get(id)
		writeJSON(w, 200, toTodo(updated))

	case http.MethodDelete:
		h.mu.Lock()
		_, err := h.store.Get(id)
		if err == nil {
			h.store = h.store.Delete(id)
		}
		h.mu.Unlock()
		if errors.Is(err, storage.ErrNotFound) {
			writeErr(w, 404, "todo not found")
			return
		}
		h.logger.Info("task deleted", "id", id)
		writeJSON(w, 200, map[string]any{"message": "todo deleted"})

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// parseDue reads an optional RFC 3339 timestamp. An explicit null clears
// the due date.
func parseDue(raw json.RawMessage) (due time.Time, unset bool, err error) {
	if len(raw) == 0 {
		return time.Time{}, false, nil
	}
	if string(raw) == "null" {
		return time.Time{}, true, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false, err
	}
	if s == "" {
		return time.Time{}, true, nil
	}
	due, err = time.Parse(time.RFC3339, s)
	return due, false, err
}

// /download
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	content := export.Format(h.Store(), h.export)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.DefaultFilename+`"`)
	w.WriteHeader(200)
	_, _ = w.Write([]byte(content))
}
