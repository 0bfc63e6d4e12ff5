package res

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

func Json(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, msg string, statusCode int) {
	Json(w, map[string]any{"error": msg}, statusCode)
}

type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// HTML renders the page into a buffer first so a template error never
// leaves a half-written response behind.
func HTML(w http.ResponseWriter, r Renderer, name string, data any, statusCode int) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = buf.WriteTo(w)
	return nil
}

// Redirect answers a form post with 303 so the browser follows up with GET.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
