package web

import (
	"errors"
	"log/slog"
	"net/http"

	"task-scheduler/core"
	"task-scheduler/pkg/res"
)

// ErrBadRequest marks malformed input caught before reaching the service.
var ErrBadRequest = errors.New("bad request")

func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, core.ErrTaskInvalidArgs),
		errors.Is(err, core.ErrCategoryInvalidArgs),
		errors.Is(err, core.ErrPriorityNotFound):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTaskNotFound),
		errors.Is(err, core.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrCategoryInUse):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error, code int) string {
	if code == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}

// WriteErr answers API requests with a JSON error.
func WriteErr(w http.ResponseWriter, log *slog.Logger, err error) {
	code := StatusOf(err)
	if code == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	}
	res.Error(w, messageOf(err, code), code)
}

type errorPage struct {
	Status  int
	Title   string
	Message string
}

// RenderErr answers browser requests with the error page.
func RenderErr(w http.ResponseWriter, log *slog.Logger, v res.Renderer, err error) {
	code := StatusOf(err)
	if code == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	}

	page := errorPage{Status: code, Title: http.StatusText(code), Message: messageOf(err, code)}
	if rerr := res.HTML(w, v, "error.html", page, code); rerr != nil {
		log.Error("render error page", "error", rerr)
	}
}
