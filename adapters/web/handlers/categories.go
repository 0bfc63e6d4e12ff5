package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"task-scheduler/adapters/web"
	"task-scheduler/core"
	"task-scheduler/pkg/res"
)

func NewAddCategoryHandler(log *slog.Logger, svc core.Tasks, v res.Renderer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := web.FormValue(r, web.FieldNewCategory)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		created, err := svc.AddCategory(ctx, name)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		if !created {
			log.Debug("category already exists", "name", name)
		}
		res.Redirect(w, r, "/")
	}
}

func NewDeleteCategoryHandler(log *slog.Logger, svc core.Tasks, v res.Renderer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := web.FormValue(r, web.FieldDeleteCategory)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		// unknown names render 404
		if err := svc.DeleteCategory(ctx, name); err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		res.Redirect(w, r, "/")
	}
}
