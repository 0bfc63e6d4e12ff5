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

func NewListTasksHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTasks(ctx)
		if err != nil {
			web.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"tasks": items}, http.StatusOK)
	}
}

func NewListCategoriesHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListCategories(ctx)
		if err != nil {
			web.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"categories": items}, http.StatusOK)
	}
}

func NewListPrioritiesHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListPriorities(ctx)
		if err != nil {
			web.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"priorities": items}, http.StatusOK)
	}
}
