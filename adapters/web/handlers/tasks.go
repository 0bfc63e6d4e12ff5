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

type addTaskPage struct {
	Categories []string
	Priorities []string
}

func render(w http.ResponseWriter, log *slog.Logger, v res.Renderer, name string, data any) {
	if err := res.HTML(w, v, name, data, http.StatusOK); err != nil {
		log.Error("render page", "page", name, "error", err)
	}
}

func NewIndexHandler(log *slog.Logger, svc core.Tasks, v res.Renderer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		board, err := svc.Board(ctx)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		render(w, log, v, "index.html", board)
	}
}

func NewAddTaskFormHandler(log *slog.Logger, svc core.Tasks, v res.Renderer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		categories, err := svc.ListCategories(ctx)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		priorities, err := svc.ListPriorities(ctx)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		render(w, log, v, "add_task.html", addTaskPage{Categories: categories, Priorities: priorities})
	}
}

func NewCreateTaskHandler(log *slog.Logger, svc core.Tasks, v res.Renderer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := web.TaskInputFromForm(r)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if _, err := svc.CreateTask(ctx, in); err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		res.Redirect(w, r, "/")
	}
}

func NewEditTaskHandler(log *slog.Logger, svc core.Tasks, v res.Renderer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathID(r)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		form, err := svc.EditForm(ctx, id)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		render(w, log, v, "edit.html", form)
	}
}

func NewUpdateTaskHandler(log *slog.Logger, svc core.Tasks, v res.Renderer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathID(r)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		in, err := web.TaskInputFromForm(r)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if _, err := svc.UpdateTask(ctx, id, in); err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		res.Redirect(w, r, "/")
	}
}

func NewDeleteTaskHandler(log *slog.Logger, svc core.Tasks, v res.Renderer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathID(r)
		if err != nil {
			web.RenderErr(w, log, v, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, id); err != nil {
			web.RenderErr(w, log, v, err)
			return
		}
		res.Redirect(w, r, "/")
	}
}
