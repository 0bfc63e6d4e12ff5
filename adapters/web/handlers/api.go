package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"task-scheduler/core"
	"task-scheduler/pkg/res"
)

// Register wires every route. deps are reported by /api/ping; the service
// itself is always checked as "db".
func Register(mux *http.ServeMux, log *slog.Logger, svc core.Tasks, v res.Renderer, deps map[string]core.Pinger, timeout time.Duration) {
	pingers := map[string]core.Pinger{"db": svc}
	for name, p := range deps {
		pingers[name] = p
	}

	// pages
	mux.Handle("GET /{$}", NewIndexHandler(log, svc, v, timeout))
	mux.Handle("GET /add_task", NewAddTaskFormHandler(log, svc, v, timeout))
	mux.Handle("POST /add_task", NewCreateTaskHandler(log, svc, v, timeout))
	mux.Handle("GET /edit_task/{id}", NewEditTaskHandler(log, svc, v, timeout))
	mux.Handle("POST /update_task/{id}", NewUpdateTaskHandler(log, svc, v, timeout))
	mux.Handle("GET /delete_task/{id}", NewDeleteTaskHandler(log, svc, v, timeout))

	// categories
	mux.Handle("POST /add_category", NewAddCategoryHandler(log, svc, v, timeout))
	mux.Handle("POST /delete_category", NewDeleteCategoryHandler(log, svc, v, timeout))

	// json
	mux.Handle("GET /api/ping", NewPingHandler(log, pingers, timeout))
	mux.Handle("GET /api/tasks", NewListTasksHandler(log, svc, timeout))
	mux.Handle("GET /api/categories", NewListCategoriesHandler(log, svc, timeout))
	mux.Handle("GET /api/priorities", NewListPrioritiesHandler(log, svc, timeout))
}
