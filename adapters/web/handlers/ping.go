package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"task-scheduler/core"
	"task-scheduler/pkg/res"
)

type pingResult struct {
	Status  string `json:"status"`
	Latency string `json:"latency"`
}

// NewPingHandler checks every dependency and answers 503 if any is down.
func NewPingHandler(log *slog.Logger, deps map[string]core.Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out := make(map[string]pingResult, len(deps))
		code := http.StatusOK

		for name, dep := range deps {
			start := time.Now()
			err := dep.Ping(ctx)
			result := pingResult{Status: "ok", Latency: time.Since(start).String()}
			if err != nil {
				log.Warn("dependency ping failed", "dependency", name, "error", err)
				result.Status = "down"
				code = http.StatusServiceUnavailable
			}
			out[name] = result
		}

		res.Json(w, map[string]any{"dependencies": out}, code)
	}
}
