// Package api assembles the HTTP API of the study plan service.
package api

import (
	"net/http"

	"github.com/kilianp07/studyplan/api/httpx"
	"github.com/kilianp07/studyplan/api/progress"
	"github.com/kilianp07/studyplan/api/schedule"
	"github.com/kilianp07/studyplan/api/subjects"
	"github.com/kilianp07/studyplan/api/tasks"
	"github.com/kilianp07/studyplan/app"
)

// NewRouter returns the API handler. When token is set every /api route
// requires it; /healthz stays open.
func NewRouter(svc *app.Service, token string) http.Handler {
	apiMux := http.NewServeMux()
	subjects.Register(apiMux, svc)
	schedule.Register(apiMux, svc)
	progress.Register(apiMux, svc)
	tasks.Register(apiMux, svc)

	root := http.NewServeMux()
	root.Handle("/api/", httpx.Auth(token, apiMux))
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return httpx.Logging(root)
}
