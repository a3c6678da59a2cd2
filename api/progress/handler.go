// Package progress serves session progress, the summary and the dashboard.
package progress

import (
	"context"
	"net/http"

	"github.com/kilianp07/studyplan/api/httpx"
	"github.com/kilianp07/studyplan/app"
	"github.com/kilianp07/studyplan/core/model"
	coreprogress "github.com/kilianp07/studyplan/core/progress"
)

// Service is the part of app.Service used by the handlers.
type Service interface {
	Progress(ctx context.Context, userID string) (model.Progress, error)
	SetProgress(ctx context.Context, userID, sessionID string, completed bool) (model.ProgressEntry, error)
	Summary(ctx context.Context, userID string) (coreprogress.Summary, error)
	Dashboard(ctx context.Context, userID string) (app.Dashboard, error)
}

// Update is the body of POST /api/progress.
type Update struct {
	SessionID string `json:"session_id"`
	Completed bool   `json:"completed"`
}

// Register mounts the progress routes on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /api/progress", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		out, err := svc.Progress(r.Context(), user)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, out)
		return nil
	}))

	mux.Handle("POST /api/progress", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		var in Update
		if err := httpx.Decode(r, &in); err != nil {
			return err
		}
		out, err := svc.SetProgress(r.Context(), user, in.SessionID, in.Completed)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, out)
		return nil
	}))

	mux.Handle("GET /api/progress/summary", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		out, err := svc.Summary(r.Context(), user)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, out)
		return nil
	}))

	mux.Handle("GET /api/dashboard", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		out, err := svc.Dashboard(r.Context(), user)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, out)
		return nil
	}))
}
