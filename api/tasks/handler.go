// Package tasks serves the task endpoints under /api/tasks.
package tasks

import (
	"context"
	"net/http"

	"github.com/kilianp07/studyplan/api/httpx"
	"github.com/kilianp07/studyplan/app"
	"github.com/kilianp07/studyplan/core/model"
)

// Service is the part of app.Service used by the handlers.
type Service interface {
	ListTasks(ctx context.Context, userID string) ([]model.Task, error)
	CreateTask(ctx context.Context, userID string, t model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, userID, id string, p app.TaskPatch) (model.Task, error)
	DeleteTask(ctx context.Context, userID, id string) error
}

// Register mounts the task routes on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /api/tasks", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		out, err := svc.ListTasks(r.Context(), user)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, out)
		return nil
	}))

	mux.Handle("POST /api/tasks", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		var in model.Task
		if err := httpx.Decode(r, &in); err != nil {
			return err
		}
		out, err := svc.CreateTask(r.Context(), user, in)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusCreated, out)
		return nil
	}))

	mux.Handle("PUT /api/tasks/{id}", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		var p app.TaskPatch
		if err := httpx.Decode(r, &p); err != nil {
			return err
		}
		out, err := svc.UpdateTask(r.Context(), user, r.PathValue("id"), p)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, out)
		return nil
	}))

	mux.Handle("DELETE /api/tasks/{id}", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		if err := svc.DeleteTask(r.Context(), user, r.PathValue("id")); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	}))
}
