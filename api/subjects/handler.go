// Package subjects serves the subject endpoints under /api/subjects.
package subjects

import (
	"context"
	"net/http"

	"github.com/kilianp07/studyplan/api/httpx"
	"github.com/kilianp07/studyplan/app"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/infra/importer"
)

// Service is the part of app.Service used by the handlers.
type Service interface {
	ListSubjects(ctx context.Context, userID string) ([]model.Subject, error)
	CreateSubject(ctx context.Context, userID string, s model.Subject) (model.Subject, error)
	UpdateSubject(ctx context.Context, userID, id string, p app.SubjectPatch) (model.Subject, error)
	DeleteSubject(ctx context.Context, userID, id string) error
	ImportSubjects(ctx context.Context, userID string, subjects []model.Subject) ([]model.Subject, error)
}

// Register mounts the subject routes on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /api/subjects", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		out, err := svc.ListSubjects(r.Context(), user)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, out)
		return nil
	}))

	mux.Handle("POST /api/subjects", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		var in model.Subject
		if err := httpx.Decode(r, &in); err != nil {
			return err
		}
		out, err := svc.CreateSubject(r.Context(), user, in)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusCreated, out)
		return nil
	}))

	// The body is an .xlsx workbook.
	mux.Handle("POST /api/subjects/import", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		parsed, err := importer.Read(r.Body)
		if err != nil {
			return err
		}
		out, err := svc.ImportSubjects(r.Context(), user, parsed)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusCreated, out)
		return nil
	}))

	mux.Handle("PUT /api/subjects/{id}", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		var p app.SubjectPatch
		if err := httpx.Decode(r, &p); err != nil {
			return err
		}
		out, err := svc.UpdateSubject(r.Context(), user, r.PathValue("id"), p)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, out)
		return nil
	}))

	mux.Handle("DELETE /api/subjects/{id}", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		if err := svc.DeleteSubject(r.Context(), user, r.PathValue("id")); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	}))
}
