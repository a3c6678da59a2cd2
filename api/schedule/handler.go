// Package schedule serves plan generation, rebalancing and export.
package schedule

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kilianp07/studyplan/api/httpx"
	"github.com/kilianp07/studyplan/app"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/pkg/export"
)

// Service is the part of app.Service used by the handlers.
type Service interface {
	Generate(ctx context.Context, userID string, req app.GenerateRequest) (model.Plan, error)
	CurrentPlan(ctx context.Context, userID string) (model.Plan, error)
	Rebalance(ctx context.Context, userID string) (model.Plan, error)
}

// Register mounts the schedule routes on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("POST /api/schedule/generate", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		var req app.GenerateRequest
		if err := httpx.Decode(r, &req); err != nil {
			return err
		}
		plan, err := svc.Generate(r.Context(), user, req)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusCreated, plan)
		return nil
	}))

	mux.Handle("GET /api/schedule", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		plan, err := svc.CurrentPlan(r.Context(), user)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, plan)
		return nil
	}))

	mux.Handle("POST /api/schedule/rebalance", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		plan, err := svc.Rebalance(r.Context(), user)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, http.StatusOK, plan)
		return nil
	}))

	mux.Handle("GET /api/schedule/export", httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request, user string) error {
		format := strings.ToLower(r.URL.Query().Get("format"))
		if format == "" {
			format = export.FormatJSON
		}
		if format != export.FormatJSON && format != export.FormatCSV {
			return fmt.Errorf("unsupported format %q: %w", format, model.ErrInvalid)
		}
		plan, err := svc.CurrentPlan(r.Context(), user)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, format, plan); err != nil {
			return err
		}
		ctype := "application/json"
		if format == export.FormatCSV {
			ctype = "text/csv"
		}
		w.Header().Set("Content-Type", ctype)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=study-plan.%s", format))
		_, err = w.Write(buf.Bytes())
		return err
	}))
}
