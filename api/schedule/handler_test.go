package schedule

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studyplan/api/httpx"
	"github.com/kilianp07/studyplan/app"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/infra/store/memory"
)

func setup(t *testing.T) (*http.ServeMux, *app.Service) {
	t.Helper()
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := app.NewService(memory.New(), app.WithClock(func() time.Time { return now }))
	_, err := svc.CreateSubject(context.Background(), "carol", model.Subject{
		Name: "Math", Priority: 1, Deadline: model.MustDate("2024-06-01"), EstimatedHours: 3,
	})
	require.NoError(t, err)
	mux := http.NewServeMux()
	Register(mux, svc)
	return mux, svc
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(httpx.UserHeader, "carol")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGenerateAndFetch(t *testing.T) {
	mux, _ := setup(t)

	rr := do(t, mux, http.MethodGet, "/api/schedule", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, mux, http.MethodPost, "/api/schedule/generate", `{"available_hours":2,"max_session_duration":1,"break_duration":0}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var plan model.Plan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &plan))
	require.Len(t, plan.Weekly, 2)
	assert.Equal(t, "2024-05-01", plan.Weekly[0].Date.String())
	assert.Equal(t, "10:00", plan.Weekly[0].Sessions[1].StartTime)

	rr = do(t, mux, http.MethodGet, "/api/schedule", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var stored model.Plan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stored))
	assert.Equal(t, plan.Sessions()[0].ID, stored.Sessions()[0].ID)
}

func TestGenerateDefaultsAndStartDate(t *testing.T) {
	mux, _ := setup(t)
	rr := do(t, mux, http.MethodPost, "/api/schedule/generate", `{"start_date":"2024-05-10"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var plan model.Plan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &plan))
	assert.Equal(t, "2024-05-10", plan.Daily.Date.String())
	assert.Equal(t, model.DefaultSettings(), plan.Settings)
}

func TestGenerateRejectsBadSettings(t *testing.T) {
	mux, _ := setup(t)
	rr := do(t, mux, http.MethodPost, "/api/schedule/generate", `{"available_hours":-1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = do(t, mux, http.MethodPost, "/api/schedule/generate", `{"available_hours":20}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGenerateWithoutSubjects(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, app.NewService(memory.New()))
	rr := do(t, mux, http.MethodPost, "/api/schedule/generate", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "no subjects")
}

func TestRebalance(t *testing.T) {
	mux, svc := setup(t)
	rr := do(t, mux, http.MethodPost, "/api/schedule/rebalance", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	plan, err := svc.Generate(context.Background(), "carol", app.GenerateRequest{})
	require.NoError(t, err)
	_, err = svc.SetProgress(context.Background(), "carol", plan.Sessions()[0].ID, true)
	require.NoError(t, err)

	rr = do(t, mux, http.MethodPost, "/api/schedule/rebalance", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var next model.Plan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &next))
	assert.InDelta(t, 1.0, next.TotalHours(), 1e-9)
}

func TestExport(t *testing.T) {
	mux, svc := setup(t)
	_, err := svc.Generate(context.Background(), "carol", app.GenerateRequest{})
	require.NoError(t, err)

	rr := do(t, mux, http.MethodGet, "/api/schedule/export?format=csv", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	rows, err := csv.NewReader(rr.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "date", rows[0][0])
	assert.Equal(t, "Math", rows[1][3])

	rr = do(t, mux, http.MethodGet, "/api/schedule/export", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	rr = do(t, mux, http.MethodGet, "/api/schedule/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
