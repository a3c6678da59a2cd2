package subjects

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/studyplan/api/httpx"
	"github.com/kilianp07/studyplan/app"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/infra/store/memory"
)

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, app.NewService(memory.New()))
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(httpx.UserHeader, "alice")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSubjectLifecycle(t *testing.T) {
	mux := newMux()

	rr := do(t, mux, http.MethodPost, "/api/subjects",
		`{"name":"Math","priority":1,"deadline":"2024-06-01","estimated_hours":6,"topics":["algebra"]}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created model.Subject
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rr = do(t, mux, http.MethodPut, "/api/subjects/"+created.ID, `{"estimated_hours":8}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated model.Subject
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, 8.0, updated.EstimatedHours)
	assert.Equal(t, "Math", updated.Name)

	rr = do(t, mux, http.MethodGet, "/api/subjects", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []model.Subject
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rr = do(t, mux, http.MethodDelete, "/api/subjects/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, mux, http.MethodDelete, "/api/subjects/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateInvalidSubject(t *testing.T) {
	rr := do(t, newMux(), http.MethodPost, "/api/subjects", `{"name":"Math","priority":7,"deadline":"2024-06-01"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "priority")
}

func TestUpdateUnknownSubject(t *testing.T) {
	rr := do(t, newMux(), http.MethodPut, "/api/subjects/nope", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestImportWorkbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"name", "priority", "deadline", "estimated_hours", "topics"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Math", 1, "2024-06-01", 4, "algebra"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Art", 4, "2024-06-09", 1, ""}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	mux := newMux()
	rr := do(t, mux, http.MethodPost, "/api/subjects/import", buf.String())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var out []model.Subject
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, []string{"algebra"}, out[0].Topics)

	rr = do(t, mux, http.MethodPost, "/api/subjects/import", "not a workbook")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
