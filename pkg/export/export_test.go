package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studyplan/core/model"
)

func samplePlan() model.Plan {
	d := model.MustDate("2024-05-01")
	day := model.DaySchedule{
		Date: d,
		Sessions: []model.Session{
			{ID: "a", SubjectID: "s1", SubjectName: "Math", StartTime: "09:00", EndTime: "11:00", Duration: 2, Priority: 1, Topics: []string{"algebra", "groups"}},
			{ID: "b", Slot: 1, SubjectID: "s2", SubjectName: "History, modern", StartTime: "11:30", EndTime: "12:30", Duration: 1, Priority: 2},
		},
		TotalHours: 3,
	}
	return model.Plan{Daily: day, Weekly: []model.DaySchedule{day}, Settings: model.DefaultSettings()}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samplePlan()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"2024-05-01", "a", "s1", "Math", "09:00", "11:00", "2", "1", "algebra;groups"}, rows[1])
	assert.Equal(t, "History, modern", rows[2][3])
	assert.Equal(t, "", rows[2][8])
}

func TestWriteCSVEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, model.Plan{}))
	assert.Equal(t, "date,session_id,subject_id,subject,start,end,duration,priority,topics\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, samplePlan()))
	var out model.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Weekly, 1)
	assert.Equal(t, "2024-05-01", out.Weekly[0].Date.String())
	assert.Equal(t, 3.0, out.Daily.TotalHours)
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "CSV", samplePlan()))
	assert.Contains(t, buf.String(), "date,session_id")
	assert.Error(t, Write(&buf, "xml", samplePlan()))
}
