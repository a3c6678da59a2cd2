// Package storetest holds the behaviour every store.Store implementation
// must exhibit, run against each adapter from its own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/store"
)

// Run executes the conformance suite. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("Subjects", func(t *testing.T) { testSubjects(t, newStore(t)) })
	t.Run("Plans", func(t *testing.T) { testPlans(t, newStore(t)) })
	t.Run("Progress", func(t *testing.T) { testProgress(t, newStore(t)) })
	t.Run("Tasks", func(t *testing.T) { testTasks(t, newStore(t)) })
}

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func testSubjects(t *testing.T, s store.Store) {
	ctx := context.Background()
	list, err := s.ListSubjects(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	b := model.Subject{ID: "b", Name: "Biology", Priority: 2, Deadline: model.MustDate("2024-01-12"), EstimatedHours: 5, CreatedAt: base.Add(time.Minute)}
	a := model.Subject{ID: "a", Name: "Algebra", Priority: 1, Deadline: model.MustDate("2024-01-10"), EstimatedHours: 3, Topics: []string{"groups"}, CreatedAt: base}
	require.NoError(t, s.SaveSubject(ctx, "u1", b))
	require.NoError(t, s.SaveSubject(ctx, "u1", a))
	require.NoError(t, s.SaveSubject(ctx, "u2", model.Subject{ID: "a", Name: "Other", Priority: 3, Deadline: model.MustDate("2024-01-01"), CreatedAt: base}))

	list, err = s.ListSubjects(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID, "creation order")
	assert.Equal(t, []string{"groups"}, list[0].Topics)
	assert.Equal(t, "2024-01-10", list[0].Deadline.String())

	a.EstimatedHours = 4
	require.NoError(t, s.SaveSubject(ctx, "u1", a))
	got, err := s.GetSubject(ctx, "u1", "a")
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.EstimatedHours)

	other, err := s.GetSubject(ctx, "u2", "a")
	require.NoError(t, err)
	assert.Equal(t, "Other", other.Name)

	require.NoError(t, s.DeleteSubject(ctx, "u1", "a"))
	_, err = s.GetSubject(ctx, "u1", "a")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteSubject(ctx, "u1", "a"), store.ErrNotFound)
}

func testPlans(t *testing.T, s store.Store) {
	ctx := context.Background()
	_, err := s.LoadPlan(ctx, "u1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	day := model.DaySchedule{
		Date: model.MustDate("2024-01-01"),
		Sessions: []model.Session{{
			ID: "x1", SubjectID: "a", SubjectName: "Algebra", StartTime: "09:00", EndTime: "11:00",
			Duration: 2, Topics: []string{"groups"}, Priority: 1,
		}},
		TotalHours: 2,
	}
	plan := model.Plan{Daily: day, Weekly: []model.DaySchedule{day}, GeneratedAt: base, Settings: model.DefaultSettings()}
	require.NoError(t, s.SavePlan(ctx, "u2", plan))
	require.NoError(t, s.SavePlan(ctx, "u1", plan))

	got, err := s.LoadPlan(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, plan.Weekly, got.Weekly)
	assert.Equal(t, plan.Settings, got.Settings)
	assert.True(t, plan.GeneratedAt.Equal(got.GeneratedAt))

	replacement := plan
	replacement.Weekly = nil
	replacement.GeneratedAt = base.Add(time.Hour)
	require.NoError(t, s.SavePlan(ctx, "u1", replacement))
	got, err = s.LoadPlan(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.Weekly, "plan replaced")

	users, err := s.ListPlanUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, users)
}

func testProgress(t *testing.T, s store.Store) {
	ctx := context.Background()
	p, err := s.LoadProgress(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Empty(t, p)

	require.NoError(t, s.SetProgress(ctx, "u1", "s1", model.ProgressEntry{Completed: true, UpdatedAt: base}))
	require.NoError(t, s.SetProgress(ctx, "u1", "s2", model.ProgressEntry{Completed: true, UpdatedAt: base}))
	require.NoError(t, s.SetProgress(ctx, "u1", "s2", model.ProgressEntry{Completed: false, UpdatedAt: base.Add(time.Second)}))
	require.NoError(t, s.SetProgress(ctx, "u2", "s1", model.ProgressEntry{Completed: false, UpdatedAt: base}))

	p, err = s.LoadProgress(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.True(t, p.Completed("s1"))
	assert.False(t, p.Completed("s2"))
	assert.True(t, p["s2"].UpdatedAt.Equal(base.Add(time.Second)))
}

func testTasks(t *testing.T, s store.Store) {
	ctx := context.Background()
	late := model.Task{ID: "t1", Title: "Essay", Type: model.TaskHomework, DueDate: model.MustDate("2024-01-20"), CreatedAt: base}
	soon := model.Task{ID: "t2", Title: "Quiz", Type: model.TaskTest, DueDate: model.MustDate("2024-01-05"), SubjectID: "a", CreatedAt: base}
	require.NoError(t, s.SaveTask(ctx, "u1", late))
	require.NoError(t, s.SaveTask(ctx, "u1", soon))

	list, err := s.ListTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t2", list[0].ID, "due date order")

	soon.Completed = true
	require.NoError(t, s.SaveTask(ctx, "u1", soon))
	got, err := s.GetTask(ctx, "u1", "t2")
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "a", got.SubjectID)

	require.NoError(t, s.DeleteTask(ctx, "u1", "t1"))
	assert.ErrorIs(t, s.DeleteTask(ctx, "u1", "t1"), store.ErrNotFound)
	_, err = s.GetTask(ctx, "u2", "t2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
