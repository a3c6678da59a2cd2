package scheduler

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/kilianp07/studyplan/core/model"
)

var fixedNow = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func testScheduler() *Scheduler {
	return &Scheduler{DayStart: DefaultDayStart, NewID: PositionalIDs, Now: func() time.Time { return fixedNow }}
}

func exampleSubjects() []model.Subject {
	return []model.Subject{
		{ID: "B", Name: "Biology", Priority: 2, EstimatedHours: 5, Deadline: model.MustDate("2024-01-12")},
		{ID: "A", Name: "Algebra", Priority: 1, EstimatedHours: 3, Deadline: model.MustDate("2024-01-10"), Topics: []string{"groups"}},
	}
}

func exampleSettings() model.Settings {
	return model.Settings{AvailableHours: 4, MaxSessionDuration: 2, BreakDuration: 0.5}
}

func TestGenerateWorkedExample(t *testing.T) {
	plan, err := testScheduler().Generate(exampleSubjects(), exampleSettings(), model.MustDate("2024-01-01"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(plan.Weekly) != 2 {
		t.Fatalf("expected 2 days got %d", len(plan.Weekly))
	}
	type slot struct {
		id, subject, start, end string
		dur                     float64
	}
	want := [][]slot{
		{
			{"0-0", "A", "09:00", "11:00", 2},
			{"0-1", "A", "11:30", "12:30", 1},
			{"0-2", "B", "13:00", "14:00", 1},
		},
		{
			{"1-0", "B", "09:00", "11:00", 2},
			{"1-1", "B", "11:30", "13:30", 2},
		},
	}
	for d, day := range want {
		got := plan.Weekly[d].Sessions
		if len(got) != len(day) {
			t.Fatalf("day %d: expected %d sessions got %d", d, len(day), len(got))
		}
		for i, w := range day {
			s := got[i]
			if s.ID != w.id || s.SubjectID != w.subject || s.StartTime != w.start || s.EndTime != w.end || s.Duration != w.dur {
				t.Fatalf("day %d slot %d: got %+v want %+v", d, i, s, w)
			}
		}
	}
	if plan.Weekly[0].Date.String() != "2024-01-01" || plan.Weekly[1].Date.String() != "2024-01-02" {
		t.Fatalf("bad dates %s %s", plan.Weekly[0].Date, plan.Weekly[1].Date)
	}
	if !reflect.DeepEqual(plan.Daily, plan.Weekly[0]) {
		t.Fatal("daily must be the first weekly day")
	}
	if plan.Weekly[0].Sessions[0].SubjectName != "Algebra" || plan.Weekly[0].Sessions[0].Priority != 1 {
		t.Fatalf("subject snapshot missing: %+v", plan.Weekly[0].Sessions[0])
	}
	if !reflect.DeepEqual(plan.Weekly[0].Sessions[0].Topics, []string{"groups"}) {
		t.Fatalf("topics %v", plan.Weekly[0].Sessions[0].Topics)
	}
	if plan.Settings != exampleSettings() || !plan.GeneratedAt.Equal(fixedNow) {
		t.Fatalf("settings or timestamp not echoed: %+v", plan)
	}
}

func TestGenerateInvariants(t *testing.T) {
	subjects := []model.Subject{
		{ID: "p3", Priority: 3, EstimatedHours: 2.25, Deadline: model.MustDate("2024-02-01")},
		{ID: "p1late", Priority: 1, EstimatedHours: 1.75, Deadline: model.MustDate("2024-03-01")},
		{ID: "p1early", Priority: 1, EstimatedHours: 3.1, Deadline: model.MustDate("2024-01-15")},
		{ID: "p5", Priority: 5, EstimatedHours: 4, Deadline: model.MustDate("2024-01-05")},
	}
	settings := model.Settings{AvailableHours: 3.5, MaxSessionDuration: 1.5, BreakDuration: 0.25}
	plan, err := testScheduler().Generate(subjects, settings, model.MustDate("2024-01-01"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	estimated := 0.0
	for _, s := range subjects {
		estimated += s.EstimatedHours
	}
	weekTotal := 0.0
	for _, day := range plan.Weekly {
		sum := 0.0
		for _, s := range day.Sessions {
			if s.Duration > settings.MaxSessionDuration+epsilon {
				t.Fatalf("session %s too long: %v", s.ID, s.Duration)
			}
			sum += s.Duration
		}
		if math.Abs(sum-day.TotalHours) > 1e-9 {
			t.Fatalf("day %s: total %v != sum %v", day.Date, day.TotalHours, sum)
		}
		if day.TotalHours > settings.AvailableHours+epsilon {
			t.Fatalf("day %s over capacity: %v", day.Date, day.TotalHours)
		}
		weekTotal += day.TotalHours
	}
	if math.Abs(weekTotal-estimated) > 1e-9 {
		t.Fatalf("expected %v scheduled got %v", estimated, weekTotal)
	}

	order := []string{"p1early", "p1late", "p3", "p5"}
	idx := 0
	for _, s := range plan.Sessions() {
		for idx < len(order) && order[idx] != s.SubjectID {
			idx++
		}
		if idx == len(order) {
			t.Fatalf("subject %s out of order", s.SubjectID)
		}
	}
}

func TestGenerateStopsAfterSevenDays(t *testing.T) {
	subjects := []model.Subject{{ID: "big", Priority: 1, EstimatedHours: 100}}
	plan, err := testScheduler().Generate(subjects, exampleSettings(), model.MustDate("2024-01-01"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(plan.Weekly) != DefaultDays {
		t.Fatalf("expected %d days got %d", DefaultDays, len(plan.Weekly))
	}
	if plan.TotalHours() != 28 {
		t.Fatalf("expected 28h got %v", plan.TotalHours())
	}
	last := plan.Weekly[len(plan.Weekly)-1]
	if last.Date.String() != "2024-01-07" {
		t.Fatalf("last day %s", last.Date)
	}
}

func TestGenerateNoBreakAfterLastSession(t *testing.T) {
	subjects := []model.Subject{
		{ID: "a", Priority: 1, EstimatedHours: 1},
		{ID: "b", Priority: 2, EstimatedHours: 0.5},
	}
	plan, err := testScheduler().Generate(subjects, exampleSettings(), model.MustDate("2024-01-01"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	s := plan.Daily.Sessions
	if len(s) != 2 || s[1].StartTime != "10:30" || s[1].EndTime != "11:00" {
		t.Fatalf("unexpected sessions %+v", s)
	}
	if len(plan.Weekly) != 1 {
		t.Fatalf("expected a single day got %d", len(plan.Weekly))
	}
}

func TestGenerateZeroHours(t *testing.T) {
	subjects := []model.Subject{{ID: "done", Priority: 1, EstimatedHours: 0}}
	start := model.MustDate("2024-01-01")
	plan, err := testScheduler().Generate(subjects, exampleSettings(), start)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(plan.Daily.Sessions) != 0 || !plan.Daily.Date.Equal(start) {
		t.Fatalf("expected empty day on start date, got %+v", plan.Daily)
	}
	if plan.TotalHours() != 0 {
		t.Fatalf("expected no hours got %v", plan.TotalHours())
	}
}

func TestGenerateDegenerateSettings(t *testing.T) {
	subjects := []model.Subject{{ID: "a", Priority: 1, EstimatedHours: 2}}
	settings := model.Settings{AvailableHours: 4, MaxSessionDuration: 0}
	plan, err := testScheduler().Generate(subjects, settings, model.MustDate("2024-01-01"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if n := len(plan.Sessions()); n != 0 {
		t.Fatalf("expected no sessions got %d", n)
	}
}

func TestGenerateEmpty(t *testing.T) {
	_, err := New().Generate(nil, exampleSettings(), model.MustDate("2024-01-01"))
	if !errors.Is(err, ErrNoSubjects) || !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error got %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	s := testScheduler()
	a, err := s.Generate(exampleSubjects(), exampleSettings(), model.MustDate("2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Generate(exampleSubjects(), exampleSettings(), model.MustDate("2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("plans differ for identical input")
	}
}

func TestGenerateRandomIDsUnique(t *testing.T) {
	s := New()
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		plan, err := s.Generate(exampleSubjects(), exampleSettings(), model.MustDate("2024-01-01"))
		if err != nil {
			t.Fatal(err)
		}
		for _, sess := range plan.Sessions() {
			if seen[sess.ID] {
				t.Fatalf("duplicate id %s", sess.ID)
			}
			seen[sess.ID] = true
		}
	}
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	subjects := exampleSubjects()
	if _, err := testScheduler().Generate(subjects, exampleSettings(), model.MustDate("2024-01-01")); err != nil {
		t.Fatal(err)
	}
	if subjects[0].ID != "B" || subjects[0].EstimatedHours != 5 {
		t.Fatalf("input modified: %+v", subjects)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[float64]string{
		9:            "09:00",
		11.5:         "11:30",
		9.25:         "09:15",
		13.75:        "13:45",
		10.0 / 3:     "03:20",
		24.5:         "24:30",
		0.999999:     "00:59",
		10.999999999: "10:59",
		11 - 1e-12:   "11:00",
		0:            "00:00",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("%v: got %s want %s", in, got, want)
		}
	}
}

func TestGenerateMidnightStart(t *testing.T) {
	s := &Scheduler{NewID: PositionalIDs}
	plan, err := s.Generate(exampleSubjects(), exampleSettings(), model.MustDate("2024-01-01"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	first := plan.Daily.Sessions[0]
	if first.StartTime != "00:00" || first.EndTime != "02:00" {
		t.Fatalf("expected 00:00-02:00 got %s-%s", first.StartTime, first.EndTime)
	}
	if got := (&Scheduler{DayStart: -1}).StartHour(); got != DefaultDayStart {
		t.Fatalf("expected default start got %v", got)
	}
}

func TestGenerateEndTimeNearWholeHour(t *testing.T) {
	subjects := []model.Subject{{ID: "X", Name: "X", Priority: 1, EstimatedHours: 1.99999999995, Deadline: model.MustDate("2024-01-05")}}
	plan, err := testScheduler().Generate(subjects, exampleSettings(), model.MustDate("2024-01-01"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(plan.Daily.Sessions) != 1 {
		t.Fatalf("expected 1 session got %d", len(plan.Daily.Sessions))
	}
	if s := plan.Daily.Sessions[0]; s.StartTime != "09:00" || s.EndTime != "10:59" {
		t.Fatalf("expected 09:00-10:59 got %s-%s", s.StartTime, s.EndTime)
	}
}
