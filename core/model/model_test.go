package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-01-06", "2025-01-06", true},
		{"2025-01-06T23:30:00+02:00", "2025-01-06", true},
		{"06/01/2025", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		d, err := ParseDate(c.in)
		if c.ok != (err == nil) {
			t.Fatalf("%q: unexpected error state %v", c.in, err)
		}
		if err != nil && !errors.Is(err, ErrInvalid) {
			t.Fatalf("%q: expected ErrInvalid got %v", c.in, err)
		}
		if d.String() != c.want {
			t.Fatalf("%q: got %q want %q", c.in, d.String(), c.want)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2025, time.February, 27)
	if got := d.AddDays(2).String(); got != "2025-03-01" {
		t.Fatalf("got %s", got)
	}
	if n := d.DaysUntil(d.AddDays(10)); n != 10 {
		t.Fatalf("expected 10 got %d", n)
	}
	if n := d.DaysUntil(d.AddDays(-3)); n != -3 {
		t.Fatalf("expected -3 got %d", n)
	}
	if !d.Before(d.AddDays(1)) || d.After(d.AddDays(1)) {
		t.Fatalf("ordering broken")
	}
}

func TestDateJSON(t *testing.T) {
	var v struct {
		D Date `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"d":"2025-01-06"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"d":"2025-01-06"}` {
		t.Fatalf("got %s", b)
	}
	if err := json.Unmarshal([]byte(`{"d":"soon"}`), &v); err == nil {
		t.Fatal("expected error")
	}
}

func TestSubjectValidate(t *testing.T) {
	ok := Subject{Name: "Maths", Priority: 1, Deadline: MustDate("2025-02-01"), EstimatedHours: 3}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	bad := []Subject{
		{Priority: 1, Deadline: ok.Deadline},
		{Name: "x", Priority: 0, Deadline: ok.Deadline},
		{Name: "x", Priority: 6, Deadline: ok.Deadline},
		{Name: "x", Priority: 2},
		{Name: "x", Priority: 2, Deadline: ok.Deadline, EstimatedHours: -1},
	}
	for i, s := range bad {
		if err := s.Validate(); !errors.Is(err, ErrInvalid) {
			t.Fatalf("case %d: expected ErrInvalid got %v", i, err)
		}
	}
}

func TestSettingsDefaults(t *testing.T) {
	s := Settings{BreakDuration: 0}.WithDefaults()
	if s.AvailableHours != 4 || s.MaxSessionDuration != 2 || s.BreakDuration != 0 {
		t.Fatalf("unexpected %+v", s)
	}
	s = Settings{AvailableHours: 6, MaxSessionDuration: 1, BreakDuration: -1}.WithDefaults()
	if s.AvailableHours != 6 || s.MaxSessionDuration != 1 || s.BreakDuration != 0.5 {
		t.Fatalf("unexpected %+v", s)
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(9); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	cases := []Settings{
		{AvailableHours: 0, MaxSessionDuration: 1},
		{AvailableHours: 2, MaxSessionDuration: 0},
		{AvailableHours: 2, MaxSessionDuration: 1, BreakDuration: -0.5},
		{AvailableHours: 16, MaxSessionDuration: 2},
	}
	for i, s := range cases {
		if err := s.Validate(9); !errors.Is(err, ErrInvalid) {
			t.Fatalf("case %d: expected ErrInvalid got %v", i, err)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	task := Task{Title: "Quiz", Type: TaskTest, DueDate: MustDate("2025-01-10")}
	if err := task.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	task.Type = "exam"
	if err := task.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid got %v", err)
	}
}

func TestPlanHelpers(t *testing.T) {
	p := Plan{Weekly: []DaySchedule{
		{Sessions: []Session{{ID: "a", Duration: 2}, {ID: "b", Duration: 1}}, TotalHours: 3},
		{Sessions: []Session{{ID: "c", Duration: 0.5, Day: 1}}, TotalHours: 0.5},
	}}
	if n := len(p.Sessions()); n != 3 {
		t.Fatalf("expected 3 sessions got %d", n)
	}
	if p.TotalHours() != 3.5 {
		t.Fatalf("expected 3.5 got %v", p.TotalHours())
	}
	if l := p.Weekly[1].Sessions[0].Label(); l != "1-0" {
		t.Fatalf("label %s", l)
	}
	prog := Progress{"a": {Completed: true}}
	if !prog.Completed("a") || prog.Completed("c") {
		t.Fatal("progress lookup broken")
	}
}
