package progress

import (
	"fmt"
	"sort"

	"github.com/kilianp07/studyplan/core/model"
)

// DefaultUpcomingLimit is the number of deadlines listed on the dashboard.
const DefaultUpcomingLimit = 6

// KindSubject marks a deadline coming from a subject rather than a task.
const KindSubject = "subject"

// Deadline is a dated entry on the upcoming list.
type Deadline struct {
	Kind     string     `json:"kind"`
	RefID    string     `json:"ref_id"`
	Label    string     `json:"label"`
	Date     model.Date `json:"date"`
	Priority int        `json:"priority"`
}

// Upcoming lists subject deadlines and open task due dates falling on or
// after today, earliest first, then by priority. Tests rank as priority 1,
// other tasks as 3. limit <= 0 selects DefaultUpcomingLimit.
func Upcoming(subjects []model.Subject, tasks []model.Task, today model.Date, limit int) []Deadline {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	out := []Deadline{}
	for _, s := range subjects {
		if s.Deadline.IsZero() || s.Deadline.Before(today) {
			continue
		}
		p := s.Priority
		if p <= 0 {
			p = defaultPriority
		}
		out = append(out, Deadline{Kind: KindSubject, RefID: s.ID, Label: s.Name, Date: s.Deadline, Priority: p})
	}
	for _, t := range tasks {
		if t.Completed || t.DueDate.Before(today) {
			continue
		}
		p := defaultPriority
		if t.Type == model.TaskTest {
			p = 1
		}
		out = append(out, Deadline{Kind: string(t.Type), RefID: t.ID, Label: t.Title, Date: t.DueDate, Priority: p})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Priority < out[j].Priority
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Reminder counts open tasks that need attention.
type Reminder struct {
	Overdue  int    `json:"overdue"`
	DueToday int    `json:"due_today"`
	Message  string `json:"message,omitempty"`
}

// Remind counts incomplete tasks past due or due today.
func Remind(tasks []model.Task, today model.Date) Reminder {
	var r Reminder
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		switch {
		case t.DueDate.Before(today):
			r.Overdue++
		case t.DueDate.Equal(today):
			r.DueToday++
		}
	}
	switch {
	case r.Overdue > 0:
		r.Message = fmt.Sprintf("You have %d overdue task%s. Try to clear one today.", r.Overdue, plural(r.Overdue))
	case r.DueToday > 0:
		r.Message = fmt.Sprintf("You have %d task%s due today. Plan time for them.", r.DueToday, plural(r.DueToday))
	}
	return r
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
