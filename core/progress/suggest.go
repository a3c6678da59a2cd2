package progress

import (
	"math"
	"sort"

	"github.com/kilianp07/studyplan/core/model"
)

// defaultPriority stands in for subjects and tasks without a usable priority.
const defaultPriority = 3

// Suggestion is the subject recommended for the next study block.
type Suggestion struct {
	Subject        model.Subject `json:"subject"`
	Score          float64       `json:"score"`
	DaysToDeadline int           `json:"days_to_deadline"`
}

// Score ranks a subject for focus. Higher priority, more hours and a closer
// deadline all raise it; the deadline is at least one day away.
func Score(s model.Subject, today model.Date) (score float64, days int) {
	p := s.Priority
	if p <= 0 {
		p = defaultPriority
	}
	days = today.DaysUntil(s.Deadline)
	if days < 1 {
		days = 1
	}
	hours := math.Max(0, s.EstimatedHours)
	score = float64(6-p)*2 + math.Min(4, hours/2) + 10/float64(days)
	return score, days
}

// Suggest returns the highest scoring subject. Ties keep input order.
func Suggest(subjects []model.Subject, today model.Date) (Suggestion, bool) {
	if len(subjects) == 0 {
		return Suggestion{}, false
	}
	scored := make([]Suggestion, len(subjects))
	for i, s := range subjects {
		score, days := Score(s, today)
		scored[i] = Suggestion{Subject: s, Score: score, DaysToDeadline: days}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored[0], true
}
