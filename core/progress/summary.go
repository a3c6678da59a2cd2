package progress

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/studyplan/core/model"
)

// SubjectStat aggregates the sessions of one subject within a plan.
type SubjectStat struct {
	SubjectID         string  `json:"subject_id"`
	SubjectName       string  `json:"subject_name"`
	Priority          int     `json:"priority"`
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	TotalHours        float64 `json:"total_hours"`
	CompletedHours    float64 `json:"completed_hours"`
}

// Summary describes how far a plan has been worked through.
type Summary struct {
	TotalSessions     int             `json:"total_sessions"`
	CompletedSessions int             `json:"completed_sessions"`
	TotalHours        float64         `json:"total_hours"`
	CompletedHours    float64         `json:"completed_hours"`
	CompletionRate    int             `json:"completion_rate"`
	Subjects          []SubjectStat   `json:"subjects"`
	Remaining         []model.Session `json:"remaining"`
	MeanDailyHours    float64         `json:"mean_daily_hours"`
	StdDevDailyHours  float64         `json:"stddev_daily_hours"`
}

// Summarize computes the completion summary of plan. A nil plan yields an
// empty summary.
func Summarize(plan *model.Plan, progress model.Progress) Summary {
	sum := Summary{Subjects: []SubjectStat{}, Remaining: []model.Session{}}
	if plan == nil {
		return sum
	}

	index := make(map[string]int)
	daily := make([]float64, 0, len(plan.Weekly))
	for _, day := range plan.Weekly {
		daily = append(daily, day.TotalHours)
		for _, s := range day.Sessions {
			i, ok := index[s.SubjectID]
			if !ok {
				i = len(sum.Subjects)
				index[s.SubjectID] = i
				sum.Subjects = append(sum.Subjects, SubjectStat{
					SubjectID:   s.SubjectID,
					SubjectName: s.SubjectName,
					Priority:    s.Priority,
				})
			}
			st := &sum.Subjects[i]
			st.TotalSessions++
			st.TotalHours += s.Duration
			sum.TotalSessions++
			sum.TotalHours += s.Duration

			if progress.Completed(s.ID) {
				st.CompletedSessions++
				st.CompletedHours += s.Duration
				sum.CompletedSessions++
				sum.CompletedHours += s.Duration
			} else {
				sum.Remaining = append(sum.Remaining, s)
			}
		}
	}
	if sum.TotalSessions > 0 {
		sum.CompletionRate = int(math.Round(float64(sum.CompletedSessions) / float64(sum.TotalSessions) * 100))
	}
	sum.MeanDailyHours, sum.StdDevDailyHours = dailyLoad(daily)
	return sum
}

func dailyLoad(hours []float64) (mean, std float64) {
	switch len(hours) {
	case 0:
		return 0, 0
	case 1:
		return floats.Sum(hours), 0
	}
	return stat.MeanStdDev(hours, nil)
}
