// Package export writes study plans in file formats suited to spreadsheets
// and other tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/studyplan/core/model"
)

// Formats accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var csvHeader = []string{"date", "session_id", "subject_id", "subject", "start", "end", "duration", "priority", "topics"}

// Write dispatches to WriteJSON or WriteCSV by format name.
func Write(w io.Writer, format string, plan model.Plan) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		return WriteJSON(w, plan)
	case FormatCSV:
		return WriteCSV(w, plan)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// WriteJSON writes the plan to w in JSON format.
func WriteJSON(w io.Writer, plan model.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// WriteCSV writes one row per weekly session. Topics are joined with ";".
func WriteCSV(w io.Writer, plan model.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, day := range plan.Weekly {
		for _, s := range day.Sessions {
			rec := []string{
				day.Date.String(),
				s.ID,
				s.SubjectID,
				s.SubjectName,
				s.StartTime,
				s.EndTime,
				strconv.FormatFloat(s.Duration, 'f', -1, 64),
				strconv.Itoa(s.Priority),
				strings.Join(s.Topics, ";"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
