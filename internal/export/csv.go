// Package export renders interview sessions as CSV for offline analysis.
package export

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/jonathan/interview-prep/internal/db"
)

// listSeparator joins multi-valued columns inside a single CSV cell.
const listSeparator = " | "

var header = []string{
	"InterviewID",
	"UserID",
	"Email",
	"JobRole",
	"Industry",
	"Experience",
	"Mode",
	"Status",
	"CreatedAt",
	"Questions",
	"Answers",
	"Feedback",
	"IdealAnswers",
	"OverallFeedback",
}

// WriteCSV writes the sessions to w as CSV, one row per session, preceded by
// a header row. Cells containing commas, quotes or newlines are quoted per
// RFC 4180, which encoding/csv handles.
func WriteCSV(w io.Writer, sessions []db.InterviewSession) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range sessions {
		if err := cw.Write(row(&sessions[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(s *db.InterviewSession) []string {
	return []string{
		s.ID.String(),
		s.AccountID,
		s.Email,
		s.JobRole,
		s.Industry,
		s.Experience,
		string(s.Mode),
		string(s.Status),
		s.CreatedAt.UTC().Format(time.RFC3339),
		strings.Join(s.Questions, listSeparator),
		strings.Join(s.Answers, listSeparator),
		strings.Join(s.Feedback, listSeparator),
		strings.Join(s.IdealAnswers, listSeparator),
		s.OverallFeedback,
	}
}
