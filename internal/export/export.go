// Package export produces downloadable files from application records:
// CSV and XLSX exports of the visible set, and resume downloads.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hirepanel/internal/applicant"
)

// DefaultDateFormat renders applied dates in exports and the UI.
const DefaultDateFormat = "Jan 2, 2006"

// File is a produced download.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
	// Placeholder marks generated stand-ins for missing uploads.
	Placeholder bool
}

// Header is the fixed export column order.
var Header = []string{"Candidate Name", "Email", "Job Title", "Applied Date", "Match Score", "Status"}

// Row returns the export fields of a in Header order. The applied date is
// the calendar day in loc, or in the local zone when loc is nil.
func Row(a applicant.Application, dateFormat string, loc *time.Location) []string {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	if loc == nil {
		loc = time.Local
	}
	return []string{
		a.CandidateName,
		a.CandidateEmail,
		a.JobTitle,
		a.Timestamp.In(loc).Format(dateFormat),
		strconv.Itoa(a.MatchScore),
		string(a.Status),
	}
}

// FileName returns the export file name for the day of now.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("applications_export_%s.%s", now.Format(time.DateOnly), ext)
}

// CSV serializes records with a header row. Every field is quoted and
// embedded quotes are doubled. ok is false, and no file is produced, when
// records is empty.
func CSV(records []applicant.Application, now time.Time, dateFormat string, loc *time.Location) (File, bool) {
	if len(records) == 0 {
		return File{}, false
	}
	var buf bytes.Buffer
	writeCSVLine(&buf, Header)
	for _, a := range records {
		writeCSVLine(&buf, Row(a, dateFormat, loc))
	}
	return File{
		Name:     FileName(now, "csv"),
		MIMEType: "text/csv;charset=utf-8",
		Data:     buf.Bytes(),
	}, true
}

func writeCSVLine(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(QuoteCSV(f))
	}
	buf.WriteByte('\n')
}

// QuoteCSV wraps s in double quotes, doubling any it contains.
func QuoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
