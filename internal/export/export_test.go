package export

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hirepanel/internal/applicant"
)

var exportDay = time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)

func sampleRecords() []applicant.Application {
	return []applicant.Application{
		{
			ID: "1", CandidateName: `Dana "DK" Scully`, CandidateEmail: "dana@example.com",
			JobTitle: "Backend Engineer, Platform", MatchScore: 87, Status: applicant.StatusShortlisted,
			Timestamp: time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "2", CandidateName: "Fox Mulder", CandidateEmail: "fox@example.com",
			JobTitle: "Data Analyst", MatchScore: 42, Status: applicant.StatusNew,
			Timestamp: time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestCSV_EmptyProducesNoFile(t *testing.T) {
	_, ok := CSV(nil, exportDay, "", time.UTC)
	assert.False(t, ok)
}

func TestCSV_HeaderRowsAndQuoting(t *testing.T) {
	f, ok := CSV(sampleRecords(), exportDay, "", time.UTC)
	require.True(t, ok)
	assert.Equal(t, "applications_export_2025-03-10.csv", f.Name)
	assert.Equal(t, "text/csv;charset=utf-8", f.MIMEType)

	lines := strings.Split(strings.TrimSuffix(string(f.Data), "\n"), "\n")
	require.Len(t, lines, 3, "header plus one row per record")
	assert.Equal(t, `"Candidate Name","Email","Job Title","Applied Date","Match Score","Status"`, lines[0])
	assert.Equal(t, `"Dana ""DK"" Scully","dana@example.com","Backend Engineer, Platform","Feb 14, 2025","87","Shortlisted"`, lines[1])
	assert.Equal(t, `"Fox Mulder","fox@example.com","Data Analyst","Jan 3, 2025","42","New"`, lines[2])
}

func TestCSV_CustomDateFormat(t *testing.T) {
	f, ok := CSV(sampleRecords()[1:], exportDay, "01/02/2006", time.UTC)
	require.True(t, ok)
	assert.Contains(t, string(f.Data), `"01/03/2025"`)
}

func TestCSV_AppliedDateInLocation(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	// 20:00 on Mar 10 in Los Angeles is already Mar 11 in UTC.
	a := applicant.Application{CandidateName: "Dana", Status: applicant.StatusNew,
		Timestamp: time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)}

	assert.Equal(t, "Mar 10, 2025", Row(a, "", la)[3])
	assert.Equal(t, "Mar 11, 2025", Row(a, "", time.UTC)[3])

	f, ok := CSV([]applicant.Application{a}, exportDay, "", la)
	require.True(t, ok)
	assert.Contains(t, string(f.Data), `"Dana","","","Mar 10, 2025","0","New"`)
}

func TestQuoteCSV(t *testing.T) {
	assert.Equal(t, `""`, QuoteCSV(""))
	assert.Equal(t, `""""`, QuoteCSV(`"`))
	assert.Equal(t, `"a,b"`, QuoteCSV("a,b"))
}

func TestXLSX_RowsMatchVisibleSet(t *testing.T) {
	_, ok, err := XLSX(nil, exportDay, "", time.UTC)
	require.NoError(t, err)
	assert.False(t, ok)

	f, ok, err := XLSX(sampleRecords(), exportDay, "", time.UTC)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "applications_export_2025-03-10.xlsx", f.Name)

	wb, err := excelize.OpenReader(bytes.NewReader(f.Data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, `Dana "DK" Scully`, rows[1][0])
	assert.Equal(t, "87", rows[1][4])
	assert.Equal(t, "New", rows[2][5])

	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	late := sampleRecords()[:1]
	late[0].Timestamp = time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)
	f, ok, err = XLSX(late, exportDay, "", la)
	require.NoError(t, err)
	require.True(t, ok)
	wb2, err := excelize.OpenReader(bytes.NewReader(f.Data))
	require.NoError(t, err)
	defer wb2.Close()
	date, err := wb2.GetCellValue(sheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Mar 10, 2025", date)
}

func TestResume_DecodesEmbeddedPayload(t *testing.T) {
	payload := []byte("%PDF-1.4 fake")
	a := sampleRecords()[0]
	a.ResumeFile = &applicant.ResumeFile{
		Name:     "dana.pdf",
		MIMEType: "application/pdf",
		Size:     int64(len(payload)),
		Content:  base64.StdEncoding.EncodeToString(payload),
	}

	f := Resume(a)
	assert.False(t, f.Placeholder)
	assert.Equal(t, "dana.pdf", f.Name)
	assert.Equal(t, "application/pdf", f.MIMEType)
	assert.Equal(t, payload, f.Data)

	a.ResumeFile.Content = "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(payload)
	assert.Equal(t, payload, Resume(a).Data, "data url prefix is stripped")
}

func TestResume_PlaceholderWhenMissingOrMalformed(t *testing.T) {
	a := sampleRecords()[1]

	f := Resume(a)
	assert.True(t, f.Placeholder)
	assert.Equal(t, "Fox_Mulder_Resume_PLACEHOLDER.txt", f.Name)
	assert.Equal(t, "text/plain", f.MIMEType)
	body := string(f.Data)
	assert.True(t, strings.HasPrefix(body, PlaceholderBanner))
	assert.Contains(t, body, "Candidate: Fox Mulder")
	assert.Contains(t, body, "Role: Data Analyst")
	assert.Contains(t, body, "Email: fox@example.com")

	a.ResumeFile = &applicant.ResumeFile{Name: "x.pdf", Content: "%%% not base64"}
	assert.True(t, Resume(a).Placeholder)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "Candidate", safeName("  "))
	assert.Equal(t, "Dana_DK_Scully", safeName(`Dana "DK" Scully`))
	assert.Equal(t, "ab", safeName("a/b"))
}
