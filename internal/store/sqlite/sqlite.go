// Package sqlite persists applications in a local SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"hirepanel/internal/applicant"
	"hirepanel/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS applications (
	id              TEXT PRIMARY KEY,
	candidate_name  TEXT NOT NULL,
	candidate_email TEXT NOT NULL DEFAULT '',
	job_id          TEXT NOT NULL DEFAULT '',
	job_title       TEXT NOT NULL DEFAULT '',
	match_score     INTEGER NOT NULL DEFAULT 0,
	status          TEXT NOT NULL,
	created_at      INTEGER NOT NULL,
	interview_at    INTEGER,
	meeting_link    TEXT NOT NULL DEFAULT '',
	resume_name     TEXT,
	resume_type     TEXT,
	resume_size     INTEGER,
	resume_data     TEXT
);
CREATE INDEX IF NOT EXISTS idx_applications_created_at ON applications(created_at DESC);
`

const columns = `id, candidate_name, candidate_email, job_id, job_title, match_score,
	status, created_at, interview_at, meeting_link,
	resume_name, resume_type, resume_size, resume_data`

// Store is a store.Store backed by SQLite.
type Store struct {
	db   *sql.DB
	link store.MeetingLinker
}

// Ensure Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string, link store.MeetingLinker) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	if link == nil {
		link = store.NewMeetingLinker("")
	}
	return &Store{db: db, link: link}, nil
}

// List implements store.Store.
func (s *Store) List(ctx context.Context) ([]applicant.Application, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+columns+` FROM applications ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []applicant.Application
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatus implements store.Store.
func (s *Store) UpdateStatus(ctx context.Context, id string, status applicant.Status, interviewAt *time.Time) (applicant.Application, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return applicant.Application{}, err
	}
	defer tx.Rollback()

	cur, err := scan(tx.QueryRowContext(ctx, `SELECT `+columns+` FROM applications WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return applicant.Application{}, fmt.Errorf("update %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return applicant.Application{}, err
	}

	next, err := store.Apply(cur, status, interviewAt, s.link)
	if err != nil {
		return applicant.Application{}, err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE applications SET status = ?, interview_at = ?, meeting_link = ? WHERE id = ?`,
		string(next.Status), unixOrNil(next.InterviewDate), next.MeetingLink, id)
	if err != nil {
		return applicant.Application{}, fmt.Errorf("update %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return applicant.Application{}, err
	}
	return next, nil
}

// Insert implements store.Store. Existing ids are replaced.
func (s *Store) Insert(ctx context.Context, records ...applicant.Application) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO applications (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range records {
		if a.ID == "" {
			a.ID = store.NewID()
		}
		var rName, rType, rData sql.NullString
		var rSize sql.NullInt64
		if f := a.ResumeFile; f != nil {
			rName = sql.NullString{String: f.Name, Valid: true}
			rType = sql.NullString{String: f.MIMEType, Valid: true}
			rSize = sql.NullInt64{Int64: f.Size, Valid: true}
			rData = sql.NullString{String: f.Content, Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			a.ID, a.CandidateName, a.CandidateEmail, a.JobID, a.JobTitle, a.MatchScore,
			string(a.Status), a.Timestamp.UnixMilli(), unixOrNil(a.InterviewDate), a.MeetingLink,
			rName, rType, rSize, rData)
		if err != nil {
			return fmt.Errorf("insert %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

// Close implements store.Store.
func (s *Store) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (applicant.Application, error) {
	var (
		a                   applicant.Application
		status              string
		created             int64
		interview, rSize    sql.NullInt64
		rName, rType, rData sql.NullString
	)
	err := row.Scan(&a.ID, &a.CandidateName, &a.CandidateEmail, &a.JobID, &a.JobTitle, &a.MatchScore,
		&status, &created, &interview, &a.MeetingLink,
		&rName, &rType, &rSize, &rData)
	if err != nil {
		return a, err
	}
	a.Status = applicant.Status(status)
	a.Timestamp = time.UnixMilli(created).UTC()
	if interview.Valid {
		at := time.UnixMilli(interview.Int64).UTC()
		a.InterviewDate = &at
	}
	if rName.Valid {
		a.ResumeFile = &applicant.ResumeFile{
			Name:     rName.String,
			MIMEType: rType.String,
			Size:     rSize.Int64,
			Content:  rData.String,
		}
	}
	return a, nil
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}
