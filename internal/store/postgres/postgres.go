// Package postgres persists applications in PostgreSQL through gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"hirepanel/internal/applicant"
	"hirepanel/internal/store"
)

// Application is the gorm row for an application.
type Application struct {
	ID             string `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CandidateName  string `gorm:"not null"`
	CandidateEmail string
	JobID          string `gorm:"index"`
	JobTitle       string
	MatchScore     int
	Status         string `gorm:"index;not null;default:'New'"`
	InterviewAt    *time.Time
	MeetingLink    string
	ResumeName     *string
	ResumeType     *string
	ResumeSize     *int64
	ResumeData     *string `gorm:"type:text"`
}

// TableName pins the table name regardless of naming strategy.
func (Application) TableName() string { return "applications" }

// Store is a store.Store backed by PostgreSQL.
type Store struct {
	db   *gorm.DB
	link store.MeetingLinker
}

// Ensure Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Open connects to dsn and migrates the schema.
func Open(dsn string, link store.MeetingLinker) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres: empty DATABASE_URL")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return New(db, link)
}

// New wraps an open gorm connection and migrates the schema.
func New(db *gorm.DB, link store.MeetingLinker) (*Store, error) {
	if err := db.AutoMigrate(&Application{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if link == nil {
		link = store.NewMeetingLinker("")
	}
	return &Store{db: db, link: link}, nil
}

// List implements store.Store.
func (s *Store) List(ctx context.Context) ([]applicant.Application, error) {
	var rows []Application
	if err := s.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	out := make([]applicant.Application, len(rows))
	for i, r := range rows {
		out[i] = fromModel(r)
	}
	return out, nil
}

// UpdateStatus implements store.Store.
func (s *Store) UpdateStatus(ctx context.Context, id string, status applicant.Status, interviewAt *time.Time) (applicant.Application, error) {
	var next applicant.Application
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row Application
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("update %s: %w", id, store.ErrNotFound)
		}
		if err != nil {
			return err
		}
		next, err = store.Apply(fromModel(row), status, interviewAt, s.link)
		if err != nil {
			return err
		}
		return tx.Model(&row).Select("status", "interview_at", "meeting_link").Updates(map[string]any{
			"status":       string(next.Status),
			"interview_at": next.InterviewDate,
			"meeting_link": next.MeetingLink,
		}).Error
	})
	if err != nil {
		return applicant.Application{}, err
	}
	return next, nil
}

// Insert implements store.Store. Existing ids are replaced.
func (s *Store) Insert(ctx context.Context, records ...applicant.Application) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]Application, len(records))
	for i, a := range records {
		if a.ID == "" {
			a.ID = store.NewID()
		}
		rows[i] = toModel(a)
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
}

// Close implements store.Store.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toModel(a applicant.Application) Application {
	m := Application{
		ID:             a.ID,
		CreatedAt:      a.Timestamp,
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		JobID:          a.JobID,
		JobTitle:       a.JobTitle,
		MatchScore:     a.MatchScore,
		Status:         string(a.Status),
		InterviewAt:    a.InterviewDate,
		MeetingLink:    a.MeetingLink,
	}
	if f := a.ResumeFile; f != nil {
		name, typ, size, data := f.Name, f.MIMEType, f.Size, f.Content
		m.ResumeName, m.ResumeType, m.ResumeSize, m.ResumeData = &name, &typ, &size, &data
	}
	return m
}

func fromModel(m Application) applicant.Application {
	a := applicant.Application{
		ID:             m.ID,
		CandidateName:  m.CandidateName,
		CandidateEmail: m.CandidateEmail,
		JobID:          m.JobID,
		JobTitle:       m.JobTitle,
		MatchScore:     m.MatchScore,
		Status:         applicant.Status(m.Status),
		Timestamp:      m.CreatedAt.UTC(),
		MeetingLink:    m.MeetingLink,
	}
	if m.InterviewAt != nil {
		at := m.InterviewAt.UTC()
		a.InterviewDate = &at
	}
	if m.ResumeName != nil {
		f := &applicant.ResumeFile{Name: *m.ResumeName}
		if m.ResumeType != nil {
			f.MIMEType = *m.ResumeType
		}
		if m.ResumeSize != nil {
			f.Size = *m.ResumeSize
		}
		if m.ResumeData != nil {
			f.Content = *m.ResumeData
		}
		a.ResumeFile = f
	}
	return a
}
