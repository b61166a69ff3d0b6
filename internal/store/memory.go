package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"hirepanel/internal/applicant"
)

// Memory is an in-process Store. It backs demos and tests.
type Memory struct {
	mu      sync.RWMutex
	records map[string]applicant.Application
	link    MeetingLinker
	// FailNext, when set, is returned by the next UpdateStatus call.
	FailNext error
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)

// NewMemory returns an empty store using link for meeting rooms.
func NewMemory(link MeetingLinker) *Memory {
	if link == nil {
		link = NewMeetingLinker("")
	}
	return &Memory{records: make(map[string]applicant.Application), link: link}
}

// List implements Store.
func (m *Memory) List(ctx context.Context) ([]applicant.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]applicant.Application, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sortNewestFirst(out)
	return out, nil
}

// UpdateStatus implements Store.
func (m *Memory) UpdateStatus(ctx context.Context, id string, status applicant.Status, interviewAt *time.Time) (applicant.Application, error) {
	if err := ctx.Err(); err != nil {
		return applicant.Application{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailNext; err != nil {
		m.FailNext = nil
		return applicant.Application{}, err
	}
	rec, ok := m.records[id]
	if !ok {
		return applicant.Application{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	rec, err := Apply(rec, status, interviewAt, m.link)
	if err != nil {
		return applicant.Application{}, err
	}
	m.records[id] = rec
	return rec, nil
}

// Insert implements Store.
func (m *Memory) Insert(ctx context.Context, records ...applicant.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		if r.ID == "" {
			r.ID = NewID()
		}
		m.records[r.ID] = r
	}
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

// sortNewestFirst orders by timestamp descending, id ascending on ties.
func sortNewestFirst(records []applicant.Application) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Timestamp.After(records[j].Timestamp)
		}
		return records[i].ID < records[j].ID
	})
}
