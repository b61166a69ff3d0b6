package ui

import (
	"log/slog"
	"time"

	"hirepanel/internal/activity"
	"hirepanel/internal/download"
	"hirepanel/internal/export"
	"hirepanel/internal/logging"
	"hirepanel/internal/store"
)

// AppContext carries the collaborators the UI talks to. Nothing in the UI
// reaches for globals; the binary builds one of these and hands it over.
type AppContext struct {
	Store           store.Store
	Activity        *activity.Log
	Downloads       *download.Store
	Logger          *slog.Logger
	Now             func() time.Time
	Location        *time.Location
	DateFormat      string
	UpdateTimeout   time.Duration
	RefreshInterval time.Duration
	ShortlistedOnly bool
}

// withDefaults fills unset fields so a partially built context still works.
func (c AppContext) withDefaults() AppContext {
	if c.Activity == nil {
		c.Activity = activity.NewLog(activity.DefaultCapacity)
	}
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.DateFormat == "" {
		c.DateFormat = export.DefaultDateFormat
	}
	if c.UpdateTimeout <= 0 {
		c.UpdateTimeout = 10 * time.Second
	}
	return c
}
