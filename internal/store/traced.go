package store

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"hirepanel/internal/applicant"
)

// Traced wraps a Store so every call is recorded as a span.
type Traced struct {
	next   Store
	tracer oteltrace.Tracer
}

// Ensure Traced implements Store.
var _ Store = (*Traced)(nil)

// WithTracing wraps next with spans from tracer.
func WithTracing(next Store, tracer oteltrace.Tracer) *Traced {
	return &Traced{next: next, tracer: tracer}
}

// List implements Store.
func (t *Traced) List(ctx context.Context) ([]applicant.Application, error) {
	ctx, span := t.tracer.Start(ctx, "store.List")
	defer span.End()
	records, err := t.next.List(ctx)
	span.SetAttributes(attribute.Int("applications.count", len(records)))
	recordErr(span, err)
	return records, err
}

// UpdateStatus implements Store.
func (t *Traced) UpdateStatus(ctx context.Context, id string, status applicant.Status, interviewAt *time.Time) (applicant.Application, error) {
	ctx, span := t.tracer.Start(ctx, "store.UpdateStatus", oteltrace.WithAttributes(
		attribute.String("application.id", id),
		attribute.String("application.status", string(status)),
	))
	defer span.End()
	if interviewAt != nil {
		span.SetAttributes(attribute.String("interview.at", interviewAt.Format(time.RFC3339)))
	}
	rec, err := t.next.UpdateStatus(ctx, id, status, interviewAt)
	recordErr(span, err)
	return rec, err
}

// Insert implements Store.
func (t *Traced) Insert(ctx context.Context, records ...applicant.Application) error {
	ctx, span := t.tracer.Start(ctx, "store.Insert", oteltrace.WithAttributes(
		attribute.Int("applications.count", len(records)),
	))
	defer span.End()
	err := t.next.Insert(ctx, records...)
	recordErr(span, err)
	return err
}

// Close implements Store.
func (t *Traced) Close() error { return t.next.Close() }

func recordErr(span oteltrace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
