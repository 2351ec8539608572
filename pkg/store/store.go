// Package store provides persistence for computed chart reports.
//
// A report is a saved pipeline result: the subjects, their charts, the
// detected aspects, and the resolved layout, under a display ID the
// caller can hand out. The engine itself never persists anything;
// reports exist so the HTTP API and CLI can return to a computation
// without re-running it.
//
// Two backends are provided:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// Display IDs are UUIDs generated with [NewID] by the application layer
// and injected into the report. The store validates them but never
// generates them on its own, so report creation stays deterministic
// under test.
//
// # Usage
//
//	st := store.NewMemoryStore()
//	report := store.NewReport(store.NewID(), result)
//	if err := st.Put(ctx, report); err != nil {
//	    return err
//	}
//	saved, err := st.Get(ctx, report.ID)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/siderealab/orrery/pkg/aspect"
	"github.com/siderealab/orrery/pkg/chart"
	"github.com/siderealab/orrery/pkg/errors"
	"github.com/siderealab/orrery/pkg/layout"
	"github.com/siderealab/orrery/pkg/pipeline"
)

// Report kinds.
const (
	KindNatal    = "natal"
	KindSynastry = "synastry"
)

// Report is a saved pipeline result.
type Report struct {
	ID        string    `json:"id" bson:"id"`
	Kind      string    `json:"kind" bson:"kind"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	Subjects []chart.Subject `json:"subjects" bson:"subjects"`
	Charts   []*chart.Chart  `json:"charts" bson:"charts"`
	Aspects  []aspect.Record `json:"aspects" bson:"aspects"`
	Layout   []layout.Entry  `json:"layout" bson:"layout"`
}

// Summary is the listing view of a report: enough to identify it without
// loading the full document.
type Summary struct {
	ID        string    `json:"id" bson:"id"`
	Kind      string    `json:"kind" bson:"kind"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Names     []string  `json:"names" bson:"names"`
}

// Summarize returns the listing view of the report.
func (r *Report) Summarize() Summary {
	names := make([]string, 0, len(r.Subjects))
	for _, s := range r.Subjects {
		names = append(names, s.Name)
	}
	return Summary{
		ID:        r.ID,
		Kind:      r.Kind,
		CreatedAt: r.CreatedAt,
		Names:     names,
	}
}

// Validate checks that the report carries a well-formed UUID and a known
// kind.
func (r *Report) Validate() error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "report id %q is not a UUID", r.ID)
	}
	if r.Kind != KindNatal && r.Kind != KindSynastry {
		return errors.New(errors.ErrCodeInvalidInput, "unknown report kind %q", r.Kind)
	}
	return nil
}

// NewID generates a fresh report display ID.
func NewID() string {
	return uuid.NewString()
}

// NewReport assembles a report from a pipeline result under the given
// display ID. The creation time is stamped here.
func NewReport(id string, result *pipeline.Result) *Report {
	kind := KindNatal
	if len(result.Charts) == 2 {
		kind = KindSynastry
	}
	subjects := make([]chart.Subject, 0, len(result.Charts))
	for _, c := range result.Charts {
		subjects = append(subjects, c.Subject)
	}
	return &Report{
		ID:        id,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		Subjects:  subjects,
		Charts:    result.Charts,
		Aspects:   result.Aspects,
		Layout:    result.Layout,
	}
}

// Store is the interface for report storage backends.
type Store interface {
	// Get retrieves a report by display ID.
	// A missing report fails with REPORT_NOT_FOUND.
	Get(ctx context.Context, id string) (*Report, error)

	// Put stores a report, replacing any existing report with the same ID.
	Put(ctx context.Context, report *Report) error

	// List returns report summaries, newest first, up to limit.
	// A non-positive limit returns everything.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a report. Deleting a missing report fails with
	// REPORT_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
