package repository

import (
	"context"

	"github.com/asthmacare/clinic-api/internal/model"
)

// RowStore is the raw tabular contract against the backing spreadsheet.
// Every tab's first row is its header. Key lookups are exact string
// equality on column 0; callers normalize keys before calling. Writes are
// not transactional and are never retried here.
type RowStore interface {
	// GetRows returns all rows of a tab including the header row.
	GetRows(ctx context.Context, tab string) ([][]string, error)
	// AppendRow appends one row after the last non-empty row.
	AppendRow(ctx context.Context, tab string, values []string) error
	// UpdateCell overwrites a single cell on the row whose first column
	// equals key.
	UpdateCell(ctx context.Context, tab, key string, columnOffset int, value string) error
	// UpdateRow overwrites the whole row whose first column equals key.
	UpdateRow(ctx context.Context, tab, key string, values []string) error
	// DeleteRow removes the row whose first column equals key and shifts
	// the rows below it up. The header row is protected.
	DeleteRow(ctx context.Context, tab, key string) error
}

type PatientRepository interface {
	List(ctx context.Context) ([]model.Patient, error)
	// GetByHN matches leniently: leading zeros and surrounding whitespace
	// are ignored.
	GetByHN(ctx context.Context, hn string) (*model.Patient, error)
	// GetByToken matches the public token exactly.
	GetByToken(ctx context.Context, token string) (*model.Patient, error)
	Create(ctx context.Context, patient *model.Patient) error
	UpdateStatus(ctx context.Context, hn string, status model.PatientStatus) error
	Delete(ctx context.Context, hn string) error
}

// VisitRepository is append-only: visits are history, never edited.
type VisitRepository interface {
	ListByHN(ctx context.Context, hn string) ([]model.Visit, error)
	Create(ctx context.Context, visit *model.Visit) error
}

// TechniqueRepository is append-only, like visits.
type TechniqueRepository interface {
	ListByHN(ctx context.Context, hn string) ([]model.TechniqueCheck, error)
	Create(ctx context.Context, check *model.TechniqueCheck) error
}

// IntentRepository tracks multi-row writes in flight so partial failures
// stay detectable.
type IntentRepository interface {
	Create(ctx context.Context, intent *model.WriteIntent) error
	MarkCommitted(ctx context.Context, id string) error
	ListPending(ctx context.Context) ([]model.WriteIntent, error)
}
