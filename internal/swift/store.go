package swift

import (
	"context"
	"errors"
)

// Store errors. Implementations must return these sentinels (possibly
// wrapped) so the service can classify failures without knowing the backend.
var (
	ErrNotFound  = errors.New("swift record not found")
	ErrDuplicate = errors.New("swift code already exists")
)

// Store is the narrow persistence interface consumed by the resolution
// service and the ingestion loader. Implementations provide their own
// concurrency control; Insert's uniqueness check is the final authority when
// two writers race on the same code.
type Store interface {
	// GetByCode returns the record keyed by code, or ErrNotFound.
	GetByCode(ctx context.Context, code string) (*Record, error)

	// GetByCountry returns all records with the given ISO2 country code, in
	// store order. An empty slice is not an error.
	GetByCountry(ctx context.Context, countryISO2 string) ([]Record, error)

	// GetBranches returns non-headquarters records whose code starts with
	// prefix.
	GetBranches(ctx context.Context, prefix string) ([]Record, error)

	// Exists reports whether a record with the given code is present.
	Exists(ctx context.Context, code string) (bool, error)

	// UpsertBatch applies records keyed by swift code, creating or
	// overwriting. The batch is unordered and best-effort; it is not atomic
	// across records.
	UpsertBatch(ctx context.Context, records []Record) error

	// Insert adds a single record, returning ErrDuplicate if the code is
	// already present.
	Insert(ctx context.Context, record Record) error

	// Delete removes the record keyed by code, returning ErrNotFound if
	// absent.
	Delete(ctx context.Context, code string) error
}
