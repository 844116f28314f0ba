package drug

import "context"

type Repository interface {
	// Create inserts a new drug. Returns ErrDrugAlreadyExists when the
	// composite unique index rejects the row at commit time.
	Create(ctx context.Context, d *Drug) error

	// GetByID retrieves a non-deleted drug. Returns ErrDrugNotFound if the
	// id is absent or the row is soft-deleted.
	GetByID(ctx context.Context, id int) (*Drug, error)

	// GetAny retrieves a drug regardless of its deleted flag. Used by
	// read projections that must resolve drugs referenced by historic
	// prescriptions.
	GetAny(ctx context.Context, id int) (*Drug, error)

	// FindByComposition searches by the unique tuple, soft-deleted rows
	// included. Returns ErrDrugNotFound when no row matches.
	FindByComposition(ctx context.Context, name, typ string, dose float64, doseUnit string) (*Drug, error)

	// Update persists all mutable fields of an existing drug.
	Update(ctx context.Context, d *Drug) error

	// SoftDelete flips the deleted flag. Rows are never removed physically.
	SoftDelete(ctx context.Context, id int) error

	// List returns all non-deleted drugs ordered by name ascending.
	List(ctx context.Context) ([]*Drug, error)

	// ListByName returns non-deleted drugs whose name starts with the given
	// prefix, case-insensitively, ordered by name ascending.
	ListByName(ctx context.Context, namePrefix string) ([]*Drug, error)
}
