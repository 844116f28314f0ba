package prescription

import "context"

type Repository interface {
	// Create inserts a new prescription with status current.
	Create(ctx context.Context, p *Prescription) error

	// GetByID retrieves a non-deleted prescription. Returns
	// ErrPrescriptionNotFound if the id is absent or the row is soft-deleted.
	GetByID(ctx context.Context, id int) (*Prescription, error)

	// Update persists the mutable fields of an existing prescription.
	// Status and the deleted flag are left untouched.
	Update(ctx context.Context, p *Prescription) error

	// SoftDelete flips the deleted flag.
	SoftDelete(ctx context.Context, id int) error

	// ToggleStatus flips the status between current and historic in a
	// single atomic statement. Callers re-fetch for the refreshed row.
	ToggleStatus(ctx context.Context, id int) error

	// List returns all non-deleted prescriptions ordered by assignment date.
	List(ctx context.Context) ([]*Prescription, error)

	// ListByPatient returns the patient's non-deleted prescriptions ordered
	// by assignment date.
	ListByPatient(ctx context.Context, patientID int) ([]*Prescription, error)
}
