package patient

import "context"

// Repository is the read-only access to replicated patient data.
type Repository interface {
	// GetByID retrieves a non-deleted patient. Returns ErrPatientNotFound
	// if the id is absent or the row is soft-deleted.
	GetByID(ctx context.Context, id int) (*PatientInfo, error)

	// GetImage retrieves a patient photo by image id.
	GetImage(ctx context.Context, imageID int) (*Image, error)
}
