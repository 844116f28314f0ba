package prescription

import "errors"

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrNoPrescriptionsFound = errors.New("no prescriptions found")
	ErrUnknownPatient       = errors.New("prescription references an unknown patient")
	ErrUnknownDrug          = errors.New("prescription references an unknown drug")
	ErrUnknownDoctor        = errors.New("prescription references an unknown doctor")
)
