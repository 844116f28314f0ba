package domain

import (
	"context"

	"github.com/ehospital/medications/internal/domain/doctor"
	"github.com/ehospital/medications/internal/domain/drug"
	"github.com/ehospital/medications/internal/domain/patient"
	"github.com/ehospital/medications/internal/domain/prescription"
)

// UnitOfWork aggregates the repositories sharing one persistence session.
// InTx yields a UnitOfWork bound to a single transaction, giving every
// mutating service call one commit boundary.
type UnitOfWork interface {
	Drugs() drug.Repository
	Prescriptions() prescription.Repository
	Patients() patient.Repository
	Doctors() doctor.Directory

	// InTx runs fn against a transaction-scoped UnitOfWork. The transaction
	// commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx UnitOfWork) error) error
}
