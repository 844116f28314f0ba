package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ehospital/medications/internal/domain"
	"github.com/ehospital/medications/internal/domain/doctor"
	"github.com/ehospital/medications/internal/domain/drug"
	"github.com/ehospital/medications/internal/domain/patient"
	"github.com/ehospital/medications/internal/domain/prescription"
)

// UnitOfWork is the gorm-backed implementation of domain.UnitOfWork. All
// repositories share the session the UnitOfWork was built from.
type UnitOfWork struct {
	db *gorm.DB

	drugs         *DrugRepository
	prescriptions *PrescriptionRepository
	patients      *PatientRepository
	doctors       *DoctorDirectory
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:            db,
		drugs:         NewDrugRepository(db),
		prescriptions: NewPrescriptionRepository(db),
		patients:      NewPatientRepository(db),
		doctors:       NewDoctorDirectory(db),
	}
}

func (u *UnitOfWork) Drugs() drug.Repository                 { return u.drugs }
func (u *UnitOfWork) Prescriptions() prescription.Repository { return u.prescriptions }
func (u *UnitOfWork) Patients() patient.Repository           { return u.patients }
func (u *UnitOfWork) Doctors() doctor.Directory              { return u.doctors }

func (u *UnitOfWork) InTx(ctx context.Context, fn func(tx domain.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnitOfWork(tx))
	})
}
