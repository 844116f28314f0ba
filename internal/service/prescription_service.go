package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ehospital/medications/internal/domain"
	"github.com/ehospital/medications/internal/domain/doctor"
	"github.com/ehospital/medications/internal/domain/drug"
	"github.com/ehospital/medications/internal/domain/patient"
	"github.com/ehospital/medications/internal/domain/prescription"
)

type PrescriptionService struct {
	uow      domain.UnitOfWork
	auditSvc *AuditService
	log      *zap.Logger
	tracer   trace.Tracer
}

func NewPrescriptionService(uow domain.UnitOfWork, auditSvc *AuditService, log *zap.Logger) *PrescriptionService {
	return &PrescriptionService{
		uow:      uow,
		auditSvc: auditSvc,
		log:      log,
		tracer:   otel.Tracer("medications.service.prescription"),
	}
}

// Create inserts a prescription in the current state. There is no
// uniqueness constraint across prescriptions; the referenced patient and
// drug must exist.
func (s *PrescriptionService) Create(ctx context.Context, cmd *prescription.CreatePrescriptionCommand, caller Caller) (*prescription.Prescription, error) {
	ctx, span := s.tracer.Start(ctx, "PrescriptionService.Create")
	defer span.End()

	if err := validatePrescriptionFields(cmd.PatientID, cmd.DoctorID, cmd.DrugID, cmd.Duration); err != nil {
		return nil, err
	}

	var result *prescription.Prescription
	err := s.uow.InTx(ctx, func(tx domain.UnitOfWork) error {
		if _, err := tx.Patients().GetByID(ctx, cmd.PatientID); err != nil {
			if errors.Is(err, patient.ErrPatientNotFound) {
				return prescription.ErrUnknownPatient
			}
			return fmt.Errorf("verifying patient: %w", err)
		}
		if _, err := tx.Drugs().GetByID(ctx, cmd.DrugID); err != nil {
			if errors.Is(err, drug.ErrDrugNotFound) {
				return prescription.ErrUnknownDrug
			}
			return fmt.Errorf("verifying drug: %w", err)
		}

		p := &prescription.Prescription{
			PatientID:      cmd.PatientID,
			DoctorID:       cmd.DoctorID,
			DrugID:         cmd.DrugID,
			AssignmentDate: cmd.AssignmentDate,
			Duration:       cmd.Duration,
			Notes:          cmd.Notes,
			Status:         prescription.StatusCurrent,
		}
		if err := tx.Prescriptions().Create(ctx, p); err != nil {
			return fmt.Errorf("creating prescription: %w", err)
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionCreate,
		ResourceType: "prescription",
		ResourceID:   strconv.Itoa(result.ID),
	})

	s.log.Info("prescription created",
		zap.Int("prescription_id", result.ID),
		zap.Int("patient_id", result.PatientID),
		zap.Int("drug_id", result.DrugID),
	)

	return result, nil
}

// Update overwrites the mutable fields of an existing prescription. Status
// and the deleted flag are not settable through this path.
func (s *PrescriptionService) Update(ctx context.Context, id int, cmd *prescription.UpdatePrescriptionCommand, caller Caller) (*prescription.Prescription, error) {
	ctx, span := s.tracer.Start(ctx, "PrescriptionService.Update")
	defer span.End()

	if err := validatePrescriptionFields(cmd.PatientID, cmd.DoctorID, cmd.DrugID, cmd.Duration); err != nil {
		return nil, err
	}

	var result *prescription.Prescription
	err := s.uow.InTx(ctx, func(tx domain.UnitOfWork) error {
		target, err := tx.Prescriptions().GetByID(ctx, id)
		if err != nil {
			return err
		}

		target.PatientID = cmd.PatientID
		target.DoctorID = cmd.DoctorID
		target.DrugID = cmd.DrugID
		target.AssignmentDate = cmd.AssignmentDate
		target.Duration = cmd.Duration
		target.Notes = cmd.Notes
		if err := tx.Prescriptions().Update(ctx, target); err != nil {
			return fmt.Errorf("updating prescription: %w", err)
		}
		result = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionUpdate,
		ResourceType: "prescription",
		ResourceID:   strconv.Itoa(id),
	})

	return result, nil
}

// Delete soft-deletes a prescription. Deleting an absent or already deleted
// prescription fails with prescription.ErrPrescriptionNotFound.
func (s *PrescriptionService) Delete(ctx context.Context, id int, caller Caller) error {
	ctx, span := s.tracer.Start(ctx, "PrescriptionService.Delete")
	defer span.End()

	err := s.uow.InTx(ctx, func(tx domain.UnitOfWork) error {
		if _, err := tx.Prescriptions().GetByID(ctx, id); err != nil {
			return err
		}
		return tx.Prescriptions().SoftDelete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionDelete,
		ResourceType: "prescription",
		ResourceID:   strconv.Itoa(id),
	})

	return nil
}

func (s *PrescriptionService) GetByID(ctx context.Context, id int) (*prescription.Prescription, error) {
	return s.uow.Prescriptions().GetByID(ctx, id)
}

// ToggleStatus flips the prescription between current and historic through
// the repository's atomic toggle, then re-fetches the refreshed row. The
// toggle is symmetric: applying it twice restores the original state.
func (s *PrescriptionService) ToggleStatus(ctx context.Context, id int, caller Caller) (*prescription.Prescription, error) {
	ctx, span := s.tracer.Start(ctx, "PrescriptionService.ToggleStatus")
	defer span.End()

	var result *prescription.Prescription
	err := s.uow.InTx(ctx, func(tx domain.UnitOfWork) error {
		if _, err := tx.Prescriptions().GetByID(ctx, id); err != nil {
			return err
		}
		if err := tx.Prescriptions().ToggleStatus(ctx, id); err != nil {
			return fmt.Errorf("toggling status: %w", err)
		}

		refreshed, err := tx.Prescriptions().GetByID(ctx, id)
		if err != nil {
			return err
		}
		result = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionUpdate,
		ResourceType: "prescription",
		ResourceID:   strconv.Itoa(id),
		Changes:      fmt.Sprintf(`{"action":"status_toggle","status":%q}`, result.Status),
	})

	return result, nil
}

// List returns all non-deleted prescriptions ordered by assignment date.
func (s *PrescriptionService) List(ctx context.Context) ([]*prescription.Prescription, error) {
	ps, err := s.uow.Prescriptions().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}
	if len(ps) == 0 {
		return nil, prescription.ErrNoPrescriptionsFound
	}
	return ps, nil
}

// GuideByID pairs the prescription's notes with its drug's instruction.
func (s *PrescriptionService) GuideByID(ctx context.Context, id int) (*prescription.Guide, error) {
	ctx, span := s.tracer.Start(ctx, "PrescriptionService.GuideByID")
	defer span.End()

	p, err := s.uow.Prescriptions().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The drug row may be soft-deleted by now; the guide still needs it.
	d, err := s.uow.Drugs().GetAny(ctx, p.DrugID)
	if err != nil {
		return nil, fmt.Errorf("resolving drug %d: %w", p.DrugID, err)
	}

	guide := prescription.BuildGuide(p, d)
	return &guide, nil
}

// DetailsByPatient joins the patient's non-deleted prescriptions with their
// drug and prescribing doctor. An empty result is a valid, non-error
// outcome surfaced by callers as no-content.
func (s *PrescriptionService) DetailsByPatient(ctx context.Context, patientID int) ([]prescription.Details, error) {
	ctx, span := s.tracer.Start(ctx, "PrescriptionService.DetailsByPatient")
	defer span.End()

	ps, err := s.uow.Prescriptions().ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}
	if len(ps) == 0 {
		return []prescription.Details{}, nil
	}

	doctors, err := s.uow.Doctors().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading doctor directory: %w", err)
	}
	byID := make(map[int]*doctor.Doctor, len(doctors))
	for _, doc := range doctors {
		byID[doc.ID] = doc
	}

	details := make([]prescription.Details, 0, len(ps))
	for _, p := range ps {
		d, err := s.uow.Drugs().GetAny(ctx, p.DrugID)
		if err != nil {
			return nil, fmt.Errorf("resolving drug %d: %w", p.DrugID, err)
		}
		details = append(details, prescription.BuildDetails(p, d, byID[p.DoctorID]))
	}

	return details, nil
}

func validatePrescriptionFields(patientID, doctorID, drugID int, duration int16) error {
	var errs []string

	if patientID <= 0 {
		errs = append(errs, "patient_id is required")
	}
	if doctorID <= 0 {
		errs = append(errs, "doctor_id is required")
	}
	if drugID <= 0 {
		errs = append(errs, "drug_id is required")
	}
	if duration <= 0 {
		errs = append(errs, "duration must be a positive number of days")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
