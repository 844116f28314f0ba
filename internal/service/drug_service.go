package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ehospital/medications/internal/domain"
	"github.com/ehospital/medications/internal/domain/drug"
)

// CreateOutcome distinguishes the two success paths of DrugService.Create.
// The third outcome of the upsert, rejection of a live duplicate, is the
// drug.ErrDrugAlreadyExists error.
type CreateOutcome int

const (
	// OutcomeCreated means a fresh row was inserted.
	OutcomeCreated CreateOutcome = iota
	// OutcomeResurrected means a soft-deleted row with the same composition
	// was reactivated instead of inserting a new one.
	OutcomeResurrected
)

type DrugService struct {
	uow      domain.UnitOfWork
	auditSvc *AuditService
	log      *zap.Logger
	tracer   trace.Tracer
}

func NewDrugService(uow domain.UnitOfWork, auditSvc *AuditService, log *zap.Logger) *DrugService {
	return &DrugService{
		uow:      uow,
		auditSvc: auditSvc,
		log:      log,
		tracer:   otel.Tracer("medications.service.drug"),
	}
}

// Create inserts a drug unless one with the same composition already exists.
// A live match is rejected as a duplicate; a soft-deleted match is
// resurrected under its original id.
func (s *DrugService) Create(ctx context.Context, cmd *drug.CreateDrugCommand, caller Caller) (*drug.Drug, CreateOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "DrugService.Create")
	defer span.End()

	if cmd.DoseUnit == "" {
		cmd.DoseUnit = drug.DefaultDoseUnit
	}
	if err := validateDrugFields(cmd.Name, cmd.Type, cmd.Dose, cmd.DoseUnit, cmd.Direction, cmd.Instruction); err != nil {
		return nil, 0, err
	}

	var (
		result  *drug.Drug
		outcome CreateOutcome
	)
	err := s.uow.InTx(ctx, func(tx domain.UnitOfWork) error {
		existing, err := tx.Drugs().FindByComposition(ctx, cmd.Name, cmd.Type, cmd.Dose, cmd.DoseUnit)
		switch {
		case err == nil && !existing.IsDeleted:
			return drug.ErrDrugAlreadyExists

		case err == nil:
			// The composition matches a soft-deleted row: reactivate it
			// instead of inserting a second row under a new id.
			existing.IsDeleted = false
			existing.Direction = cmd.Direction
			existing.Instruction = cmd.Instruction
			if err := tx.Drugs().Update(ctx, existing); err != nil {
				return fmt.Errorf("resurrecting drug: %w", err)
			}
			result, outcome = existing, OutcomeResurrected
			return nil

		case errors.Is(err, drug.ErrDrugNotFound):
			d := &drug.Drug{
				Name:        cmd.Name,
				Type:        cmd.Type,
				Dose:        cmd.Dose,
				DoseUnit:    cmd.DoseUnit,
				Direction:   cmd.Direction,
				Instruction: cmd.Instruction,
			}
			if err := tx.Drugs().Create(ctx, d); err != nil {
				return err
			}
			result, outcome = d, OutcomeCreated
			return nil

		default:
			return fmt.Errorf("searching for existing drug: %w", err)
		}
	})
	if err != nil {
		return nil, 0, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionCreate,
		ResourceType: "drug",
		ResourceID:   strconv.Itoa(result.ID),
	})

	s.log.Info("drug created",
		zap.Int("drug_id", result.ID),
		zap.Bool("resurrected", outcome == OutcomeResurrected),
	)

	return result, outcome, nil
}

// Update overwrites the fields of an existing non-deleted drug. The new
// composition must not collide with a different drug.
func (s *DrugService) Update(ctx context.Context, id int, cmd *drug.UpdateDrugCommand, caller Caller) (*drug.Drug, error) {
	ctx, span := s.tracer.Start(ctx, "DrugService.Update")
	defer span.End()

	if cmd.DoseUnit == "" {
		cmd.DoseUnit = drug.DefaultDoseUnit
	}
	if err := validateDrugFields(cmd.Name, cmd.Type, cmd.Dose, cmd.DoseUnit, cmd.Direction, cmd.Instruction); err != nil {
		return nil, err
	}

	var result *drug.Drug
	err := s.uow.InTx(ctx, func(tx domain.UnitOfWork) error {
		existing, err := tx.Drugs().FindByComposition(ctx, cmd.Name, cmd.Type, cmd.Dose, cmd.DoseUnit)
		if err == nil && existing.ID != id {
			return drug.ErrDrugAlreadyExists
		}
		if err != nil && !errors.Is(err, drug.ErrDrugNotFound) {
			return fmt.Errorf("searching for existing drug: %w", err)
		}

		target, err := tx.Drugs().GetByID(ctx, id)
		if err != nil {
			return err
		}

		target.Name = cmd.Name
		target.Type = cmd.Type
		target.Dose = cmd.Dose
		target.DoseUnit = cmd.DoseUnit
		target.Direction = cmd.Direction
		target.Instruction = cmd.Instruction
		if err := tx.Drugs().Update(ctx, target); err != nil {
			return fmt.Errorf("updating drug: %w", err)
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
		ResourceType: "drug",
		ResourceID:   strconv.Itoa(id),
	})

	return result, nil
}

// Delete soft-deletes a drug. Deleting an absent or already deleted drug
// fails with drug.ErrDrugNotFound.
func (s *DrugService) Delete(ctx context.Context, id int, caller Caller) error {
	ctx, span := s.tracer.Start(ctx, "DrugService.Delete")
	defer span.End()

	err := s.uow.InTx(ctx, func(tx domain.UnitOfWork) error {
		if _, err := tx.Drugs().GetByID(ctx, id); err != nil {
			return err
		}
		return tx.Drugs().SoftDelete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionDelete,
		ResourceType: "drug",
		ResourceID:   strconv.Itoa(id),
	})

	return nil
}

func (s *DrugService) GetByID(ctx context.Context, id int) (*drug.Drug, error) {
	return s.uow.Drugs().GetByID(ctx, id)
}

// List returns all non-deleted drugs ordered by name. An empty catalog is
// reported as drug.ErrNoDrugsFound, which callers surface as no-content.
func (s *DrugService) List(ctx context.Context) ([]*drug.Drug, error) {
	drugs, err := s.uow.Drugs().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing drugs: %w", err)
	}
	if len(drugs) == 0 {
		return nil, drug.ErrNoDrugsFound
	}
	return drugs, nil
}

// ListByName filters the catalog by a case-insensitive name prefix.
func (s *DrugService) ListByName(ctx context.Context, name string) ([]*drug.Drug, error) {
	drugs, err := s.uow.Drugs().ListByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("listing drugs by name: %w", err)
	}
	if len(drugs) == 0 {
		return nil, drug.ErrNoDrugsFound
	}
	return drugs, nil
}

func validateDrugFields(name, typ string, dose float64, doseUnit, direction, instruction string) error {
	var errs []string

	if strings.TrimSpace(name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(typ) == "" {
		errs = append(errs, "type is required")
	}
	if dose <= 0 {
		errs = append(errs, "dose must be positive")
	}
	if len(doseUnit) > 4 {
		errs = append(errs, "dose_unit must be at most 4 characters")
	}
	if strings.TrimSpace(direction) == "" {
		errs = append(errs, "direction is required")
	}
	if strings.TrimSpace(instruction) == "" {
		errs = append(errs, "instruction is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
