package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ehospital/medications/internal/domain/prescription"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *prescription.Prescription) error {
	if p.Status == "" {
		p.Status = prescription.StatusCurrent
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PrescriptionRepository) GetByID(ctx context.Context, id int) (*prescription.Prescription, error) {
	var p prescription.Prescription
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = false", id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, prescription.ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PrescriptionRepository) Update(ctx context.Context, p *prescription.Prescription) error {
	// Column list excludes status and is_deleted: those move only through
	// ToggleStatus and SoftDelete.
	return r.db.WithContext(ctx).
		Model(&prescription.Prescription{}).
		Where("id = ?", p.ID).
		Select("patient_id", "doctor_id", "drug_id", "assignment_date", "duration", "notes").
		Updates(p).Error
}

func (r *PrescriptionRepository) SoftDelete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Model(&prescription.Prescription{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (r *PrescriptionRepository) ToggleStatus(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE medications.prescriptions
		 SET status = CASE status WHEN @cur THEN @hist ELSE @cur END
		 WHERE id = @id AND is_deleted = false`,
		map[string]any{
			"cur":  string(prescription.StatusCurrent),
			"hist": string(prescription.StatusHistoric),
			"id":   id,
		},
	).Error
}

func (r *PrescriptionRepository) List(ctx context.Context) ([]*prescription.Prescription, error) {
	var ps []*prescription.Prescription
	err := r.db.WithContext(ctx).
		Where("is_deleted = false").
		Order("assignment_date ASC").
		Find(&ps).Error
	return ps, err
}

func (r *PrescriptionRepository) ListByPatient(ctx context.Context, patientID int) ([]*prescription.Prescription, error) {
	var ps []*prescription.Prescription
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND is_deleted = false", patientID).
		Order("assignment_date ASC").
		Find(&ps).Error
	return ps, err
}
