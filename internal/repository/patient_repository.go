package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ehospital/medications/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) GetByID(ctx context.Context, id int) (*patient.PatientInfo, error) {
	var p patient.PatientInfo
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = false", id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) GetImage(ctx context.Context, imageID int) (*patient.Image, error) {
	var img patient.Image
	err := r.db.WithContext(ctx).First(&img, imageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}
