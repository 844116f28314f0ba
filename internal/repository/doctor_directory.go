package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ehospital/medications/internal/domain/doctor"
)

// DoctorDirectory reads the doctors view maintained by the staff service.
type DoctorDirectory struct {
	db *gorm.DB
}

func NewDoctorDirectory(db *gorm.DB) *DoctorDirectory {
	return &DoctorDirectory{db: db}
}

func (r *DoctorDirectory) GetAll(ctx context.Context) ([]*doctor.Doctor, error) {
	var docs []*doctor.Doctor
	err := r.db.WithContext(ctx).Order("last_name ASC").Find(&docs).Error
	return docs, err
}

func (r *DoctorDirectory) GetByID(ctx context.Context, id int) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
