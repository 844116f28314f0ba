package doctor

import (
	"context"
	"errors"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// Doctor is a read-only row of the doctors view. The view is provisioned by
// the staff service; this service never writes to it.
type Doctor struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"column:first_name" json:"first_name"`
	LastName  string `gorm:"column:last_name" json:"last_name"`
}

func (Doctor) TableName() string {
	return "medications.doctors_view"
}

// Directory is the read-only doctor lookup used to enrich prescription
// detail projections.
type Directory interface {
	GetAll(ctx context.Context) ([]*Doctor, error)
	GetByID(ctx context.Context, id int) (*Doctor, error)
}
