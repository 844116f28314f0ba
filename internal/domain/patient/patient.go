package patient

import (
	"errors"
	"time"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrImageNotFound   = errors.New("patient image not found")
)

// PatientInfo is the read-only patient record this service exposes alongside
// prescriptions. The patients service owns the data; rows arrive here via
// replication and are never mutated locally.
type PatientInfo struct {
	ID int `gorm:"primaryKey" json:"id"`

	FirstName string    `gorm:"column:first_name;type:varchar(50);not null" json:"first_name"`
	LastName  string    `gorm:"column:last_name;type:varchar(50);not null" json:"last_name"`
	Country   string    `gorm:"column:country;type:varchar(50)" json:"country,omitempty"`
	City      string    `gorm:"column:city;type:varchar(50)" json:"city,omitempty"`
	Address   string    `gorm:"column:address;type:text" json:"address,omitempty"`
	BirthDate time.Time `gorm:"column:birth_date;type:date" json:"birth_date"`
	Phone     string    `gorm:"column:phone;type:varchar(12)" json:"phone,omitempty"`
	Gender    *uint8    `gorm:"column:gender" json:"gender,omitempty"`
	Email     string    `gorm:"column:email;type:varchar(50)" json:"email,omitempty"`
	ImageID   *int      `gorm:"column:image_id" json:"image_id,omitempty"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (PatientInfo) TableName() string {
	return "medications.patient_info"
}

// Image is a patient photo referenced by PatientInfo.ImageID.
type Image struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"column:image_name;type:varchar(100)" json:"image_name"`
	Content []byte `gorm:"column:patient_image" json:"patient_image"`
}

func (Image) TableName() string {
	return "medications.images"
}
