package prescription

import "time"

// Status is the two-value lifecycle of a prescription. The only transition
// is a symmetric toggle between the two states.
type Status string

const (
	// StatusCurrent marks an ongoing prescription.
	StatusCurrent Status = "current"
	// StatusHistoric marks a concluded prescription.
	StatusHistoric Status = "historic"
)

func (s Status) IsValid() bool {
	return s == StatusCurrent || s == StatusHistoric
}

// Toggled returns the opposite state.
func (s Status) Toggled() Status {
	if s == StatusCurrent {
		return StatusHistoric
	}
	return StatusCurrent
}

type Prescription struct {
	ID int `gorm:"primaryKey;autoIncrement" json:"id"`

	PatientID int `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID  int `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	DrugID    int `gorm:"column:drug_id;not null;index" json:"drug_id"`

	AssignmentDate time.Time `gorm:"column:assignment_date;type:date;not null" json:"assignment_date"`
	// Duration is the prescribed course length in days.
	Duration int16  `gorm:"column:duration;not null" json:"duration"`
	Notes    string `gorm:"column:notes;type:text" json:"notes"`

	Status Status `gorm:"column:status;type:varchar(16);not null;default:'current'" json:"status"`

	IsDeleted bool `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (Prescription) TableName() string {
	return "medications.prescriptions"
}

type CreatePrescriptionCommand struct {
	PatientID      int
	DoctorID       int
	DrugID         int
	AssignmentDate time.Time
	Duration       int16
	Notes          string
}

// UpdatePrescriptionCommand carries the mutable fields only. Status and the
// deleted flag are not settable through an update.
type UpdatePrescriptionCommand struct {
	PatientID      int
	DoctorID       int
	DrugID         int
	AssignmentDate time.Time
	Duration       int16
	Notes          string
}
