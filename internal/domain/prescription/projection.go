package prescription

import (
	"time"

	"github.com/ehospital/medications/internal/domain/doctor"
	"github.com/ehospital/medications/internal/domain/drug"
)

// Details is a read-only view joining a prescription with its drug and the
// prescribing doctor. It is computed per request and never persisted.
type Details struct {
	PrescriptionID int `json:"prescription_id"`

	DoctorFirstName string `json:"doctor_first_name"`
	DoctorLastName  string `json:"doctor_last_name"`

	DrugName      string  `json:"drug_name"`
	DrugType      string  `json:"drug_type"`
	Dose          float64 `json:"dose"`
	DoseUnit      string  `json:"dose_unit"`
	DrugDirection string  `json:"drug_direction"`

	AssignmentDate time.Time `json:"assignment_date"`
	Duration       int16     `json:"duration"`
	Status         Status    `json:"status"`
}

// Guide is a read-only view pairing the drug's instruction with the
// doctor's notes for a single prescription.
type Guide struct {
	Instruction string `json:"instruction"`
	Notes       string `json:"notes"`
}

// BuildDetails composes the details view from three independent lookups.
// The doctor may be nil when the directory has no row for the prescriber;
// the name fields are left empty in that case.
func BuildDetails(p *Prescription, d *drug.Drug, doc *doctor.Doctor) Details {
	det := Details{
		PrescriptionID: p.ID,
		DrugName:       d.Name,
		DrugType:       d.Type,
		Dose:           d.Dose,
		DoseUnit:       d.DoseUnit,
		DrugDirection:  d.Direction,
		AssignmentDate: p.AssignmentDate,
		Duration:       p.Duration,
		Status:         p.Status,
	}
	if doc != nil {
		det.DoctorFirstName = doc.FirstName
		det.DoctorLastName = doc.LastName
	}
	return det
}

// BuildGuide composes the guide view for a single prescription.
func BuildGuide(p *Prescription, d *drug.Drug) Guide {
	return Guide{Instruction: d.Instruction, Notes: p.Notes}
}
