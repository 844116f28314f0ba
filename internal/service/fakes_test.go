package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/ehospital/medications/internal/domain"
	"github.com/ehospital/medications/internal/domain/doctor"
	"github.com/ehospital/medications/internal/domain/drug"
	"github.com/ehospital/medications/internal/domain/patient"
	"github.com/ehospital/medications/internal/domain/prescription"
	"github.com/ehospital/medications/pkg/metrics"
)

// promauto registers against the default registry, so the collector is
// shared across the whole test binary.
var testMetrics = metrics.NewCollector("service_test")

// fakeUnitOfWork backs the service tests with map-based repositories.
// InTx runs the callback against the same instance; transactional
// rollback is not simulated.
type fakeUnitOfWork struct {
	drugs         *fakeDrugRepo
	prescriptions *fakePrescriptionRepo
	patients      *fakePatientRepo
	doctors       *fakeDoctorDirectory
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		drugs:         &fakeDrugRepo{rows: map[int]drug.Drug{}},
		prescriptions: &fakePrescriptionRepo{rows: map[int]prescription.Prescription{}},
		patients:      &fakePatientRepo{rows: map[int]patient.PatientInfo{}},
		doctors:       &fakeDoctorDirectory{},
	}
}

func (u *fakeUnitOfWork) Drugs() drug.Repository                 { return u.drugs }
func (u *fakeUnitOfWork) Prescriptions() prescription.Repository { return u.prescriptions }
func (u *fakeUnitOfWork) Patients() patient.Repository           { return u.patients }
func (u *fakeUnitOfWork) Doctors() doctor.Directory              { return u.doctors }

func (u *fakeUnitOfWork) InTx(ctx context.Context, fn func(tx domain.UnitOfWork) error) error {
	return fn(u)
}

type fakeDrugRepo struct {
	nextID int
	rows   map[int]drug.Drug
}

func (r *fakeDrugRepo) Create(ctx context.Context, d *drug.Drug) error {
	for _, row := range r.rows {
		if row.SameComposition(d.Name, d.Type, d.Dose, d.DoseUnit) {
			return drug.ErrDrugAlreadyExists
		}
	}
	r.nextID++
	d.ID = r.nextID
	r.rows[d.ID] = *d
	return nil
}

func (r *fakeDrugRepo) GetByID(ctx context.Context, id int) (*drug.Drug, error) {
	row, ok := r.rows[id]
	if !ok || row.IsDeleted {
		return nil, drug.ErrDrugNotFound
	}
	return &row, nil
}

func (r *fakeDrugRepo) GetAny(ctx context.Context, id int) (*drug.Drug, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, drug.ErrDrugNotFound
	}
	return &row, nil
}

func (r *fakeDrugRepo) FindByComposition(ctx context.Context, name, typ string, dose float64, doseUnit string) (*drug.Drug, error) {
	for _, row := range r.rows {
		if row.SameComposition(name, typ, dose, doseUnit) {
			return &row, nil
		}
	}
	return nil, drug.ErrDrugNotFound
}

func (r *fakeDrugRepo) Update(ctx context.Context, d *drug.Drug) error {
	if _, ok := r.rows[d.ID]; !ok {
		return drug.ErrDrugNotFound
	}
	r.rows[d.ID] = *d
	return nil
}

func (r *fakeDrugRepo) SoftDelete(ctx context.Context, id int) error {
	row, ok := r.rows[id]
	if !ok {
		return drug.ErrDrugNotFound
	}
	row.IsDeleted = true
	r.rows[id] = row
	return nil
}

func (r *fakeDrugRepo) List(ctx context.Context) ([]*drug.Drug, error) {
	var out []*drug.Drug
	for _, row := range r.rows {
		if row.IsDeleted {
			continue
		}
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeDrugRepo) ListByName(ctx context.Context, namePrefix string) ([]*drug.Drug, error) {
	prefix := strings.ToLower(namePrefix)
	var out []*drug.Drug
	for _, row := range r.rows {
		if row.IsDeleted || !strings.HasPrefix(strings.ToLower(row.Name), prefix) {
			continue
		}
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakePrescriptionRepo struct {
	nextID int
	rows   map[int]prescription.Prescription
}

func (r *fakePrescriptionRepo) Create(ctx context.Context, p *prescription.Prescription) error {
	if p.Status == "" {
		p.Status = prescription.StatusCurrent
	}
	r.nextID++
	p.ID = r.nextID
	r.rows[p.ID] = *p
	return nil
}

func (r *fakePrescriptionRepo) GetByID(ctx context.Context, id int) (*prescription.Prescription, error) {
	row, ok := r.rows[id]
	if !ok || row.IsDeleted {
		return nil, prescription.ErrPrescriptionNotFound
	}
	return &row, nil
}

func (r *fakePrescriptionRepo) Update(ctx context.Context, p *prescription.Prescription) error {
	row, ok := r.rows[p.ID]
	if !ok {
		return prescription.ErrPrescriptionNotFound
	}
	row.PatientID = p.PatientID
	row.DoctorID = p.DoctorID
	row.DrugID = p.DrugID
	row.AssignmentDate = p.AssignmentDate
	row.Duration = p.Duration
	row.Notes = p.Notes
	r.rows[p.ID] = row
	return nil
}

func (r *fakePrescriptionRepo) SoftDelete(ctx context.Context, id int) error {
	row, ok := r.rows[id]
	if !ok {
		return prescription.ErrPrescriptionNotFound
	}
	row.IsDeleted = true
	r.rows[id] = row
	return nil
}

func (r *fakePrescriptionRepo) ToggleStatus(ctx context.Context, id int) error {
	row, ok := r.rows[id]
	if !ok || row.IsDeleted {
		return nil
	}
	row.Status = row.Status.Toggled()
	r.rows[id] = row
	return nil
}

func (r *fakePrescriptionRepo) List(ctx context.Context) ([]*prescription.Prescription, error) {
	var out []*prescription.Prescription
	for _, row := range r.rows {
		if row.IsDeleted {
			continue
		}
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssignmentDate.Before(out[j].AssignmentDate)
	})
	return out, nil
}

func (r *fakePrescriptionRepo) ListByPatient(ctx context.Context, patientID int) ([]*prescription.Prescription, error) {
	var out []*prescription.Prescription
	for _, row := range r.rows {
		if row.IsDeleted || row.PatientID != patientID {
			continue
		}
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssignmentDate.Before(out[j].AssignmentDate)
	})
	return out, nil
}

type fakePatientRepo struct {
	rows map[int]patient.PatientInfo
}

func (r *fakePatientRepo) GetByID(ctx context.Context, id int) (*patient.PatientInfo, error) {
	row, ok := r.rows[id]
	if !ok || row.IsDeleted {
		return nil, patient.ErrPatientNotFound
	}
	return &row, nil
}

func (r *fakePatientRepo) GetImage(ctx context.Context, imageID int) (*patient.Image, error) {
	return nil, patient.ErrImageNotFound
}

type fakeDoctorDirectory struct {
	doctors []*doctor.Doctor
}

func (d *fakeDoctorDirectory) GetAll(ctx context.Context) ([]*doctor.Doctor, error) {
	return d.doctors, nil
}

func (d *fakeDoctorDirectory) GetByID(ctx context.Context, id int) (*doctor.Doctor, error) {
	for _, doc := range d.doctors {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, doctor.ErrDoctorNotFound
}

// fakeAuditRepo records persisted audit entries. The audit worker runs on
// its own goroutine, so access is guarded.
type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func newAuditServiceForTest(t *testing.T) (*AuditService, *fakeAuditRepo) {
	t.Helper()
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, testMetrics, zap.NewNop())
	t.Cleanup(svc.Shutdown)
	return svc, repo
}

func testCaller() Caller {
	return Caller{Actor: "dr.house", Role: "doctor", IP: "10.0.0.1", RequestID: "req-1"}
}
