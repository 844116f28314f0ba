package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ehospital/medications/internal/domain/prescription"
	"github.com/ehospital/medications/internal/service"
	"github.com/ehospital/medications/pkg/metrics"
)

type PrescriptionHandler struct {
	svc     *service.PrescriptionService
	metrics *metrics.Collector
}

func NewPrescriptionHandler(svc *service.PrescriptionService, collector *metrics.Collector) *PrescriptionHandler {
	return &PrescriptionHandler{svc: svc, metrics: collector}
}

type prescriptionRequest struct {
	PatientID      int       `json:"patient_id"`
	DoctorID       int       `json:"doctor_id"`
	DrugID         int       `json:"drug_id"`
	AssignmentDate time.Time `json:"assignment_date"`
	Duration       int16     `json:"duration"`
	Notes          string    `json:"notes"`
}

// List handles GET /api/prescriptions.
func (h *PrescriptionHandler) List(c *gin.Context) {
	ps, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondLookupError(c, err)
		return
	}
	respondOK(c, ps)
}

// GetByID handles GET /api/prescriptions/:id.
func (h *PrescriptionHandler) GetByID(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	respondOK(c, p)
}

// Guide handles GET /api/prescriptions/guide/:id.
func (h *PrescriptionHandler) Guide(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	guide, err := h.svc.GuideByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	respondOK(c, guide)
}

// Details handles GET /api/prescriptions/details/:patientId. An empty set
// is a valid result surfaced as no-content.
func (h *PrescriptionHandler) Details(c *gin.Context) {
	patientID, ok := parseIntParam(c, "patientId")
	if !ok {
		return
	}

	details, err := h.svc.DetailsByPatient(c.Request.Context(), patientID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if len(details) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	respondOK(c, details)
}

// Create handles POST /api/prescriptions/add.
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req prescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := prescription.CreatePrescriptionCommand{
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		DrugID:         req.DrugID,
		AssignmentDate: req.AssignmentDate,
		Duration:       req.Duration,
		Notes:          req.Notes,
	}

	p, err := h.svc.Create(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondMutationError(c, err)
		return
	}

	h.metrics.PrescriptionsIssued.Inc()
	respondCreated(c, p)
}

// Update handles PUT /api/prescriptions/edit/:id.
func (h *PrescriptionHandler) Update(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	var req prescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := prescription.UpdatePrescriptionCommand{
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		DrugID:         req.DrugID,
		AssignmentDate: req.AssignmentDate,
		Duration:       req.Duration,
		Notes:          req.Notes,
	}

	p, err := h.svc.Update(c.Request.Context(), id, &cmd, callerFrom(c))
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondOK(c, p)
}

// ToggleStatus handles PUT /api/prescriptions/edit/status/:id, flipping
// the prescription between current and historic.
func (h *PrescriptionHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.ToggleStatus(c.Request.Context(), id, callerFrom(c))
	if err != nil {
		respondMutationError(c, err)
		return
	}

	h.metrics.StatusTogglesTotal.Inc()
	respondOK(c, p)
}

// Delete handles DELETE /api/prescriptions/remove/:id.
func (h *PrescriptionHandler) Delete(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, callerFrom(c)); err != nil {
		respondMutationError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "deleted": true})
}
