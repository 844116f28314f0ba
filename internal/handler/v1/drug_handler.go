package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ehospital/medications/internal/domain/drug"
	"github.com/ehospital/medications/internal/service"
	"github.com/ehospital/medications/pkg/metrics"
)

type DrugHandler struct {
	svc     *service.DrugService
	metrics *metrics.Collector
}

func NewDrugHandler(svc *service.DrugService, collector *metrics.Collector) *DrugHandler {
	return &DrugHandler{svc: svc, metrics: collector}
}

type drugRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Dose        float64 `json:"dose"`
	DoseUnit    string  `json:"dose_unit"`
	Direction   string  `json:"direction"`
	Instruction string  `json:"instruction"`
}

// List handles GET /api/drugs.
func (h *DrugHandler) List(c *gin.Context) {
	drugs, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondLookupError(c, err)
		return
	}
	respondOK(c, drugs)
}

// Filter handles GET /api/drugs/filter?name= with a case-insensitive
// prefix match.
func (h *DrugHandler) Filter(c *gin.Context) {
	drugs, err := h.svc.ListByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	respondOK(c, drugs)
}

// GetByID handles GET /api/drugs/:id.
func (h *DrugHandler) GetByID(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	d, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	respondOK(c, d)
}

// Create handles POST /api/drugs/add. A resurrected drug comes back 200
// with its original id; a fresh insert comes back 201.
func (h *DrugHandler) Create(c *gin.Context) {
	var req drugRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := drug.CreateDrugCommand{
		Name:        req.Name,
		Type:        req.Type,
		Dose:        req.Dose,
		DoseUnit:    req.DoseUnit,
		Direction:   req.Direction,
		Instruction: req.Instruction,
	}

	d, outcome, err := h.svc.Create(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondMutationError(c, err)
		return
	}

	if outcome == service.OutcomeResurrected {
		h.metrics.DrugsResurrectedTotal.Inc()
		respondOK(c, d)
		return
	}
	h.metrics.DrugsCreatedTotal.Inc()
	respondCreated(c, d)
}

// Update handles PUT /api/drugs/edit/:id.
func (h *DrugHandler) Update(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	var req drugRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := drug.UpdateDrugCommand{
		Name:        req.Name,
		Type:        req.Type,
		Dose:        req.Dose,
		DoseUnit:    req.DoseUnit,
		Direction:   req.Direction,
		Instruction: req.Instruction,
	}

	d, err := h.svc.Update(c.Request.Context(), id, &cmd, callerFrom(c))
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondOK(c, d)
}

// Delete handles DELETE /api/drugs/remove/:id.
func (h *DrugHandler) Delete(c *gin.Context) {
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
