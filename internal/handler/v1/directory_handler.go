package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ehospital/medications/internal/domain"
)

// DirectoryHandler serves the read-only auxiliary views: the doctor
// directory and replicated patient records.
type DirectoryHandler struct {
	uow domain.UnitOfWork
}

func NewDirectoryHandler(uow domain.UnitOfWork) *DirectoryHandler {
	return &DirectoryHandler{uow: uow}
}

// Doctors handles GET /api/doctors.
func (h *DirectoryHandler) Doctors(c *gin.Context) {
	docs, err := h.uow.Doctors().GetAll(c.Request.Context())
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if len(docs) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	respondOK(c, docs)
}

// Patient handles GET /api/patients/:id.
func (h *DirectoryHandler) Patient(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	p, err := h.uow.Patients().GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	respondOK(c, p)
}

// PatientImage handles GET /api/patients/:id/image.
func (h *DirectoryHandler) PatientImage(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	p, err := h.uow.Patients().GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if p.ImageID == nil {
		c.Status(http.StatusNoContent)
		return
	}

	img, err := h.uow.Patients().GetImage(c.Request.Context(), *p.ImageID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	respondOK(c, img)
}
