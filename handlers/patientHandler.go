package handlers

import (
	"net/http"

	"HFRegistry/middlewares"
	"HFRegistry/models"
	"HFRegistry/services"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// SavePatient creates or updates a record. The body carries the clinician's
// edit; the service derives the admission counters before persisting, so the
// response is the finalized record.
func (h *PatientHandler) SavePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		middlewares.HttpError(c, "invalid patient payload", http.StatusBadRequest, err)
		return
	}

	finalized, err := h.service.Save(c.Request.Context(), patient)
	if err != nil {
		if fieldErrors, ok := err.(validation.Errors); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrors})
			return
		}
		middlewares.HttpError(c, "failed to save patient", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, finalized)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id := c.Param("patient_id")
	patient, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.HttpError(c, "failed to load patient", http.StatusInternalServerError, err)
		return
	}
	if patient == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "failed to load patients", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id := c.Param("patient_id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.HttpError(c, "failed to delete patient", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}
