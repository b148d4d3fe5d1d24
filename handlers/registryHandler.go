package handlers

import (
	"fmt"
	"net/http"
	"time"

	"HFRegistry/middlewares"
	"HFRegistry/services"
	"HFRegistry/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// RegistryHandler serves the dashboard views: filtered lists, statistics,
// export, backup, import and the appointment digest. Filter criteria arrive
// as query parameters, one per dimension.
type RegistryHandler struct {
	patients *services.PatientService
	filters  *services.FilterService
	stats    *services.StatsService
}

func NewRegistryHandler(patients *services.PatientService, filters *services.FilterService, stats *services.StatsService) *RegistryHandler {
	return &RegistryHandler{patients: patients, filters: filters, stats: stats}
}

// FilteredPatients returns the subset matching every active criterion.
func (h *RegistryHandler) FilteredPatients(c *gin.Context) {
	var criteria services.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		middlewares.HttpError(c, "invalid filter criteria", http.StatusBadRequest, err)
		return
	}

	all, err := h.patients.GetAll(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "failed to load patients", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, h.filters.Apply(criteria, all))
}

// Stats returns medication percentages for the filtered subset and the
// headline overview block.
func (h *RegistryHandler) Stats(c *gin.Context) {
	var criteria services.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		middlewares.HttpError(c, "invalid filter criteria", http.StatusBadRequest, err)
		return
	}

	all, err := h.patients.GetAll(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "failed to load patients", http.StatusInternalServerError, err)
		return
	}

	filtered := h.filters.Apply(criteria, all)
	c.JSON(http.StatusOK, gin.H{
		"medication": h.stats.Medication(filtered),
		"overview":   h.stats.Overview(all, filtered),
	})
}

// ExportCsv streams the filtered subset as the fixed-column CSV export.
func (h *RegistryHandler) ExportCsv(c *gin.Context) {
	var criteria services.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		middlewares.HttpError(c, "invalid filter criteria", http.StatusBadRequest, err)
		return
	}

	all, err := h.patients.GetAll(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "failed to load patients", http.StatusInternalServerError, err)
		return
	}

	csv := utils.BuildCsvExport(h.filters.Apply(criteria, all))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", utils.ExportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// Backup returns the full record array as a human-readable JSON document.
func (h *RegistryHandler) Backup(c *gin.Context) {
	all, err := h.patients.GetAll(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "failed to load patients", http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", utils.BackupFilename(time.Now())))
	c.IndentedJSON(http.StatusOK, all)
}

// Import bulk-replaces the registry with a backup payload.
func (h *RegistryHandler) Import(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		middlewares.HttpError(c, "failed to read import payload", http.StatusBadRequest, err)
		return
	}

	imported, err := h.patients.Import(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, services.ErrMalformedImport) {
			middlewares.HttpError(c, services.ErrMalformedImport.Error(), http.StatusBadRequest, err)
			return
		}
		middlewares.HttpError(c, "failed to import registry", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(imported)})
}

type digestRequest struct {
	Recipient string `json:"recipient" binding:"required,email"`
}

// AppointmentDigest mails the list of patients with a scheduled follow-up.
func (h *RegistryHandler) AppointmentDigest(c *gin.Context) {
	var req digestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "invalid digest request", http.StatusBadRequest, err)
		return
	}

	all, err := h.patients.GetAll(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "failed to load patients", http.StatusInternalServerError, err)
		return
	}

	upcoming := h.filters.Apply(services.Criteria{HasNextAppointment: true}, all)
	if err := utils.SendAppointmentDigest(req.Recipient, upcoming); err != nil {
		middlewares.HttpError(c, "failed to send appointment digest", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": len(upcoming)})
}
