package controllers

import (
	"HFRegistry/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRegistryRoutes registers the patient CRUD and dashboard routes.
func SetupRegistryRoutes(router *gin.Engine, patientHandler *handlers.PatientHandler, registryHandler *handlers.RegistryHandler) {
	router.GET("/patients", patientHandler.GetAllPatients)
	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.POST("/patients", patientHandler.SavePatient)
	router.DELETE("/patients/:patient_id", patientHandler.DeletePatient)

	router.GET("/registry/patients", registryHandler.FilteredPatients)
	router.GET("/registry/stats", registryHandler.Stats)
	router.GET("/registry/export", registryHandler.ExportCsv)
	router.GET("/registry/backup", registryHandler.Backup)
	router.POST("/registry/import", registryHandler.Import)
	router.POST("/registry/appointments/digest", registryHandler.AppointmentDigest)
}
