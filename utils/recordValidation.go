package utils

import (
	"HFRegistry/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidatePatientRecord checks the save preconditions for a patient record
// using ozzo-validation. HN and the patient's name are always required; an
// IPD record additionally needs an etiology and an admission number. The
// checks run before any derived field is computed, so a rejected record is
// never partially mutated.
func ValidatePatientRecord(p models.Patient) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.HN, validation.Required.Error("hn is required")),
		validation.Field(&p.FirstName, validation.Required.Error("first name is required")),
		validation.Field(&p.LastName, validation.Required.Error("last name is required")),
		validation.Field(&p.Status, validation.Required, validation.In(models.StatusOPD, models.StatusIPD)),
		validation.Field(&p.Age, validation.Min(0)),
		validation.Field(&p.Etiology,
			validation.Required.When(p.Status == models.StatusIPD).Error("etiology is required for IPD records")),
		validation.Field(&p.AN,
			validation.Required.When(p.Status == models.StatusIPD).Error("an is required for IPD records")),
	)
}
