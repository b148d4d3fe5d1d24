package services

import (
	"testing"

	"HFRegistry/models"

	"github.com/stretchr/testify/assert"
)

func TestMedicationStatsEmptyList(t *testing.T) {
	svc := NewStatsService()

	stats := svc.Medication(nil)

	assert.Zero(t, stats.AceiArb)
	assert.Zero(t, stats.Arni)
	assert.Zero(t, stats.AceiArbArni)
	assert.Zero(t, stats.BetaBlocker)
	assert.Zero(t, stats.Mra)
	assert.Zero(t, stats.Sglt2i)
	assert.Zero(t, stats.TripleTherapyCount)
}

func TestMedicationStatsPercentages(t *testing.T) {
	svc := NewStatsService()

	list := []models.Patient{
		{Meds: models.Medications{AceiArb: true, BetaBlocker: true, Mra: true}},
		{Meds: models.Medications{Arni: true, BetaBlocker: true, Mra: true, Sglt2i: true}},
		{Meds: models.Medications{BetaBlocker: true}},
		{},
	}

	stats := svc.Medication(list)

	assert.InDelta(t, 25.0, stats.AceiArb, 0.001)
	assert.InDelta(t, 25.0, stats.Arni, 0.001)
	// The combined class ORs the two flags before counting.
	assert.InDelta(t, 50.0, stats.AceiArbArni, 0.001)
	assert.InDelta(t, 75.0, stats.BetaBlocker, 0.001)
	assert.InDelta(t, 50.0, stats.Mra, 0.001)
	assert.InDelta(t, 25.0, stats.Sglt2i, 0.001)
	assert.Equal(t, 2, stats.TripleTherapyCount)
}

// The headline counts always come from the full collection; only the
// respiratory-failure, diuretic and appointment counts follow the filter.
func TestOverviewScopingAsymmetry(t *testing.T) {
	svc := NewStatsService()

	all := []models.Patient{
		{ID: "P-1", Status: models.StatusIPD, Lvef: 30, IsReadmission: true, IsRespiFailure: true},
		{ID: "P-2", Status: models.StatusIPD, Lvef: 45, DischargeDate: "2024-03-08",
			IsDiureticAdjust: true,
			NextAppointment:  models.NextAppointment{Date: "2024-04-01"}},
		{ID: "P-3", Status: models.StatusOPD, Lvef: 60,
			NextAppointment: models.NextAppointment{Date: "2024-04-02"}},
	}
	filtered := all[1:2] // operator drilled down to P-2 only

	stats := svc.Overview(all, filtered)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.IpdActive, "P-2 is discharged, P-1 is still admitted")
	assert.Equal(t, 1, stats.Readmission30d)
	assert.Equal(t, 2, stats.LvefLess50)

	assert.Equal(t, 0, stats.RespiFailureCount, "P-1 is outside the filtered view")
	assert.Equal(t, 1, stats.DiureticAdjustCount)
	assert.Equal(t, 1, stats.AppointmentCount)
}

func TestOverviewEmptyRegistry(t *testing.T) {
	svc := NewStatsService()
	assert.Equal(t, RegistryStats{}, svc.Overview(nil, nil))
}
