package services

import (
	"testing"

	"HFRegistry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() []models.Patient {
	return []models.Patient{
		{
			ID: "P-1", HN: "HN1", Age: 40, Status: models.StatusOPD, Lvef: 55,
			Address:   models.Address{Province: "ลำพูน", District: "เมือง", SubDistrict: "ในเมือง"},
			Insurance: "บัตรทอง (UC)",
			Meds:      models.Medications{AceiArb: true, BetaBlocker: true, Mra: true},
		},
		{
			ID: "P-2", HN: "HN2", Age: 41, Status: models.StatusIPD, Lvef: 20,
			Etiology: "Ischemic", LastAdmission: "2024-01-15",
			IsReadmission: true, IsRespiFailure: true,
			Address: models.Address{Province: "ลำพูน", District: "ป่าซาง"},
			Meds:    models.Medications{Arni: true},
		},
		{
			ID: "P-3", HN: "HN3", Age: 60, Status: models.StatusIPD, Lvef: 19.5,
			Etiology: "Non-ischemic", LastAdmission: "2024-03-01", DischargeDate: "2024-03-08",
			IsDiureticAdjust: true,
			Address:          models.Address{Province: "เชียงใหม่", District: "เมือง"},
			NextAppointment:  models.NextAppointment{Date: "2024-04-01", Location: "OPD HF ป่าซาง"},
			Meds:             models.Medications{Arni: true, BetaBlocker: true, Mra: true, Sglt2i: true},
		},
		{
			ID: "P-4", HN: "HN4", Age: 81, Status: models.StatusOPD, Lvef: 40,
			Address:         models.Address{Province: "ลำปาง"},
			NextAppointment: models.NextAppointment{Date: "2024-04-01", Location: "OPD HF ลี้"},
		},
	}
}

func ids(patients []models.Patient) []string {
	out := make([]string, 0, len(patients))
	for i := range patients {
		out = append(out, patients[i].ID)
	}
	return out
}

func TestApplyEmptyCriteriaReturnsEverything(t *testing.T) {
	svc := NewFilterService()
	all := fixtures()

	assert.Equal(t, ids(all), ids(svc.Apply(Criteria{}, all)))
}

func TestApplyStatusAndActiveIpd(t *testing.T) {
	svc := NewFilterService()
	all := fixtures()

	assert.Equal(t, []string{"P-2", "P-3"}, ids(svc.Apply(Criteria{Status: models.StatusIPD}, all)))
	// P-3 is discharged, so only P-2 is an active IPD stay.
	assert.Equal(t, []string{"P-2"}, ids(svc.Apply(Criteria{IsActiveIpd: true}, all)))
}

func TestApplyDateRange(t *testing.T) {
	svc := NewFilterService()
	all := fixtures()

	// Patients without a last admission fail as soon as either bound is set.
	got := svc.Apply(Criteria{DateRangeStart: "2024-01-01"}, all)
	assert.Equal(t, []string{"P-2", "P-3"}, ids(got))

	got = svc.Apply(Criteria{DateRangeStart: "2024-01-15", DateRangeEnd: "2024-01-15"}, all)
	assert.Equal(t, []string{"P-2"}, ids(got), "bounds are inclusive")

	got = svc.Apply(Criteria{DateRangeEnd: "2024-02-01"}, all)
	assert.Equal(t, []string{"P-2"}, ids(got))
}

func TestApplyLvefGroups(t *testing.T) {
	svc := NewFilterService()
	all := fixtures()

	cases := map[string][]string{
		"<20%":   {"P-3"},
		"20-30%": {"P-2"}, // lower bound inclusive
		"30-40%": {},
		"40-50%": {"P-4"}, // upper bound exclusive
		">50%":   {"P-1"},
	}
	for group, want := range cases {
		assert.Equal(t, want, ids(svc.Apply(Criteria{LvefGroup: group}, all)), group)
	}

	assert.Equal(t, []string{"P-2", "P-3", "P-4"}, ids(svc.Apply(Criteria{IsLvefLess50: true}, all)))
}

func TestApplyAgeGroupBoundaryGap(t *testing.T) {
	svc := NewFilterService()
	all := fixtures()

	// Age 40 falls between "<40" and "41-60" and matches neither bucket.
	assert.Empty(t, ids(svc.Apply(Criteria{AgeGroup: "<40"}, all)))
	assert.Equal(t, []string{"P-2", "P-3"}, ids(svc.Apply(Criteria{AgeGroup: "41-60"}, all)))
	assert.Empty(t, ids(svc.Apply(Criteria{AgeGroup: "61-80"}, all)))
	assert.Equal(t, []string{"P-4"}, ids(svc.Apply(Criteria{AgeGroup: ">80"}, all)))
}

func TestApplyMedicationDimensions(t *testing.T) {
	svc := NewFilterService()
	all := fixtures()

	assert.Equal(t, []string{"P-1"}, ids(svc.Apply(Criteria{Medication: "acei_arb"}, all)))
	assert.Equal(t, []string{"P-2", "P-3"}, ids(svc.Apply(Criteria{Medication: "arni"}, all)))
	assert.Equal(t, []string{"P-1", "P-2", "P-3"}, ids(svc.Apply(Criteria{Medication: "acei_arb_arni"}, all)))
	assert.Equal(t, []string{"P-3"}, ids(svc.Apply(Criteria{Medication: "sglt2i"}, all)))
	assert.Equal(t, []string{"P-1", "P-3"}, ids(svc.Apply(Criteria{IsTripleTherapy: true}, all)))
}

func TestApplyAddressAndAppointment(t *testing.T) {
	svc := NewFilterService()
	all := fixtures()

	assert.Equal(t, []string{"P-1", "P-2"}, ids(svc.Apply(Criteria{Province: "ลำพูน"}, all)))
	assert.Equal(t, []string{"P-2"}, ids(svc.Apply(Criteria{Province: "ลำพูน", District: "ป่าซาง"}, all)))
	assert.Equal(t, []string{"P-3", "P-4"}, ids(svc.Apply(Criteria{HasNextAppointment: true}, all)))
	assert.Equal(t, []string{"P-3"}, ids(svc.Apply(Criteria{AppointmentDate: "2024-04-01", AppointmentLocation: "OPD HF ป่าซาง"}, all)))
}

func TestApplyFlagDimensions(t *testing.T) {
	svc := NewFilterService()
	all := fixtures()

	assert.Equal(t, []string{"P-2"}, ids(svc.Apply(Criteria{IsReadmit30d: true}, all)))
	assert.Equal(t, []string{"P-2"}, ids(svc.Apply(Criteria{IsRespiFailure: true}, all)))
	assert.Equal(t, []string{"P-3"}, ids(svc.Apply(Criteria{IsDiureticAdjust: true}, all)))
}

// Conjunction is commutative: combining dimensions in one pass yields the
// same membership as chaining the single-dimension filters in any order.
func TestApplyConjunctionIsOrderIndependent(t *testing.T) {
	svc := NewFilterService()
	all := fixtures()

	combined := svc.Apply(Criteria{Status: models.StatusIPD, Medication: "arni", IsLvefLess50: true}, all)

	chained := svc.Apply(Criteria{IsLvefLess50: true},
		svc.Apply(Criteria{Medication: "arni"},
			svc.Apply(Criteria{Status: models.StatusIPD}, all)))
	reversed := svc.Apply(Criteria{Status: models.StatusIPD},
		svc.Apply(Criteria{Medication: "arni"},
			svc.Apply(Criteria{IsLvefLess50: true}, all)))

	require.Equal(t, ids(combined), ids(chained))
	require.Equal(t, ids(combined), ids(reversed))
}

func TestMatchesSinglePatient(t *testing.T) {
	svc := NewFilterService()
	p := fixtures()[1]

	assert.True(t, svc.Matches(Criteria{Status: models.StatusIPD, IsReadmit30d: true}, &p))
	assert.False(t, svc.Matches(Criteria{Status: models.StatusIPD, Medication: "mra"}, &p))
}
