package services

import (
	"HFRegistry/models"
)

// MedicationStats carries per-class prescription percentages over a patient
// list plus the absolute triple-therapy count. AceiArbArni combines the two
// ACEi/ARB/ARNi-class flags with OR before counting.
type MedicationStats struct {
	AceiArb            float64 `json:"aceiArb"`
	Arni               float64 `json:"arni"`
	AceiArbArni        float64 `json:"aceiArbArni"`
	BetaBlocker        float64 `json:"betaBlocker"`
	Mra                float64 `json:"mra"`
	Sglt2i             float64 `json:"sglt2i"`
	TripleTherapyCount int     `json:"tripleTherapyCount"`
}

// RegistryStats is the dashboard's headline block. Total, IpdActive,
// Readmission30d and LvefLess50 are always computed over the full
// collection; the remaining counts track the currently filtered subset.
// The asymmetry is intentional: headline KPIs stay stable while drill-down
// counts react to the operator's view.
type RegistryStats struct {
	Total               int `json:"total"`
	IpdActive           int `json:"ipdActive"`
	Readmission30d      int `json:"readmission30d"`
	LvefLess50          int `json:"lvefLess50"`
	RespiFailureCount   int `json:"respiFailureCount"`
	DiureticAdjustCount int `json:"diureticAdjustCount"`
	AppointmentCount    int `json:"appointmentCount"`
}

// StatsService computes registry aggregates. All methods are pure and safe
// to call repeatedly on any snapshot.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

// Medication computes prescription percentages for a list. The divisor is
// floored at one so an empty list reports zero for every class.
func (s *StatsService) Medication(list []models.Patient) MedicationStats {
	total := float64(len(list))
	if total == 0 {
		total = 1
	}

	var stats MedicationStats
	for i := range list {
		p := &list[i]
		if p.Meds.AceiArb {
			stats.AceiArb++
		}
		if p.Meds.Arni {
			stats.Arni++
		}
		if p.OnAceiArbArni() {
			stats.AceiArbArni++
		}
		if p.Meds.BetaBlocker {
			stats.BetaBlocker++
		}
		if p.Meds.Mra {
			stats.Mra++
		}
		if p.Meds.Sglt2i {
			stats.Sglt2i++
		}
		if p.OnTripleTherapy() {
			stats.TripleTherapyCount++
		}
	}

	stats.AceiArb = stats.AceiArb / total * 100
	stats.Arni = stats.Arni / total * 100
	stats.AceiArbArni = stats.AceiArbArni / total * 100
	stats.BetaBlocker = stats.BetaBlocker / total * 100
	stats.Mra = stats.Mra / total * 100
	stats.Sglt2i = stats.Sglt2i / total * 100

	return stats
}

// Overview computes the headline block from the full collection and the
// currently filtered subset.
func (s *StatsService) Overview(all, filtered []models.Patient) RegistryStats {
	stats := RegistryStats{Total: len(all)}

	for i := range all {
		p := &all[i]
		if p.IsActiveIpd() {
			stats.IpdActive++
		}
		if p.IsReadmission {
			stats.Readmission30d++
		}
		if p.Lvef < 50 {
			stats.LvefLess50++
		}
	}

	for i := range filtered {
		p := &filtered[i]
		if p.IsRespiFailure {
			stats.RespiFailureCount++
		}
		if p.IsDiureticAdjust {
			stats.DiureticAdjustCount++
		}
		if p.HasAppointment() {
			stats.AppointmentCount++
		}
	}

	return stats
}
