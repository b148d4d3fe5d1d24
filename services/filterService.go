package services

import (
	"math"

	"HFRegistry/models"
)

// Criteria is the sparse filter set of the dashboard. A zero-value field
// means the dimension is unconstrained; active dimensions are AND-ed. The
// form tags let gin bind the criteria straight from query parameters.
type Criteria struct {
	Status              string `form:"status" json:"status,omitempty"`
	IsActiveIpd         bool   `form:"isActiveIpd" json:"isActiveIpd,omitempty"`
	DateRangeStart      string `form:"dateRangeStart" json:"dateRangeStart,omitempty"`
	DateRangeEnd        string `form:"dateRangeEnd" json:"dateRangeEnd,omitempty"`
	IsReadmit30d        bool   `form:"isReadmit30d" json:"isReadmit30d,omitempty"`
	LvefGroup           string `form:"lvefGroup" json:"lvefGroup,omitempty"`
	IsLvefLess50        bool   `form:"isLvefLess50" json:"isLvefLess50,omitempty"`
	Province            string `form:"province" json:"province,omitempty"`
	District            string `form:"district" json:"district,omitempty"`
	SubDistrict         string `form:"subDistrict" json:"subDistrict,omitempty"`
	Etiology            string `form:"etiology" json:"etiology,omitempty"`
	Insurance           string `form:"insurance" json:"insurance,omitempty"`
	AgeGroup            string `form:"ageGroup" json:"ageGroup,omitempty"`
	AppointmentDate     string `form:"appointmentDate" json:"appointmentDate,omitempty"`
	AppointmentLocation string `form:"appointmentLocation" json:"appointmentLocation,omitempty"`
	Medication          string `form:"medication" json:"medication,omitempty"`
	IsTripleTherapy     bool   `form:"isTripleTherapy" json:"isTripleTherapy,omitempty"`
	IsRespiFailure      bool   `form:"isRespiFailure" json:"isRespiFailure,omitempty"`
	IsDiureticAdjust    bool   `form:"isDiureticAdjust" json:"isDiureticAdjust,omitempty"`
	HasNextAppointment  bool   `form:"hasNextAppointment" json:"hasNextAppointment,omitempty"`
}

type predicate func(*models.Patient) bool

// lvefBounds maps an LVEF group label to its half-open bucket: the lower
// bound is inclusive, the upper bound exclusive.
var lvefBounds = map[string][2]float64{
	"<20%":   {math.Inf(-1), 20},
	"20-30%": {20, 30},
	"30-40%": {30, 40},
	"40-50%": {40, 50},
	">50%":   {50, math.Inf(1)},
}

// FilterService evaluates a criteria set against patient collections. The
// evaluation is a pure conjunction, so the result does not depend on the
// order dimensions were set.
type FilterService struct{}

func NewFilterService() *FilterService {
	return &FilterService{}
}

// Apply returns the subset of patients matching every active dimension.
// Empty criteria return the full collection.
func (s *FilterService) Apply(criteria Criteria, patients []models.Patient) []models.Patient {
	preds := criteria.predicates()
	matched := make([]models.Patient, 0, len(patients))
	for i := range patients {
		if matchesAll(&patients[i], preds) {
			matched = append(matched, patients[i])
		}
	}
	return matched
}

// Matches reports whether a single patient satisfies the criteria.
func (s *FilterService) Matches(criteria Criteria, p *models.Patient) bool {
	return matchesAll(p, criteria.predicates())
}

func matchesAll(p *models.Patient, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

// predicates builds the evaluator table: one predicate per active dimension.
// Unknown bucket labels add no constraint, mirroring the dashboard's
// behavior for unrecognized dropdown values.
func (c Criteria) predicates() []predicate {
	var preds []predicate

	if c.Status != "" {
		preds = append(preds, func(p *models.Patient) bool { return p.Status == c.Status })
	}
	if c.IsActiveIpd {
		preds = append(preds, (*models.Patient).IsActiveIpd)
	}
	if c.DateRangeStart != "" || c.DateRangeEnd != "" {
		start, end := c.DateRangeStart, c.DateRangeEnd
		preds = append(preds, func(p *models.Patient) bool {
			// ISO date strings compare correctly as strings; a patient
			// without a last admission fails as soon as either bound is set.
			if p.LastAdmission == "" {
				return false
			}
			if start != "" && p.LastAdmission < start {
				return false
			}
			if end != "" && p.LastAdmission > end {
				return false
			}
			return true
		})
	}
	if c.IsReadmit30d {
		preds = append(preds, func(p *models.Patient) bool { return p.IsReadmission })
	}
	if c.LvefGroup != "" {
		if bounds, ok := lvefBounds[c.LvefGroup]; ok {
			preds = append(preds, func(p *models.Patient) bool {
				return p.Lvef >= bounds[0] && p.Lvef < bounds[1]
			})
		}
	}
	if c.IsLvefLess50 {
		preds = append(preds, func(p *models.Patient) bool { return p.Lvef < 50 })
	}
	if c.Province != "" {
		preds = append(preds, func(p *models.Patient) bool { return p.Address.Province == c.Province })
	}
	if c.District != "" {
		preds = append(preds, func(p *models.Patient) bool { return p.Address.District == c.District })
	}
	if c.SubDistrict != "" {
		preds = append(preds, func(p *models.Patient) bool { return p.Address.SubDistrict == c.SubDistrict })
	}
	if c.Etiology != "" {
		preds = append(preds, func(p *models.Patient) bool { return p.Etiology == c.Etiology })
	}
	if c.Insurance != "" {
		preds = append(preds, func(p *models.Patient) bool { return p.Insurance == c.Insurance })
	}
	if c.AgeGroup != "" {
		preds = append(preds, ageGroupPredicate(c.AgeGroup))
	}
	if c.AppointmentDate != "" {
		preds = append(preds, func(p *models.Patient) bool { return p.NextAppointment.Date == c.AppointmentDate })
	}
	if c.AppointmentLocation != "" {
		preds = append(preds, func(p *models.Patient) bool { return p.NextAppointment.Location == c.AppointmentLocation })
	}
	if c.Medication != "" {
		preds = append(preds, medicationPredicate(c.Medication))
	}
	if c.IsTripleTherapy {
		preds = append(preds, (*models.Patient).OnTripleTherapy)
	}
	if c.IsRespiFailure {
		preds = append(preds, func(p *models.Patient) bool { return p.IsRespiFailure })
	}
	if c.IsDiureticAdjust {
		preds = append(preds, func(p *models.Patient) bool { return p.IsDiureticAdjust })
	}
	if c.HasNextAppointment {
		preds = append(preds, (*models.Patient).HasAppointment)
	}

	return preds
}

// ageGroupPredicate keeps the registry's historical bucket boundaries: 40
// falls between "<40" and "41-60" and matches neither.
func ageGroupPredicate(group string) predicate {
	switch group {
	case "<40":
		return func(p *models.Patient) bool { return p.Age < 40 }
	case "41-60":
		return func(p *models.Patient) bool { return p.Age >= 41 && p.Age <= 60 }
	case "61-80":
		return func(p *models.Patient) bool { return p.Age >= 61 && p.Age <= 80 }
	case ">80":
		return func(p *models.Patient) bool { return p.Age > 80 }
	default:
		return func(*models.Patient) bool { return true }
	}
}

func medicationPredicate(class string) predicate {
	switch class {
	case "acei_arb":
		return func(p *models.Patient) bool { return p.Meds.AceiArb }
	case "arni":
		return func(p *models.Patient) bool { return p.Meds.Arni }
	case "acei_arb_arni":
		return (*models.Patient).OnAceiArbArni
	case "betaBlocker":
		return func(p *models.Patient) bool { return p.Meds.BetaBlocker }
	case "mra":
		return func(p *models.Patient) bool { return p.Meds.Mra }
	case "sglt2i":
		return func(p *models.Patient) bool { return p.Meds.Sglt2i }
	default:
		return func(*models.Patient) bool { return true }
	}
}
