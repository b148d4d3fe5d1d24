package services

import (
	"math"
	"time"

	"HFRegistry/models"
	"HFRegistry/utils"

	"github.com/google/uuid"
)

// readmissionWindowDays is the gap below which a new admission counts as a
// 30-day readmission.
const readmissionWindowDays = 30

// AdmissionService finalizes a patient record on save. Given the previously
// persisted record (nil for a new patient) and the incoming edit, it derives
// the admission counter, fiscal-year label and 30-day readmission flag, and
// performs the implicit IPD-to-OPD discharge. It is a pure transformation:
// persistence and lookup of the previous record are the caller's job.
type AdmissionService struct {
	now func() time.Time
}

func NewAdmissionService() *AdmissionService {
	return &AdmissionService{now: time.Now}
}

// Finalize validates the incoming record and returns the record to persist.
// Validation failures are returned as ozzo validation.Errors; in that case
// no derivation has run.
func (s *AdmissionService) Finalize(previous *models.Patient, incoming models.Patient) (models.Patient, error) {
	if err := utils.ValidatePatientRecord(incoming); err != nil {
		return models.Patient{}, err
	}

	finalized := incoming

	if incoming.Status == models.StatusIPD {
		s.deriveAdmission(previous, &finalized)
	}

	// Setting a next-appointment date on an IPD record discharges the
	// patient in the same save: status flips to OPD and the discharge date
	// defaults to today.
	if finalized.Status == models.StatusIPD && finalized.NextAppointment.Date != "" {
		finalized.Status = models.StatusOPD
		if finalized.DischargeDate == "" {
			finalized.DischargeDate = utils.FormatDate(s.now())
		}
	}

	if finalized.ID == "" {
		finalized.ID = "P-" + uuid.New().String()
	}

	return finalized, nil
}

// deriveAdmission recomputes admissionCount, fiscalYear and isReadmission
// from the prior stored state and the incoming edit. Re-saving the same open
// admission (same AN, previously already IPD) leaves both the counter and
// the readmission flag unchanged.
func (s *AdmissionService) deriveAdmission(previous *models.Patient, finalized *models.Patient) {
	admissionDate := s.now()
	if t, ok := utils.ParseDate(finalized.LastAdmission); ok {
		admissionDate = t
	}
	currentFiscalYear := utils.FiscalYear(admissionDate)

	count := 1
	if previous == nil {
		// First-ever admission cannot be a readmission.
		finalized.IsReadmission = false
	} else {
		priorDischarge, known := utils.ParseDate(previous.DischargeDate)
		if !known {
			priorDischarge, known = utils.ParseDate(previous.LastAdmission)
		}
		if known {
			gapDays := dayGap(admissionDate, priorDischarge)
			newEpisode := previous.Status == models.StatusOPD || previous.AN != finalized.AN
			if newEpisode {
				finalized.IsReadmission = gapDays < readmissionWindowDays
			} else {
				finalized.IsReadmission = previous.IsReadmission
			}
		}

		if previous.FiscalYear == currentFiscalYear {
			if previous.AN != finalized.AN {
				count = previous.AdmissionCount + 1
			} else {
				count = previous.AdmissionCount
			}
		}
		// Fiscal-year rollover resets the count to 1.
	}

	finalized.AdmissionCount = count
	finalized.FiscalYear = currentFiscalYear
}

// dayGap returns the absolute gap between two dates in days, rounded up.
func dayGap(a, b time.Time) int {
	hours := math.Abs(a.Sub(b).Hours())
	return int(math.Ceil(hours / 24))
}
