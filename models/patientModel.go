package models

import (
	"time"
)

// Clinical status values. A record holds exactly one of these at a time.
const (
	StatusOPD = "OPD"
	StatusIPD = "IPD"
)

// Gender labels follow the registry's source vocabulary.
const (
	GenderMale   = "ชาย"
	GenderFemale = "หญิง"
)

// Address is the hierarchical location used for drill-down aggregation.
type Address struct {
	Number      string `gorm:"column:address_number" json:"number"`
	SubDistrict string `gorm:"column:sub_district;index" json:"subDistrict"`
	District    string `gorm:"column:district;index" json:"district"`
	Province    string `gorm:"column:province;index" json:"province"`
}

// Medications holds independent prescription flags per drug class.
// AceiArb and Arni are clinically mutually exclusive but the model does not
// enforce this; readers may combine them as the ACEi/ARB/ARNi class.
type Medications struct {
	AceiArb     bool `gorm:"column:med_acei_arb" json:"acei_arb"`
	Arni        bool `gorm:"column:med_arni" json:"arni"`
	BetaBlocker bool `gorm:"column:med_beta_blocker" json:"betaBlocker"`
	Mra         bool `gorm:"column:med_mra" json:"mra"`
	Sglt2i      bool `gorm:"column:med_sglt2i" json:"sglt2i"`
}

// TargetDose tracks whether guideline target dosing was reached per class,
// independent of the prescription flags.
type TargetDose struct {
	AceiArbArni bool `gorm:"column:target_acei_arb_arni" json:"acei_arb_arni"`
	BetaBlocker bool `gorm:"column:target_beta_blocker" json:"betaBlocker"`
	Mra         bool `gorm:"column:target_mra" json:"mra"`
}

// NextAppointment describes a scheduled future OPD visit. A non-empty Date
// signals an active follow-up.
type NextAppointment struct {
	Date     string `gorm:"column:appointment_date;index" json:"date"`
	Location string `gorm:"column:appointment_location" json:"location"`
	Detail   string `gorm:"column:appointment_detail" json:"detail,omitempty"`
}

// Patient model. Dates are ISO yyyy-mm-dd strings. AdmissionCount,
// FiscalYear and IsReadmission are derived on save and never user-entered.
type Patient struct {
	ID        string `gorm:"primaryKey;column:id" json:"id"`
	HN        string `gorm:"column:hn;not null;index" json:"hn"`
	AN        string `gorm:"column:an" json:"an,omitempty"`
	FirstName string `gorm:"column:first_name;not null" json:"firstName"`
	LastName  string `gorm:"column:last_name;not null;index" json:"lastName"`
	Age       int    `gorm:"column:age;check:age >= 0" json:"age"`
	Gender    string `gorm:"column:gender" json:"gender"`
	Insurance string `gorm:"column:insurance" json:"insurance"`

	Address Address `gorm:"embedded" json:"address"`

	Status        string  `gorm:"column:status;check:status IN ('OPD', 'IPD');not null;index" json:"status"`
	Lvef          float64 `gorm:"column:lvef" json:"lvef"`
	Etiology      string  `gorm:"column:etiology" json:"etiology,omitempty"`
	LastAdmission string  `gorm:"column:last_admission;index" json:"lastAdmission,omitempty"`
	DischargeDate string  `gorm:"column:discharge_date" json:"dischargeDate,omitempty"`

	AdmissionCount int    `gorm:"column:admission_count" json:"admissionCount,omitempty"`
	FiscalYear     string `gorm:"column:fiscal_year" json:"fiscalYear,omitempty"`
	IsReadmission  bool   `gorm:"column:is_readmission" json:"isReadmission,omitempty"`

	AdmitWard        string `gorm:"column:admit_ward" json:"admitWard,omitempty"`
	IsRespiFailure   bool   `gorm:"column:is_respi_failure" json:"isRespiFailure,omitempty"`
	IsDiureticAdjust bool   `gorm:"column:is_diuretic_adjust" json:"isDiureticAdjust,omitempty"`
	AdmissionNote    string `gorm:"column:admission_note" json:"admissionNote,omitempty"`

	Meds              Medications     `gorm:"embedded" json:"meds"`
	TargetDoseReached TargetDose      `gorm:"embedded" json:"targetDoseReached"`
	NextAppointment   NextAppointment `gorm:"embedded" json:"nextAppointment"`

	Notes     string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Patient) TableName() string {
	return "patient"
}

// IsActiveIpd reports whether the patient is currently admitted, i.e. IPD
// with no discharge date yet.
func (p *Patient) IsActiveIpd() bool {
	return p.Status == StatusIPD && p.DischargeDate == ""
}

// OnAceiArbArni reports whether any drug of the ACEi/ARB/ARNi class is
// prescribed.
func (p *Patient) OnAceiArbArni() bool {
	return p.Meds.AceiArb || p.Meds.Arni
}

// OnTripleTherapy reports concurrent ACEi/ARB/ARNi, beta-blocker and MRA use.
func (p *Patient) OnTripleTherapy() bool {
	return p.OnAceiArbArni() && p.Meds.BetaBlocker && p.Meds.Mra
}

// HasAppointment reports whether a follow-up visit is scheduled.
func (p *Patient) HasAppointment() bool {
	return p.NextAppointment.Date != ""
}
