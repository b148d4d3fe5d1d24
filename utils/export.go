package utils

import (
	"fmt"
	"strings"
	"time"

	"HFRegistry/models"
)

// csvHeaders is the fixed export column set expected by the care-quality
// reporting sheets.
var csvHeaders = []string{
	"HN", "AN", "ชื่อ-สกุล", "อายุ", "เพศ", "สิทธิการรักษา", "สถานะ",
	"Admit Count", "Re-admit(30d)", "Ward", "RespiFail", "LVEF",
	"ที่อยู่", "ยา", "วันที่ Admit ล่าสุด", "วันนัดถัดไป", "สถานที่นัด",
}

// BuildCsvExport renders the patient list as a UTF-8 CSV with a BOM so
// spreadsheet tools pick up the Thai text correctly.
func BuildCsvExport(patients []models.Patient) string {
	rows := make([]string, 0, len(patients)+1)
	rows = append(rows, strings.Join(csvHeaders, ","))

	for i := range patients {
		rows = append(rows, csvRow(&patients[i]))
	}

	return "\uFEFF" + strings.Join(rows, "\n")
}

func csvRow(p *models.Patient) string {
	var meds []string
	if p.Meds.AceiArb {
		meds = append(meds, "ACEI/ARB")
	}
	if p.Meds.Arni {
		meds = append(meds, "ARNi")
	}
	if p.Meds.BetaBlocker {
		meds = append(meds, "BB")
	}
	if p.Meds.Mra {
		meds = append(meds, "MRA")
	}
	if p.Meds.Sglt2i {
		meds = append(meds, "SGLT2i")
	}

	fullName := p.FirstName + " " + p.LastName
	address := fmt.Sprintf("%s ต.%s อ.%s จ.%s",
		p.Address.Number, p.Address.SubDistrict, p.Address.District, p.Address.Province)

	admitCount := p.AdmissionCount
	if admitCount == 0 {
		admitCount = 1
	}

	cells := []string{
		sanitizeCell(p.HN),
		sanitizeCell(p.AN),
		sanitizeCell(fullName),
		sanitizeCell(fmt.Sprintf("%d", p.Age)),
		sanitizeCell(p.Gender),
		sanitizeCell(p.Insurance),
		sanitizeCell(p.Status),
		sanitizeCell(fmt.Sprintf("%d", admitCount)),
		sanitizeCell(yesNo(p.IsReadmission)),
		sanitizeCell(orDash(p.AdmitWard)),
		sanitizeCell(yesNo(p.IsRespiFailure)),
		sanitizeCell(fmt.Sprintf("%g", p.Lvef)),
		sanitizeCell(address),
		sanitizeCell(strings.Join(meds, "|")),
		sanitizeCell(p.LastAdmission),
		sanitizeCell(p.NextAppointment.Date),
		sanitizeCell(orDash(p.NextAppointment.Location)),
	}
	return strings.Join(cells, ",")
}

// sanitizeCell quotes a value and escapes embedded quotes.
func sanitizeCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func yesNo(flag bool) string {
	if flag {
		return "Yes"
	}
	return "No"
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

// BackupFilename names a full-record JSON backup by date.
func BackupFilename(t time.Time) string {
	return fmt.Sprintf("hf_registry_backup_%s.json", t.Format(DateLayout))
}

// ExportFilename is the CSV download name.
const ExportFilename = "hf_registry_export.csv"
