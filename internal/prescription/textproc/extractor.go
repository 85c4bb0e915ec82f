package textproc

import (
	"regexp"
	"strings"

	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
)

// Registration number formats:
// - state medical council style: two letters, hyphen, five digits (MH-12345)
// - DEA #: seven digits
// - NPI #: seven digits
// For DEA/NPI only the digit sequence is returned; the council form is
// returned as the full token.
var (
	registrationPattern = regexp.MustCompile(`(?i)\b(?:[A-Z]{2}-\d{5}|DEA\s?#:\s?\d{7}|NPI\s?#:\s?\d{7})\b`)
	sevenDigits         = regexp.MustCompile(`\d{7}`)
	datePattern         = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
	medicinePattern     = regexp.MustCompile(`(?i)\b([a-zA-Z0-9-]+)\s+(\d{1,4}(?:-\d{1,4})?)\s?mg\b`)
)

// ExtractRegistration pulls the doctor registration number from normalized
// text. Returns an empty string when no pattern matches.
func ExtractRegistration(text string) string {
	match := registrationPattern.FindString(text)
	if match == "" {
		return ""
	}

	upper := strings.ToUpper(match)
	if strings.Contains(upper, "DEA") || strings.Contains(upper, "NPI") {
		return sevenDigits.FindString(match)
	}
	return match
}

// ExtractDate pulls the first date-shaped token (two digits, slash, two
// digits, slash, four digits). Returns an empty string when none is found.
func ExtractDate(text string) string {
	return datePattern.FindString(text)
}

// ExtractMedicines scans line by line for medicine lines of the form
// "<name> <dosage> mg" (dosage like "325" or "325-5"). One extraction per
// matching line, first pattern hit per line. Line-oriented scanning avoids
// cross-line false positives in noisy OCR output.
func ExtractMedicines(text string) []domain.ExtractedMedicine {
	var medicines []domain.ExtractedMedicine
	for _, line := range strings.Split(text, "\n") {
		m := medicinePattern.FindStringSubmatch(line)
		if m != nil {
			medicines = append(medicines, domain.ExtractedMedicine{
				Name:   m[1],
				Dosage: m[2] + " mg",
			})
		}
	}
	return medicines
}

// ExtractFields runs all field extractors over normalized text
func ExtractFields(text string) domain.ExtractedFields {
	return domain.ExtractedFields{
		RegistrationNumber: ExtractRegistration(text),
		Date:               ExtractDate(text),
		Medicines:          ExtractMedicines(text),
	}
}
