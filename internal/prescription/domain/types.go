package domain

// Decision is the final verdict of the prescription authorization pipeline
type Decision string

const (
	DecisionApproved          Decision = "APPROVED"
	DecisionRejectedDoctor    Decision = "REJECTED_DOCTOR"
	DecisionRejectedDate      Decision = "REJECTED_DATE"
	DecisionRejectedMedicines Decision = "REJECTED_MEDICINES"
)

// Approved reports whether the decision authorizes the prescription
func (d Decision) Approved() bool {
	return d == DecisionApproved
}

// Reason returns the human-readable rejection reason, empty for APPROVED
func (d Decision) Reason() string {
	switch d {
	case DecisionRejectedDoctor:
		return "Invalid Doctor"
	case DecisionRejectedDate:
		return "Invalid Date"
	case DecisionRejectedMedicines:
		return "Unmatched Medicines"
	default:
		return ""
	}
}

// ExtractedMedicine is one medicine line pulled from the prescription text
type ExtractedMedicine struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

// ExtractedFields holds the structured claims extracted from normalized text.
// Produced once per pipeline run and not mutated afterwards.
type ExtractedFields struct {
	RegistrationNumber string              `json:"registration_number"`
	Date               string              `json:"date"`
	Medicines          []ExtractedMedicine `json:"medicines"`
}

// MatchResult is the outcome of matching one extracted medicine name
// against the catalog
type MatchResult struct {
	Extracted string  `json:"extracted"`
	Canonical string  `json:"canonical,omitempty"`
	Ratio     float64 `json:"ratio"`
	Matched   bool    `json:"matched"`
}

// Report statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Report is the full analysis payload returned to callers.
// A rejection is a business outcome: the report still carries
// StatusSuccess with a REJECTED_* decision. StatusError is reserved for
// unreadable input and infrastructure failures.
type Report struct {
	Status             string              `json:"status"`
	Message            string              `json:"message,omitempty"`
	DoctorValid        bool                `json:"doctor_valid"`
	DateValid          bool                `json:"date_valid"`
	MatchedMedicines   []string            `json:"matched_medicines"`
	UnmatchedMedicines []string            `json:"unmatched_medicines"`
	Decision           Decision            `json:"decision,omitempty"`
	Reason             string              `json:"reason,omitempty"`
	RegistrationNumber string              `json:"registration_number"`
	ExtractedMedicines []ExtractedMedicine `json:"extracted_medicines"`
}

// ErrorReport builds the status:error payload for unrecoverable failures
func ErrorReport(message string) *Report {
	return &Report{
		Status:  StatusError,
		Message: message,
	}
}
