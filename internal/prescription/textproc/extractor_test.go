package textproc_test

import (
	"testing"

	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/textproc"
)

func TestExtractRegistration(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"council format", "Dr. Mehta MH-12345", "MH-12345"},
		{"other state prefix", "Reg: KA-54321", "KA-54321"},
		{"dea with space", "DEA #: 1234567", "1234567"},
		{"dea without space", "DEA#:1234567", "1234567"},
		{"npi", "NPI #: 7654321", "7654321"},
		{"no match", "Dr. Mehta, General Medicine", ""},
		{"six digits is not a dea number", "DEA #: 123456", ""},
		{"four digit council suffix", "MH-1234", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textproc.ExtractRegistration(tt.in); got != tt.want {
				t.Errorf("ExtractRegistration(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain date", "Date: 10/01/2026", "10/01/2026"},
		{"first of several", "01/02/2025 then 03/04/2026", "01/02/2025"},
		{"single digit day not matched", "1/02/2026", ""},
		{"no date", "no date here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textproc.ExtractDate(tt.in); got != tt.want {
				t.Errorf("ExtractDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractMedicines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []domain.ExtractedMedicine
	}{
		{
			name: "single medicine",
			in:   "Paracetamol 325 mg",
			want: []domain.ExtractedMedicine{{Name: "Paracetamol", Dosage: "325 mg"}},
		},
		{
			name: "dosage attached to unit",
			in:   "Ibuprofen 400mg",
			want: []domain.ExtractedMedicine{{Name: "Ibuprofen", Dosage: "400 mg"}},
		},
		{
			name: "compound dosage",
			in:   "Co-Amoxiclav 875-125 mg",
			want: []domain.ExtractedMedicine{{Name: "Co-Amoxiclav", Dosage: "875-125 mg"}},
		},
		{
			name: "one medicine per line",
			in:   "Paracetamol 325 mg twice daily\nAmoxicillin 500 mg\nno medicine here",
			want: []domain.ExtractedMedicine{
				{Name: "Paracetamol", Dosage: "325 mg"},
				{Name: "Amoxicillin", Dosage: "500 mg"},
			},
		},
		{
			name: "first match per line wins",
			in:   "Paracetamol 325 mg with Ibuprofen 400 mg",
			want: []domain.ExtractedMedicine{{Name: "Paracetamol", Dosage: "325 mg"}},
		},
		{
			name: "no medicines",
			in:   "Dr. Mehta MH-12345\n10/01/2026",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textproc.ExtractMedicines(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractMedicines(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("medicine[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractFields(t *testing.T) {
	text := "Dr. Mehta MH-12345\nDate: 10/01/2026\nParacetamol 325 mg\nAmoxicillin 500 mg"

	fields := textproc.ExtractFields(text)

	if fields.RegistrationNumber != "MH-12345" {
		t.Errorf("RegistrationNumber = %q, want MH-12345", fields.RegistrationNumber)
	}
	if fields.Date != "10/01/2026" {
		t.Errorf("Date = %q, want 10/01/2026", fields.Date)
	}
	if len(fields.Medicines) != 2 {
		t.Fatalf("got %d medicines, want 2", len(fields.Medicines))
	}
}
