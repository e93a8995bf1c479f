package extract

import (
	"testing"

	"github.com/Nengock/katepeh/internal/ktp"
)

// word builds a TextRegion laid out on a virtual line grid: each line is 30
// pixels tall and each column slot 10 pixels wide.
func word(text string, line, col, width int) TextRegion {
	return TextRegion{
		Text:       text,
		Confidence: 0.9,
		Bounds: Bounds{
			X1: col * 10,
			Y1: line * 30,
			X2: col*10 + width,
			Y2: line*30 + 20,
		},
	}
}

func TestFieldCandidates(t *testing.T) {
	regions := []TextRegion{
		word("3171234567890001", 0, 0, 160),
		word("BUDI", 1, 0, 40),
		word("17-08-1990", 2, 0, 100),
		word("LAKI-LAKI", 3, 0, 90),
		word("JL. MERDEKA RT 003/RW 005", 4, 0, 250),
		word("x2", 5, 0, 20),
	}

	tests := []struct {
		field string
		want  []string
	}{
		{"nik", []string{"3171234567890001"}},
		{"gender", []string{"LAKI-LAKI"}},
		{"birth_date", []string{"3171234567890001", "17-08-1990"}},
		{"address", []string{"JL. MERDEKA RT 003/RW 005"}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got := FieldCandidates(regions, tt.field)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("candidate %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	regions := []TextRegion{
		word("NIK", 0, 0, 30), word(":", 0, 4, 5), word("3171234567890001", 0, 5, 160),
		word("Nama", 1, 0, 40), word(":", 1, 4, 5), word("BUDI", 1, 5, 40), word("SANTOSO", 1, 10, 70),
		word("Tempat/Tgl", 2, 0, 90), word("Lahir", 2, 10, 45), word(":", 2, 16, 5),
		word("JAKARTA,", 2, 17, 80), word("17-08-1990", 2, 26, 100),
		word("Jenis", 3, 0, 45), word("Kelamin", 3, 5, 65), word(":", 3, 12, 5), word("LAKI-LAKI", 3, 13, 90),
		word("Alamat", 4, 0, 60), word(":", 4, 7, 5), word("JL.", 4, 8, 25), word("MERDEKA", 4, 12, 70), word("NO.17", 4, 20, 45),
		word("RT/RW", 5, 0, 50), word(":", 5, 6, 5), word("003/005", 5, 7, 70),
		word("Agama", 6, 0, 50), word(":", 6, 6, 5), word("ISLAM", 6, 7, 50),
		word("Kewarganegaraan", 7, 0, 150), word(":", 7, 16, 5), word("WNI", 7, 17, 30),
	}

	data := Assemble(regions)

	if data.NIK != "3171234567890001" {
		t.Errorf("NIK: got %q", data.NIK)
	}
	if data.Name != "BUDI SANTOSO" {
		t.Errorf("Name: got %q", data.Name)
	}
	if data.BirthPlace != "JAKARTA" {
		t.Errorf("BirthPlace: got %q", data.BirthPlace)
	}
	if data.BirthDate != "17-08-1990" {
		t.Errorf("BirthDate: got %q", data.BirthDate)
	}
	if data.Gender != ktp.GenderMale {
		t.Errorf("Gender: got %q", data.Gender)
	}
	if data.Religion != "ISLAM" {
		t.Errorf("Religion: got %q", data.Religion)
	}
	if data.Nationality != "WNI" {
		t.Errorf("Nationality: got %q", data.Nationality)
	}
	if data.Address == "" || data.Address[:3] != "JL." {
		t.Errorf("Address: got %q", data.Address)
	}

	if err := data.Validate(false); err != nil {
		t.Errorf("assembled data failed validation: %v", err)
	}
}

func TestAssembleMangledLabels(t *testing.T) {
	// OCR noise in the labels must still resolve through fuzzy matching.
	regions := []TextRegion{
		word("N1K", 0, 0, 30), word(":", 0, 4, 5), word("3171234567890001", 0, 5, 160),
		word("Nema", 1, 0, 40), word(":", 1, 4, 5), word("SITI", 1, 5, 40),
	}

	data := Assemble(regions)
	if data.NIK != "3171234567890001" {
		t.Errorf("NIK: got %q", data.NIK)
	}
	if data.Name != "SITI" {
		t.Errorf("Name: got %q", data.Name)
	}
}

func TestAssembleEmpty(t *testing.T) {
	data := Assemble(nil)
	if data.NIK != "" || data.Name != "" {
		t.Errorf("empty input produced fields: %+v", data)
	}
	if data.Nationality != "WNI" {
		t.Errorf("Nationality default: got %q", data.Nationality)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"17-08-1990", "17-08-1990"},
		{"17/08/1990", "17-08-1990"},
		{"17-08-90", "17-08-1990"},
		{"17-08-05", "17-08-2005"},
		{"not a date", "not a date"},
	}

	for _, tt := range tests {
		if got := normalizeDate(tt.in); got != tt.want {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
