// Package ktp models the fields printed on an Indonesian identity card
// (Kartu Tanda Penduduk) and validates their formats.
package ktp

// Gender values as printed on the card.
const (
	GenderMale   = "LAKI-LAKI"
	GenderFemale = "PEREMPUAN"
)

// Marital status values as printed on the card.
const (
	MaritalSingle   = "BELUM KAWIN"
	MaritalMarried  = "KAWIN"
	MaritalDivorced = "CERAI HIDUP"
	MaritalWidowed  = "CERAI MATI"
)

// ValidUntilLifetime marks a card without an expiry date.
const ValidUntilLifetime = "SEUMUR HIDUP"

// Religions recognized on the card.
var Religions = []string{"ISLAM", "KRISTEN", "KATOLIK", "HINDU", "BUDDHA", "KONGHUCU"}

// BloodTypes recognized on the card. "-" marks an unknown type.
var BloodTypes = []string{"A", "B", "AB", "O", "-"}

// Nationalities recognized on the card.
var Nationalities = []string{"WNI", "WNA"}

// Data holds the fields read off a card. Required fields are NIK, Name,
// BirthPlace, BirthDate, Gender, and Address; the rest may be empty when the
// card region could not be read.
type Data struct {
	NIK           string `json:"nik"`
	Name          string `json:"name"`
	BirthPlace    string `json:"birth_place"`
	BirthDate     string `json:"birth_date"`
	Gender        string `json:"gender,omitempty"`
	Address       string `json:"address"`
	BloodType     string `json:"blood_type,omitempty"`
	Religion      string `json:"religion,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	Occupation    string `json:"occupation,omitempty"`
	Nationality   string `json:"nationality,omitempty"`
	ValidUntil    string `json:"valid_until,omitempty"`
}
