package ktp

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
	"unicode"
)

var (
	namePattern       = regexp.MustCompile(`^[A-Z\s\.\,'\-]+$`)
	birthPlacePattern = regexp.MustCompile(`^[A-Z\s\.]+$`)
	rtRWPattern       = regexp.MustCompile(`RT\.?\s*\d{1,3}(/|\.|\s+)RW\.?\s*\d{1,3}`)
)

// ValidNIK reports whether nik is a well-formed 16-digit national identity
// number: province code 11-94, regency code 01-99, district code 01-99. The
// serial portion is not checked.
func ValidNIK(nik string) bool {
	if len(nik) != 16 {
		return false
	}
	for _, r := range nik {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	province, _ := strconv.Atoi(nik[:2])
	if province < 11 || province > 94 {
		return false
	}
	regency, _ := strconv.Atoi(nik[2:4])
	if regency < 1 || regency > 99 {
		return false
	}
	district, _ := strconv.Atoi(nik[4:6])
	return district >= 1 && district <= 99
}

// ValidName reports whether name is at least two characters of uppercase
// letters, spaces, and the punctuation that appears on printed cards.
func ValidName(name string) bool {
	if len(name) < 2 {
		return false
	}
	return namePattern.MatchString(name)
}

// ValidBirthPlace reports whether the place of birth is uppercase letters,
// spaces, and dots, at least two characters long.
func ValidBirthPlace(place string) bool {
	if len(place) < 2 {
		return false
	}
	return birthPlacePattern.MatchString(place)
}

// ValidDate reports whether s is a DD-MM-YYYY date with a year between 1900
// and the current year.
func ValidDate(s string) bool {
	t, err := time.Parse("02-01-2006", s)
	if err != nil {
		return false
	}
	year := t.Year()
	return year >= 1900 && year <= time.Now().Year()
}

// ValidAddress reports whether address is uppercase, at least five
// characters, and carries an RT/RW neighborhood designation.
func ValidAddress(address string) bool {
	if len(address) < 5 {
		return false
	}
	for _, r := range address {
		if unicode.IsLower(r) {
			return false
		}
	}
	return rtRWPattern.MatchString(address)
}

// ValidGender reports whether gender is one of the two printed values.
func ValidGender(gender string) bool {
	return gender == GenderMale || gender == GenderFemale
}

// ValidReligion reports whether religion is empty or a recognized value.
func ValidReligion(religion string) bool {
	return religion == "" || contains(Religions, religion)
}

// ValidMaritalStatus reports whether status is empty or a recognized value.
func ValidMaritalStatus(status string) bool {
	if status == "" {
		return true
	}
	switch status {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return true
	}
	return false
}

// ValidBloodType reports whether bloodType is empty or a recognized value.
func ValidBloodType(bloodType string) bool {
	return bloodType == "" || contains(BloodTypes, bloodType)
}

// ValidNationality reports whether nationality is empty, WNI, or WNA.
func ValidNationality(nationality string) bool {
	return nationality == "" || contains(Nationalities, nationality)
}

// ValidOccupation reports whether occupation is empty or a non-empty string
// without lowercase letters.
func ValidOccupation(occupation string) bool {
	for _, r := range occupation {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// ValidValidUntil reports whether v is empty, the lifetime marker, or a
// DD-MM-YYYY date in the future.
func ValidValidUntil(v string) bool {
	if v == "" || v == ValidUntilLifetime {
		return true
	}
	t, err := time.Parse("02-01-2006", v)
	if err != nil {
		return false
	}
	return t.After(time.Now())
}

// Validate checks every field of d and returns the first violation found.
// With bypass set it always returns nil, matching the pipeline's lenient
// mode where partially-read cards still flow through.
func (d *Data) Validate(bypass bool) error {
	if bypass {
		return nil
	}

	checks := []struct {
		field string
		ok    bool
	}{
		{"nik", ValidNIK(d.NIK)},
		{"name", ValidName(d.Name)},
		{"birth_place", ValidBirthPlace(d.BirthPlace)},
		{"birth_date", ValidDate(d.BirthDate)},
		{"gender", ValidGender(d.Gender)},
		{"address", ValidAddress(d.Address)},
		{"blood_type", ValidBloodType(d.BloodType)},
		{"religion", ValidReligion(d.Religion)},
		{"marital_status", ValidMaritalStatus(d.MaritalStatus)},
		{"occupation", ValidOccupation(d.Occupation)},
		{"nationality", ValidNationality(d.Nationality)},
		{"valid_until", ValidValidUntil(d.ValidUntil)},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("ktp: invalid %s field", c.field)
		}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
