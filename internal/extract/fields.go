package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/arbovm/levenshtein"

	"github.com/Nengock/katepeh/internal/ktp"
)

// fieldLabels maps the printed card labels to field names. OCR mangles
// labels routinely, so matching is fuzzy (see matchLabel).
var fieldLabels = map[string]string{
	"NIK":               "nik",
	"NAMA":              "name",
	"TEMPAT/TGL LAHIR":  "birth",
	"JENIS KELAMIN":     "gender",
	"GOL. DARAH":        "blood_type",
	"ALAMAT":            "address",
	"RT/RW":             "rt_rw",
	"KEL/DESA":          "village",
	"KECAMATAN":         "district",
	"AGAMA":             "religion",
	"STATUS PERKAWINAN": "marital_status",
	"PEKERJAAN":         "occupation",
	"KEWARGANEGARAAN":   "nationality",
	"BERLAKU HINGGA":    "valid_until",
}

var datePattern = regexp.MustCompile(`(\d{2})[-/](\d{2})[-/](\d{2,4})`)

// FieldCandidates filters regions down to plausible values for one field,
// using content shape alone. Unknown field names accept everything.
func FieldCandidates(regions []TextRegion, field string) []string {
	rule := func(string) bool { return true }
	switch field {
	case "nik":
		rule = func(s string) bool { return len(s) == 16 && allDigits(s) }
	case "name":
		rule = func(s string) bool { return s != "" && s == strings.ToUpper(s) && !anyDigit(s) }
	case "birth_place":
		rule = func(s string) bool { return len(s) > 2 && s == strings.ToUpper(s) }
	case "birth_date":
		rule = func(s string) bool { return len(s) >= 8 && anyDigit(s) }
	case "gender":
		rule = ktp.ValidGender
	case "address":
		rule = func(s string) bool {
			return len(s) > 10 && (strings.Contains(s, "RT") || strings.Contains(s, "RW"))
		}
	}

	var out []string
	for _, r := range regions {
		if rule(r.Text) {
			out = append(out, r.Text)
		}
	}
	return out
}

// matchLabel resolves a run of words against the known card labels,
// tolerating small recognition errors. Distance up to a quarter of the
// label length is accepted.
func matchLabel(text string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(text))
	if upper == "" {
		return "", false
	}

	best, bestDist := "", -1
	for label, field := range fieldLabels {
		d := levenshtein.Distance(upper, label)
		if bestDist < 0 || d < bestDist {
			best, bestDist = field, d
		} else if d == bestDist && field < best {
			best = field
		}
	}
	limit := len(upper) / 4
	if limit < 1 {
		limit = 1
	}
	if bestDist >= 0 && bestDist <= limit {
		return best, true
	}
	return "", false
}

// Assemble groups recognized words into lines, splits each line into a
// label part and a value part, and builds the structured card data.
// Missing fields stay empty; validation is the caller's concern.
func Assemble(regions []TextRegion) ktp.Data {
	fields := map[string]string{}
	for _, line := range groupLines(regions) {
		label, value, ok := splitLine(line)
		if !ok {
			continue
		}
		if _, seen := fields[label]; !seen {
			fields[label] = value
		}
	}

	data := ktp.Data{
		NIK:           digitsOnly(fields["nik"]),
		Name:          collapseUpper(fields["name"]),
		Gender:        collapseUpper(fields["gender"]),
		BloodType:     strings.TrimSpace(fields["blood_type"]),
		Religion:      collapseUpper(fields["religion"]),
		MaritalStatus: collapseUpper(fields["marital_status"]),
		Occupation:    collapseUpper(fields["occupation"]),
		Nationality:   collapseUpper(fields["nationality"]),
		ValidUntil:    collapseUpper(fields["valid_until"]),
	}
	data.BirthPlace, data.BirthDate = splitBirth(fields["birth"])
	data.Address = assembleAddress(fields)
	if data.Nationality == "" {
		data.Nationality = "WNI"
	}
	return data
}

// groupLines buckets words into lines by vertical overlap and orders each
// line left to right.
func groupLines(regions []TextRegion) [][]TextRegion {
	sorted := make([]TextRegion, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Bounds.Y1 < sorted[j].Bounds.Y1
	})

	var lines [][]TextRegion
	for _, r := range sorted {
		placed := false
		for i, line := range lines {
			last := line[len(line)-1]
			mid := (r.Bounds.Y1 + r.Bounds.Y2) / 2
			if mid >= last.Bounds.Y1 && mid < last.Bounds.Y2 {
				lines[i] = append(lines[i], r)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, []TextRegion{r})
		}
	}

	for _, line := range lines {
		sort.Slice(line, func(i, j int) bool {
			return line[i].Bounds.X1 < line[j].Bounds.X1
		})
	}
	return lines
}

// splitLine finds the longest word prefix of a line that matches a known
// label; the remainder of the line, with any separating colon stripped, is
// the value.
func splitLine(line []TextRegion) (field, value string, ok bool) {
	words := make([]string, len(line))
	for i, r := range line {
		words[i] = r.Text
	}

	for n := minInt(3, len(words)); n >= 1; n-- {
		prefix := strings.Join(words[:n], " ")
		if f, matched := matchLabel(strings.TrimSuffix(prefix, ":")); matched {
			rest := strings.Join(words[n:], " ")
			rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
			return f, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}

// splitBirth separates the combined place and date line. The card prints
// them as "JAKARTA, 17-08-1990".
func splitBirth(v string) (place, date string) {
	if v == "" {
		return "", ""
	}
	if m := datePattern.FindStringSubmatchIndex(v); m != nil {
		place = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v[:m[0]]), ","))
		date = normalizeDate(v[m[0]:m[1]])
		return collapseUpper(place), date
	}
	return collapseUpper(v), ""
}

// normalizeDate rewrites a matched date as DD-MM-YYYY. Two-digit years
// pivot at 50: above it 19xx, otherwise 20xx.
func normalizeDate(v string) string {
	m := datePattern.FindStringSubmatch(v)
	if m == nil {
		return v
	}
	day, month, year := m[1], m[2], m[3]
	if len(year) == 2 {
		if n, _ := strconv.Atoi(year); n > 50 {
			year = "19" + year
		} else {
			year = "20" + year
		}
	}
	return day + "-" + month + "-" + year
}

// assembleAddress joins the address line with its RT/RW, village, and
// district companions the way the card body reads.
func assembleAddress(fields map[string]string) string {
	var parts []string
	if v := fields["address"]; v != "" {
		parts = append(parts, collapseUpper(v))
	}
	if v := fields["rt_rw"]; v != "" {
		parts = append(parts, rtRW(v))
	}
	if v := fields["village"]; v != "" {
		parts = append(parts, "KEL. "+collapseUpper(v))
	}
	if v := fields["district"]; v != "" {
		parts = append(parts, "KEC. "+collapseUpper(v))
	}
	return strings.Join(parts, " ")
}

// rtRW normalizes a bare "003/005" value to the labeled form the address
// validators expect; values already carrying RT/RW pass through.
func rtRW(v string) string {
	v = strings.TrimSpace(v)
	if strings.Contains(v, "RT") || strings.Contains(v, "RW") {
		return v
	}
	if i := strings.IndexAny(v, "/."); i > 0 {
		return "RT " + v[:i] + " RW " + v[i+1:]
	}
	return v
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseUpper(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func anyDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
