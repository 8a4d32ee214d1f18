package compat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// MetadataMarker separates the applicant's cover letter from the JSON blob
// carrying optional fields the table had no column for.
const MetadataMarker = "[APP_META_JSON]"

type Metadata struct {
	City              *string  `json:"city"`
	Certifications    []string `json:"certifications"`
	Certification     *string  `json:"certification"`
	YearsOfExperience *float64 `json:"years_of_experience"`
	CountryCovered    *string  `json:"country_covered"`
	CitiesCovered     []string `json:"cities_covered"`
}

// stripMetadata returns the text before the last marker.
func stripMetadata(coverLetter string) string {
	if i := strings.LastIndex(coverLetter, MetadataMarker); i >= 0 {
		return strings.TrimRight(coverLetter[:i], " \t\r\n")
	}
	return coverLetter
}

// AppendMetadata returns coverLetter with meta appended after a blank line.
// Any earlier metadata suffix is replaced, never nested.
func AppendMetadata(coverLetter string, meta Metadata) (string, error) {
	letter := stripMetadata(strings.TrimSpace(coverLetter))
	blob, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encode application metadata: %w", err)
	}
	suffix := MetadataMarker + string(blob)
	if letter == "" {
		return suffix, nil
	}
	return letter + "\n\n" + suffix, nil
}

// SplitMetadata separates a stored cover letter into the applicant's text
// and the decoded metadata. meta is nil when there is no marker or the text
// after it is not a JSON object. Fields of the wrong type decode as nil.
func SplitMetadata(coverLetter string) (letter string, meta *Metadata) {
	i := strings.LastIndex(coverLetter, MetadataMarker)
	if i < 0 {
		return coverLetter, nil
	}
	letter = strings.TrimRight(coverLetter[:i], " \t\r\n")

	raw := strings.TrimSpace(coverLetter[i+len(MetadataMarker):])
	if raw == "" || !gjson.Valid(raw) {
		return letter, nil
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return letter, nil
	}

	return letter, &Metadata{
		City:              gjsonString(parsed.Get(ColumnCity)),
		Certifications:    gjsonStrings(parsed.Get(ColumnCertifications)),
		Certification:     gjsonString(parsed.Get(ColumnCertification)),
		YearsOfExperience: gjsonNumber(parsed.Get(ColumnYearsOfExperience)),
		CountryCovered:    gjsonString(parsed.Get(ColumnCountryCovered)),
		CitiesCovered:     gjsonStrings(parsed.Get(ColumnCitiesCovered)),
	}
}

func gjsonString(r gjson.Result) *string {
	if r.Type != gjson.String {
		return nil
	}
	s := r.String()
	return &s
}

func gjsonNumber(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	f := r.Float()
	return &f
}

func gjsonStrings(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	out := []string{}
	for _, item := range r.Array() {
		if item.Type == gjson.String {
			out = append(out, item.String())
		}
	}
	return out
}
