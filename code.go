package mdubot

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Course codes are 2-3 letters followed by 3 digits (dva117); program codes
// are 2-3 letters followed by 2 digits (gkv01). The patterns are anchored on
// word boundaries so a course code never half-matches as a program code.
var (
	courseCodeRe  = regexp.MustCompile(`\b[a-z]{2,3}[0-9]{3}\b`)
	programCodeRe = regexp.MustCompile(`\b[a-z]{2,3}[0-9]{2}\b`)
	termRe        = regexp.MustCompile(`(Hösttermin|Vårtermin) (\d{4})`)
)

// DetectCourseCodes returns all course codes mentioned in the text.
// Matching is case-insensitive; returned codes are lowercase.
func DetectCourseCodes(text string) []string {
	return courseCodeRe.FindAllString(strings.ToLower(text), -1)
}

// DetectProgramCodes returns all program codes mentioned in the text.
// Matching is case-insensitive; returned codes are lowercase.
func DetectProgramCodes(text string) []string {
	return programCodeRe.FindAllString(strings.ToLower(text), -1)
}

// ParseValidFrom parses the "giltig från" value of a syllabus. The value is
// either an ISO date or a term name like "Hösttermin 2023" (start of term:
// August 1) or "Vårtermin 2024" (January 1). Returns false if the value is
// not recognized.
func ParseValidFrom(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}

	m := termRe.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, false
	}

	year, err := time.Parse("2006", m[2])
	if err != nil {
		return time.Time{}, false
	}

	month := time.January
	if m[1] == "Hösttermin" {
		month = time.August
	}
	return time.Date(year.Year(), month, 1, 0, 0, 0, 0, time.UTC), true
}

// Indicator phrases that explicitly state the teaching language. Checked
// before the bare-word fallback because syllabus prose often mentions both
// languages in passing.
var (
	swedishIndicators = []string{
		"huvudsakliga undervisningsspråket är svenska",
		"undervisning sker på svenska",
		"undervisningen sker på svenska",
		"undervisningen genomförs på svenska",
		"programmet ges på svenska",
		"programmet genomförs på svenska",
		"examination sker på svenska",
	}
	englishIndicators = []string{
		"huvudsakliga undervisningsspråket är engelska",
		"undervisning sker på engelska",
		"undervisningen sker på engelska",
		"undervisningen genomförs på engelska",
		"programmet ges på engelska",
		"programmet genomförs på engelska",
		"examination sker på engelska",
		"kurslitteraturen är på engelska",
		"litteraturen är på engelska",
	}
)

// DetectLanguages returns the teaching languages stated in a
// undervisningsspråk section, sorted alphabetically.
func DetectLanguages(text string) []string {
	text = strings.ToLower(text)
	found := make(map[string]bool)

	for _, phrase := range swedishIndicators {
		if strings.Contains(text, phrase) {
			found["svenska"] = true
			break
		}
	}
	for _, phrase := range englishIndicators {
		if strings.Contains(text, phrase) {
			found["engelska"] = true
			break
		}
	}

	// Fall back to bare language mentions when no indicator phrase matched.
	if len(found) == 0 {
		if strings.Contains(text, "svenska") {
			found["svenska"] = true
		}
		if strings.Contains(text, "engelska") {
			found["engelska"] = true
		}
	}

	languages := make([]string, 0, len(found))
	for lang := range found {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
