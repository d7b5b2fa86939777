package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/henfal/mdubot"
)

const programInactiveMarker = "Denna utbildningsplan är inte aktuell och ges inte längre"

// goalSectionKeys are the degree objective headings collected into
// Program.Goals rather than Program.Sections.
var goalSectionKeys = map[string]bool{
	"kunskap och förståelse":                  true,
	"färdighet och förmåga":                   true,
	"värderingsförmåga och förhållningssätt":  true,
}

// Ensure ProgramExtractor implements mdubot.ProgramExtractor at compile time.
var _ mdubot.ProgramExtractor = (*ProgramExtractor)(nil)

// ProgramExtractor extracts structured program data from utbildningsplan
// HTML pages.
type ProgramExtractor struct{}

// NewProgramExtractor creates a new ProgramExtractor.
func NewProgramExtractor() *ProgramExtractor {
	return &ProgramExtractor{}
}

// ExtractProgram parses an utbildningsplan page into a Program. It returns
// EINVALID for unfilled template pages.
func (e *ProgramExtractor) ExtractProgram(html string, sourceID int) (*mdubot.Program, error) {
	if mdubot.IsPlaceholder(html) {
		return nil, mdubot.Errorf(mdubot.EINVALID, "program %d is an unfilled template page", sourceID)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mdubot.Errorf(mdubot.EINVALID, "failed to parse HTML: %v", err)
	}

	program := &mdubot.Program{
		SourceID: sourceID,
		Active:   !strings.Contains(html, programInactiveMarker),
		Details:  make(map[string]string),
		Sections: make(map[string]string),
		Goals:    make(map[string]string),
		Years:    make(map[string]string),
	}

	program.Name = programName(doc)

	detailItems(doc, func(key, value string) {
		if strings.Contains(key, "version") {
			return
		}
		program.Details[key] = value
	})

	program.Code = strings.ToLower(program.Details["programkod"])
	if validFrom, ok := mdubot.ParseValidFrom(program.Details["giltig från"]); ok {
		program.ValidFrom = validFrom
	}

	// Year headings ("Årskurs 1") group the sections that follow them until
	// the next year heading.
	currentYear := ""
	foundLanguages := false

	doc.Find("div.mdh-text-section").Each(func(_ int, section *goquery.Selection) {
		header := section.Find("h2, h3").First()
		if header.Length() == 0 {
			return
		}
		key := strings.ToLower(strings.TrimSpace(header.Text()))

		if key == "innehåll" {
			if content := joinParagraphs(section); content != "" {
				program.Sections[key] = content
			}
			return
		}
		if strings.Contains(key, "årskurs") {
			currentYear = key
			return
		}

		content := sectionContent(header)
		if content == "" {
			return
		}

		switch {
		case key == "undervisningsspråk":
			foundLanguages = true
			program.Languages = mdubot.DetectLanguages(content)
		case currentYear != "":
			if existing := program.Years[currentYear]; existing != "" {
				program.Years[currentYear] = existing + " " + content
			} else {
				program.Years[currentYear] = content
			}
		case goalSectionKeys[key]:
			if existing := program.Goals[key]; existing != "" {
				program.Goals[key] = existing + " " + content
			} else {
				program.Goals[key] = content
			}
		default:
			program.Sections[key] = content
		}
	})

	if !foundLanguages {
		program.Languages = []string{}
	}

	return program, nil
}

// programName derives the program name from the page title, e.g.
// "Utbildningsplan - Civilingenjörsprogrammet i robotik - Mälardalens universitet".
func programName(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	if _, after, ok := strings.Cut(title, "Utbildningsplan -"); ok {
		title = after
	}
	title = strings.ReplaceAll(title, "- Mälardalens Universitet", "")
	title = strings.ReplaceAll(title, "- Mälardalens universitet", "")
	return strings.TrimSpace(title)
}
