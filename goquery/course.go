package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/henfal/mdubot"
)

// courseNamePrefix is the fixed heading prefix on course pages, e.g.
// "Kursplan - Programmering".
const courseNamePrefix = "Kursplan - "

// courseInactiveMarker appears on pages for syllabus versions that are no
// longer offered.
const courseInactiveMarker = "Denna kursplan är inte aktuell och ges inte längre"

// skippedCourseSections are headings whose content is navigation chrome or
// grading boilerplate rather than syllabus text.
var skippedCourseSections = map[string]bool{
	"betyg":            true,
	"undervisning":     true,
	"litteraturlistor": true,
}

// Ensure CourseExtractor implements mdubot.CourseExtractor at compile time.
var _ mdubot.CourseExtractor = (*CourseExtractor)(nil)

// CourseExtractor extracts structured course data from kursplan HTML pages.
type CourseExtractor struct{}

// NewCourseExtractor creates a new CourseExtractor.
func NewCourseExtractor() *CourseExtractor {
	return &CourseExtractor{}
}

// ExtractCourse parses a kursplan page into a Course. It returns EINVALID
// for unfilled template pages.
func (e *CourseExtractor) ExtractCourse(html string, sourceID int) (*mdubot.Course, error) {
	if mdubot.IsPlaceholder(html) {
		return nil, mdubot.Errorf(mdubot.EINVALID, "course %d is an unfilled template page", sourceID)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mdubot.Errorf(mdubot.EINVALID, "failed to parse HTML: %v", err)
	}

	course := &mdubot.Course{
		SourceID: sourceID,
		Active:   !strings.Contains(html, courseInactiveMarker),
		Details:  make(map[string]string),
		Sections: make(map[string]string),
	}

	if heading := doc.Find("h1.mdh-header-break-word").First(); heading.Length() > 0 {
		course.Name = strings.TrimSpace(strings.TrimPrefix(heading.Text(), courseNamePrefix))
	}

	detailItems(doc, func(key, value string) {
		if strings.Contains(key, "visa tidigare/senare versioner") {
			return
		}
		course.Details[key] = value
	})

	course.Code = strings.ToLower(course.Details["kurskod"])
	if validFrom, ok := mdubot.ParseValidFrom(course.Details["giltig från"]); ok {
		course.ValidFrom = validFrom
	}

	doc.Find("div.mdh-text-section").Each(func(_ int, section *goquery.Selection) {
		header := section.Find("h2").First()
		if header.Length() == 0 {
			return
		}
		key := strings.ToLower(strings.TrimSpace(header.Text()))

		switch {
		case key == "examination":
			if first := section.Find("p").First(); first.Length() > 0 {
				course.Sections[key] = normalizeSpace(first.Text())
			}
		case key == "innehåll":
			if content := joinParagraphs(section); content != "" {
				course.Sections[key] = content
			}
		case skippedCourseSections[key]:
			// skip
		default:
			if content := sectionContent(header); content != "" {
				course.Sections[key] = content
			}
		}
	})

	return course, nil
}
