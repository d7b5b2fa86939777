package mdubot

import (
	"fmt"
	"sort"
	"strings"
)

// FormatCourse flattens a course into text suitable for chunking and
// embedding. Details and sections are emitted in sorted key order so the
// output is deterministic for a given course.
func FormatCourse(c *Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Kurs: %s (%s)\n", c.Name, c.Code)
	if !c.Active {
		b.WriteString("Denna kursplan är inte aktuell och ges inte längre.\n")
	}
	writeSortedPairs(&b, c.Details)
	writeSortedPairs(&b, c.Sections)
	return strings.TrimSpace(b.String())
}

// FormatProgram flattens a program into text suitable for chunking and
// embedding.
func FormatProgram(p *Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program: %s (%s)\n", p.Name, p.Code)
	if !p.Active {
		b.WriteString("Denna utbildningsplan är inte aktuell och ges inte längre.\n")
	}
	if len(p.Languages) > 0 {
		fmt.Fprintf(&b, "undervisningsspråk: %s\n", strings.Join(p.Languages, ", "))
	}
	writeSortedPairs(&b, p.Details)
	writeSortedPairs(&b, p.Sections)
	writeSortedPairs(&b, p.Goals)
	writeSortedPairs(&b, p.Years)
	return strings.TrimSpace(b.String())
}

// FormatContext formats search results as grounding context for the LLM.
// Each result is headed by its code and name; results are separated by
// blank lines.
func FormatContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		header := r.Chunk.Code
		if r.Chunk.Name != "" {
			header += " " + r.Chunk.Name
		}
		if header == "" {
			header = r.Chunk.SourceURL
		}
		parts = append(parts, "## "+strings.TrimSpace(header)+"\n"+r.Chunk.Content)
	}

	return strings.Join(parts, "\n\n")
}

func writeSortedPairs(b *strings.Builder, m map[string]string) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s: %s\n", k, m[k])
	}
}
