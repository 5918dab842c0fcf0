// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintPersonalInfo outputs the header block of the document.
func (p *Printer) PrintPersonalInfo(info types.PersonalInfo) {
	var sb strings.Builder

	name := strings.TrimSpace(info.FullName)
	if name == "" {
		name = rendering.PlaceholderName
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	writeIfSet(&sb, "Title:    ", info.Title)
	writeIfSet(&sb, "Email:    ", info.Email)
	writeIfSet(&sb, "Phone:    ", info.Phone)
	writeIfSet(&sb, "Location: ", info.Location)

	photo := "none"
	if rendering.IsImageDataURL(info.Photo) {
		photo = fmt.Sprintf("embedded (%d chars)", len(info.Photo))
	}
	sb.WriteString(fmt.Sprintf("Photo:    %s\n", photo))

	if summary := strings.TrimSpace(info.Summary); summary != "" {
		sb.WriteString("\n")
		sb.WriteString(summary)
	}

	p.printBox("PERSONAL INFO", strings.TrimSuffix(sb.String(), "\n"))
}

func writeIfSet(sb *strings.Builder, label, value string) {
	if v := strings.TrimSpace(value); v != "" {
		sb.WriteString(label + v + "\n")
	}
}

// PrintSections outputs one line per rendered section with its entry count and the first
// few entry headings.
func (p *Printer) PrintSections(doc types.Document) {
	preview := rendering.BuildPreview(doc)

	var sb strings.Builder
	total := len(doc.Experience) + len(doc.Education) + len(doc.Skills) +
		len(doc.Projects) + len(doc.Internships) + len(doc.Achievements)
	sb.WriteString(fmt.Sprintf("Total entries: %d\n", total))

	writeList(&sb, rendering.HeadingExperience, timelineLabels(preview.Experience))
	writeList(&sb, rendering.HeadingEducation, educationLabels(preview.Education))
	for _, group := range preview.SkillGroups {
		labels := make([]string, 0, len(group.Skills))
		for _, s := range group.Skills {
			labels = append(labels, fmt.Sprintf("%s (%s)", orUntitled(s.Name), s.Level))
		}
		writeList(&sb, group.Heading, labels)
	}
	writeList(&sb, rendering.HeadingProjects, projectLabels(preview.Projects))
	writeList(&sb, rendering.HeadingInternships, timelineLabels(preview.Internships))
	writeList(&sb, rendering.HeadingAchievements, achievementLabels(preview.Achievements))

	p.printBox("SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, heading string, labels []string) {
	if len(labels) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s (%d):\n", heading, len(labels)))
	count := min(len(labels), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", labels[i]))
	}
	if len(labels) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(labels)-maxItemsToShow))
	}
}

func orUntitled(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}

func timelineLabels(items []rendering.TimelineItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		label := orUntitled(it.Position)
		if it.Company != "" {
			label += " @ " + it.Company
		}
		if it.Dates != "" {
			label += ", " + it.Dates
		}
		out = append(out, label)
	}
	return out
}

func educationLabels(items []rendering.EducationItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		label := orUntitled(it.Heading)
		if it.Institution != "" {
			label += " @ " + it.Institution
		}
		out = append(out, label)
	}
	return out
}

func projectLabels(items []rendering.ProjectItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, orUntitled(it.Title))
	}
	return out
}

func achievementLabels(items []rendering.AchievementItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, fmt.Sprintf("%s [%s]", orUntitled(it.Title), it.Category))
	}
	return out
}

// PrintLintIssues outputs the lint problems found in a document, or nothing when there are none.
func (p *Printer) PrintLintIssues(issues []string) {
	if len(issues) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d issue(s):\n", len(issues)))
	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", issue))
	}
	p.printBox("LINT", strings.TrimSuffix(sb.String(), "\n"))
}

// ArtifactSummary is what PrintArtifact needs to know about a finished export.
type ArtifactSummary struct {
	Filename string
	Location string
	Pages    int
	Bytes    int
}

// PrintArtifact outputs a summary of an exported PDF.
func (p *Printer) PrintArtifact(a ArtifactSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", a.Filename))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", a.Pages))
	sb.WriteString(fmt.Sprintf("Size:     %s\n", formatBytes(a.Bytes)))
	sb.WriteString(fmt.Sprintf("Location: %s", a.Location))
	p.printBox("EXPORTED PDF", sb.String())
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
