package rendering

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// PlaceholderName is shown in the header when the document has no full name.
const PlaceholderName = "Your Name"

// Section headings, in render order after the header.
const (
	HeadingSummary      = "Professional Summary"
	HeadingExperience   = "Work Experience"
	HeadingEducation    = "Education"
	HeadingSkills       = "Skills"
	HeadingProjects     = "Projects"
	HeadingInternships  = "Internships"
	HeadingAchievements = "Achievements"
)

// Preview is the visual projection of a Document. Empty slices and blank strings mean the
// corresponding block is not rendered.
type Preview struct {
	Header       Header
	Summary      string
	Experience   []TimelineItem
	Education    []EducationItem
	SkillGroups  []SkillGroup
	Projects     []ProjectItem
	Internships  []TimelineItem
	Achievements []AchievementItem
}

// Header is the name block at the top of the preview.
type Header struct {
	Name     string
	Title    string
	Email    string
	Phone    string
	Location string
	// Photo is an image data URL or "".
	Photo string
}

// TimelineItem is a dated role: an experience or an internship.
type TimelineItem struct {
	ID          string
	Position    string
	Company     string
	Location    string
	Dates       string
	Description string
}

// EducationItem is one rendered education entry.
type EducationItem struct {
	ID          string
	Heading     string
	Institution string
	GPA         string
	Dates       string
}

// SkillGroup holds the skills of one category in document order.
type SkillGroup struct {
	Category types.SkillCategory
	Heading  string
	Skills   []SkillBar
}

// SkillBar is a skill with its level bar.
type SkillBar struct {
	ID    string
	Name  string
	Level string
	// Percent is the filled share of the bar, 25 to 100.
	Percent int
	Tone    string
}

// ProjectItem is one rendered project.
type ProjectItem struct {
	ID           string
	Title        string
	Technologies string
	URL          string
	GitHub       string
	Dates        string
	Description  string
}

// AchievementItem is one rendered achievement.
type AchievementItem struct {
	ID           string
	Title        string
	Category     string
	Organization string
	Date         string
	Description  string
}

// BuildPreview projects doc into a Preview. It is pure and total.
func BuildPreview(doc types.Document) Preview {
	return Preview{
		Header:       buildHeader(doc.PersonalInfo),
		Summary:      strings.TrimSpace(doc.PersonalInfo.Summary),
		Experience:   buildExperience(doc.Experience),
		Education:    buildEducation(doc.Education),
		SkillGroups:  GroupSkills(doc.Skills),
		Projects:     buildProjects(doc.Projects),
		Internships:  buildInternships(doc.Internships),
		Achievements: buildAchievements(doc.Achievements),
	}
}

// Sections returns the headings of the sections that will render, in order.
func (p Preview) Sections() []string {
	var out []string
	if p.Summary != "" {
		out = append(out, HeadingSummary)
	}
	if len(p.Experience) > 0 {
		out = append(out, HeadingExperience)
	}
	if len(p.Education) > 0 {
		out = append(out, HeadingEducation)
	}
	if len(p.SkillGroups) > 0 {
		out = append(out, HeadingSkills)
	}
	if len(p.Projects) > 0 {
		out = append(out, HeadingProjects)
	}
	if len(p.Internships) > 0 {
		out = append(out, HeadingInternships)
	}
	if len(p.Achievements) > 0 {
		out = append(out, HeadingAchievements)
	}
	return out
}

func buildHeader(info types.PersonalInfo) Header {
	h := Header{
		Name:     strings.TrimSpace(info.FullName),
		Title:    strings.TrimSpace(info.Title),
		Email:    strings.TrimSpace(info.Email),
		Phone:    strings.TrimSpace(info.Phone),
		Location: strings.TrimSpace(info.Location),
	}
	if h.Name == "" {
		h.Name = PlaceholderName
	}
	if IsImageDataURL(info.Photo) {
		h.Photo = info.Photo
	}
	return h
}

// IsImageDataURL reports whether s is an inline image the preview can show.
func IsImageDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}

func buildExperience(entries []types.Experience) []TimelineItem {
	out := make([]TimelineItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, TimelineItem{
			ID:          e.ID,
			Position:    e.Position,
			Company:     e.Company,
			Dates:       FormatRange(e.StartDate, e.EndDate, e.Current),
			Description: strings.TrimSpace(e.Description),
		})
	}
	return out
}

func buildInternships(entries []types.Internship) []TimelineItem {
	out := make([]TimelineItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, TimelineItem{
			ID:          e.ID,
			Position:    e.Position,
			Company:     e.Company,
			Location:    strings.TrimSpace(e.Location),
			Dates:       FormatRange(e.StartDate, e.EndDate, e.Current),
			Description: strings.TrimSpace(e.Description),
		})
	}
	return out
}

func buildEducation(entries []types.Education) []EducationItem {
	out := make([]EducationItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, EducationItem{
			ID:          e.ID,
			Heading:     degreeHeading(e.Degree, e.Field),
			Institution: e.Institution,
			GPA:         strings.TrimSpace(e.GPA),
			Dates:       FormatRange(e.StartDate, e.EndDate, e.Current),
		})
	}
	return out
}

// degreeHeading joins degree and field as "<degree> in <field>", dropping a blank side.
func degreeHeading(degree, field string) string {
	degree = strings.TrimSpace(degree)
	field = strings.TrimSpace(field)
	switch {
	case degree != "" && field != "":
		return degree + " in " + field
	case degree != "":
		return degree
	default:
		return field
	}
}

// GroupSkills buckets skills by category in the fixed order Technical, Soft, Language, Other.
// Skills with an unrecognized category land in Other. Empty groups are omitted.
func GroupSkills(skills []types.Skill) []SkillGroup {
	buckets := make(map[types.SkillCategory][]SkillBar, len(types.SkillCategories))
	for _, s := range skills {
		category := s.Category
		if !category.Known() {
			category = types.CategoryOther
		}
		buckets[category] = append(buckets[category], SkillBar{
			ID:      s.ID,
			Name:    s.Name,
			Level:   string(s.Level),
			Percent: int(s.Level.Fill() * 100),
			Tone:    levelTone(s.Level),
		})
	}

	groups := make([]SkillGroup, 0, len(buckets))
	for _, category := range types.SkillCategories {
		bars := buckets[category]
		if len(bars) == 0 {
			continue
		}
		groups = append(groups, SkillGroup{
			Category: category,
			Heading:  string(category) + " Skills",
			Skills:   bars,
		})
	}
	return groups
}

func levelTone(level types.SkillLevel) string {
	switch level {
	case types.LevelExpert:
		return "green"
	case types.LevelAdvanced:
		return "blue"
	case types.LevelIntermediate:
		return "yellow"
	default:
		return "gray"
	}
}

func buildProjects(entries []types.Project) []ProjectItem {
	out := make([]ProjectItem, 0, len(entries))
	for _, p := range entries {
		out = append(out, ProjectItem{
			ID:           p.ID,
			Title:        p.Title,
			Technologies: strings.TrimSpace(p.Technologies),
			URL:          strings.TrimSpace(p.URL),
			GitHub:       strings.TrimSpace(p.GitHub),
			Dates:        FormatRange(p.StartDate, p.EndDate, p.Current),
			Description:  strings.TrimSpace(p.Description),
		})
	}
	return out
}

func buildAchievements(entries []types.Achievement) []AchievementItem {
	out := make([]AchievementItem, 0, len(entries))
	for _, a := range entries {
		out = append(out, AchievementItem{
			ID:           a.ID,
			Title:        a.Title,
			Category:     string(a.Category),
			Organization: strings.TrimSpace(a.Organization),
			Date:         FormatMonth(a.Date),
			Description:  strings.TrimSpace(a.Description),
		})
	}
	return out
}
