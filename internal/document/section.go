package document

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/types"
)

// Section names one of the six entry collections of a Document.
type Section string

// Sections of a Document, in display order.
const (
	SectionExperience   Section = "experience"
	SectionEducation    Section = "education"
	SectionSkills       Section = "skills"
	SectionProjects     Section = "projects"
	SectionInternships  Section = "internships"
	SectionAchievements Section = "achievements"
)

// Sections lists every Section in display order.
var Sections = []Section{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionInternships,
	SectionAchievements,
}

// ParseSection maps a user-supplied name to a Section. Matching ignores case and surrounding space.
func ParseSection(name string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Sections {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

// Fields returns the settable field names of a section, sorted.
func Fields(section Section) []string {
	switch section {
	case SectionExperience:
		return fieldNames(experienceFields)
	case SectionEducation:
		return fieldNames(educationFields)
	case SectionSkills:
		return fieldNames(skillFields)
	case SectionProjects:
		return fieldNames(projectFields)
	case SectionInternships:
		return fieldNames(internshipFields)
	case SectionAchievements:
		return fieldNames(achievementFields)
	default:
		return nil
	}
}

// PersonalFields returns the settable PersonalInfo field names, sorted.
func PersonalFields() []string {
	return fieldNames(personalFields)
}

// CheckField reports ErrUnknownField when section has no field named field.
func CheckField(section Section, field string) error {
	for _, name := range Fields(section) {
		if name == field {
			return nil
		}
	}
	return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, section, field)
}

// CheckValue reports ErrInvalidValue when UpdateEntry would ignore value for field: "current"
// needs a bool or a string strconv.ParseBool accepts, every other field a string.
func CheckValue(field string, value any) error {
	if field == "current" {
		if _, ok := asBool(value); !ok {
			return fmt.Errorf("%w for current: %v (want true or false)", ErrInvalidValue, value)
		}
		return nil
	}
	if _, ok := asString(value); !ok {
		return fmt.Errorf("%w for %s: want a string, got %T", ErrInvalidValue, field, value)
	}
	return nil
}

// CheckPersonalField reports ErrUnknownField when PersonalInfo has no field named field.
func CheckPersonalField(field string) error {
	if _, ok := personalFields[field]; ok {
		return nil
	}
	return fmt.Errorf("%w: personal info has no field %q", ErrUnknownField, field)
}

// IDGenerator produces entry identifiers.
type IDGenerator func() string

// Editor applies section edits to Documents. The zero value is not usable; use NewEditor.
type Editor struct {
	newID IDGenerator
}

// NewEditor returns an Editor that mints ids with newID, or uuid.NewString when newID is nil.
func NewEditor(newID IDGenerator) *Editor {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Editor{newID: newID}
}

// AddEntry appends a blank entry to section and returns the new Document and the entry's id.
// Skills start as Intermediate/Technical and achievements as Award; everything else is blank.
// An unknown section returns doc unchanged and an empty id.
func (ed *Editor) AddEntry(doc types.Document, section Section) (types.Document, string) {
	id := ed.newID()
	switch section {
	case SectionExperience:
		doc.Experience = Add(doc.Experience, types.Experience{ID: id})
	case SectionEducation:
		doc.Education = Add(doc.Education, types.Education{ID: id})
	case SectionSkills:
		doc.Skills = Add(doc.Skills, types.Skill{
			ID:       id,
			Level:    types.LevelIntermediate,
			Category: types.CategoryTechnical,
		})
	case SectionProjects:
		doc.Projects = Add(doc.Projects, types.Project{ID: id})
	case SectionInternships:
		doc.Internships = Add(doc.Internships, types.Internship{ID: id})
	case SectionAchievements:
		doc.Achievements = Add(doc.Achievements, types.Achievement{
			ID:       id,
			Category: types.AchievementAward,
		})
	default:
		return doc, ""
	}
	return doc, id
}

// RemoveEntry drops the entry with id from section.
func (ed *Editor) RemoveEntry(doc types.Document, section Section, id string) types.Document {
	switch section {
	case SectionExperience:
		doc.Experience = Remove(doc.Experience, id)
	case SectionEducation:
		doc.Education = Remove(doc.Education, id)
	case SectionSkills:
		doc.Skills = Remove(doc.Skills, id)
	case SectionProjects:
		doc.Projects = Remove(doc.Projects, id)
	case SectionInternships:
		doc.Internships = Remove(doc.Internships, id)
	case SectionAchievements:
		doc.Achievements = Remove(doc.Achievements, id)
	}
	return doc
}

// UpdateEntry sets one field of the entry with id in section.
// Text fields take a string; "current" takes a bool or a string parseable as one.
func (ed *Editor) UpdateEntry(doc types.Document, section Section, id, field string, value any) types.Document {
	switch section {
	case SectionExperience:
		doc.Experience = Update(doc.Experience, id, setField(experienceFields, field, value))
	case SectionEducation:
		doc.Education = Update(doc.Education, id, setField(educationFields, field, value))
	case SectionSkills:
		doc.Skills = Update(doc.Skills, id, setField(skillFields, field, value))
	case SectionProjects:
		doc.Projects = Update(doc.Projects, id, setField(projectFields, field, value))
	case SectionInternships:
		doc.Internships = Update(doc.Internships, id, setField(internshipFields, field, value))
	case SectionAchievements:
		doc.Achievements = Update(doc.Achievements, id, setField(achievementFields, field, value))
	}
	return doc
}

// WithPersonalInfo replaces the whole PersonalInfo record.
func (ed *Editor) WithPersonalInfo(doc types.Document, info types.PersonalInfo) types.Document {
	doc.PersonalInfo = info
	return doc
}

// WithPersonalField sets one PersonalInfo field by its JSON name.
func (ed *Editor) WithPersonalField(doc types.Document, field string, value any) types.Document {
	if info, ok := setField(personalFields, field, value)(doc.PersonalInfo); ok {
		doc.PersonalInfo = info
	}
	return doc
}

// WithPhoto sets the photo data URL. An empty string removes the photo.
func (ed *Editor) WithPhoto(doc types.Document, dataURL string) types.Document {
	doc.PersonalInfo.Photo = dataURL
	return doc
}

// HasEntry reports whether section holds an entry with id.
func HasEntry(doc types.Document, section Section, id string) bool {
	switch section {
	case SectionExperience:
		return Contains(doc.Experience, id)
	case SectionEducation:
		return Contains(doc.Education, id)
	case SectionSkills:
		return Contains(doc.Skills, id)
	case SectionProjects:
		return Contains(doc.Projects, id)
	case SectionInternships:
		return Contains(doc.Internships, id)
	case SectionAchievements:
		return Contains(doc.Achievements, id)
	default:
		return false
	}
}
