// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Document is the complete in-memory CV: one PersonalInfo and six ordered entry collections.
// A Document is treated as a value. Operations in the document package return a new Document
// and never write through the slices of the one they were given.
type Document struct {
	PersonalInfo PersonalInfo  `json:"personalInfo"`
	Experience   []Experience  `json:"experience" validate:"dive"`
	Education    []Education   `json:"education" validate:"dive"`
	Skills       []Skill       `json:"skills" validate:"dive"`
	Projects     []Project     `json:"projects" validate:"dive"`
	Internships  []Internship  `json:"internships" validate:"dive"`
	Achievements []Achievement `json:"achievements" validate:"dive"`
}

// PersonalInfo is the singleton header record of a Document.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Photo    string `json:"photo,omitempty" validate:"omitempty,datauri"`
}

// Experience is one job in the work experience section.
type Experience struct {
	ID          string `json:"id" validate:"required"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate" validate:"omitempty,datetime=2006-01"`
	EndDate     string `json:"endDate" validate:"omitempty,datetime=2006-01"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is one degree or course of study.
type Education struct {
	ID          string `json:"id" validate:"required"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate" validate:"omitempty,datetime=2006-01"`
	EndDate     string `json:"endDate" validate:"omitempty,datetime=2006-01"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa,omitempty"`
}

// Skill is a named skill with a proficiency level and a category tag.
type Skill struct {
	ID       string        `json:"id" validate:"required"`
	Name     string        `json:"name"`
	Level    SkillLevel    `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
	Category SkillCategory `json:"category" validate:"omitempty,oneof=Technical Soft Language Other"`
}

// Project is a personal or professional project.
type Project struct {
	ID           string `json:"id" validate:"required"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	StartDate    string `json:"startDate" validate:"omitempty,datetime=2006-01"`
	EndDate      string `json:"endDate" validate:"omitempty,datetime=2006-01"`
	Current      bool   `json:"current"`
	URL          string `json:"url,omitempty" validate:"omitempty,url"`
	GitHub       string `json:"github,omitempty" validate:"omitempty,url"`
}

// Internship is one internship placement.
type Internship struct {
	ID          string `json:"id" validate:"required"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate" validate:"omitempty,datetime=2006-01"`
	EndDate     string `json:"endDate" validate:"omitempty,datetime=2006-01"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
}

// Achievement is an award, certification, publication or similar, dated by a single month.
type Achievement struct {
	ID           string              `json:"id" validate:"required"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Date         string              `json:"date" validate:"omitempty,datetime=2006-01"`
	Organization string              `json:"organization,omitempty"`
	Category     AchievementCategory `json:"category" validate:"omitempty,oneof=Award Certification Publication Competition Other"`
}

// EntryID implements the document.Entry constraint.
func (e Experience) EntryID() string { return e.ID }

// EntryID implements the document.Entry constraint.
func (e Education) EntryID() string { return e.ID }

// EntryID implements the document.Entry constraint.
func (s Skill) EntryID() string { return s.ID }

// EntryID implements the document.Entry constraint.
func (p Project) EntryID() string { return p.ID }

// EntryID implements the document.Entry constraint.
func (i Internship) EntryID() string { return i.ID }

// EntryID implements the document.Entry constraint.
func (a Achievement) EntryID() string { return a.ID }

// NewDocument returns an empty Document with non-nil collections so it serializes as [] not null.
func NewDocument() Document {
	return Document{
		Experience:   []Experience{},
		Education:    []Education{},
		Skills:       []Skill{},
		Projects:     []Project{},
		Internships:  []Internship{},
		Achievements: []Achievement{},
	}
}

// Validate lints the Document: malformed emails, URLs, dates and enum values are reported.
// The document package never calls this; it is for surfaces that want to warn the user.
func (d *Document) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}
