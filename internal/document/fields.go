package document

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// fieldSetter assigns value to one field of *E and reports whether value had a usable type.
type fieldSetter[E any] func(e *E, value any) bool

func text[E any, S ~string](field func(*E) *S) fieldSetter[E] {
	return func(e *E, value any) bool {
		s, ok := asString(value)
		if !ok {
			return false
		}
		*field(e) = S(s)
		return true
	}
}

// current sets the ongoing flag. Turning it on clears the end date.
func current[E any](flag func(*E) *bool, end func(*E) *string) fieldSetter[E] {
	return func(e *E, value any) bool {
		b, ok := asBool(value)
		if !ok {
			return false
		}
		*flag(e) = b
		if b {
			*end(e) = ""
		}
		return true
	}
}

func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

func asBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

var experienceFields = map[string]fieldSetter[types.Experience]{
	"company":     text(func(e *types.Experience) *string { return &e.Company }),
	"position":    text(func(e *types.Experience) *string { return &e.Position }),
	"startDate":   text(func(e *types.Experience) *string { return &e.StartDate }),
	"endDate":     text(func(e *types.Experience) *string { return &e.EndDate }),
	"description": text(func(e *types.Experience) *string { return &e.Description }),
	"current": current(
		func(e *types.Experience) *bool { return &e.Current },
		func(e *types.Experience) *string { return &e.EndDate },
	),
}

var educationFields = map[string]fieldSetter[types.Education]{
	"institution": text(func(e *types.Education) *string { return &e.Institution }),
	"degree":      text(func(e *types.Education) *string { return &e.Degree }),
	"field":       text(func(e *types.Education) *string { return &e.Field }),
	"startDate":   text(func(e *types.Education) *string { return &e.StartDate }),
	"endDate":     text(func(e *types.Education) *string { return &e.EndDate }),
	"gpa":         text(func(e *types.Education) *string { return &e.GPA }),
	"current": current(
		func(e *types.Education) *bool { return &e.Current },
		func(e *types.Education) *string { return &e.EndDate },
	),
}

var skillFields = map[string]fieldSetter[types.Skill]{
	"name":     text(func(s *types.Skill) *string { return &s.Name }),
	"level":    text(func(s *types.Skill) *types.SkillLevel { return &s.Level }),
	"category": text(func(s *types.Skill) *types.SkillCategory { return &s.Category }),
}

var projectFields = map[string]fieldSetter[types.Project]{
	"title":        text(func(p *types.Project) *string { return &p.Title }),
	"description":  text(func(p *types.Project) *string { return &p.Description }),
	"technologies": text(func(p *types.Project) *string { return &p.Technologies }),
	"startDate":    text(func(p *types.Project) *string { return &p.StartDate }),
	"endDate":      text(func(p *types.Project) *string { return &p.EndDate }),
	"url":          text(func(p *types.Project) *string { return &p.URL }),
	"github":       text(func(p *types.Project) *string { return &p.GitHub }),
	"current": current(
		func(p *types.Project) *bool { return &p.Current },
		func(p *types.Project) *string { return &p.EndDate },
	),
}

var internshipFields = map[string]fieldSetter[types.Internship]{
	"company":     text(func(i *types.Internship) *string { return &i.Company }),
	"position":    text(func(i *types.Internship) *string { return &i.Position }),
	"startDate":   text(func(i *types.Internship) *string { return &i.StartDate }),
	"endDate":     text(func(i *types.Internship) *string { return &i.EndDate }),
	"description": text(func(i *types.Internship) *string { return &i.Description }),
	"location":    text(func(i *types.Internship) *string { return &i.Location }),
	"current": current(
		func(i *types.Internship) *bool { return &i.Current },
		func(i *types.Internship) *string { return &i.EndDate },
	),
}

var achievementFields = map[string]fieldSetter[types.Achievement]{
	"title":        text(func(a *types.Achievement) *string { return &a.Title }),
	"description":  text(func(a *types.Achievement) *string { return &a.Description }),
	"date":         text(func(a *types.Achievement) *string { return &a.Date }),
	"organization": text(func(a *types.Achievement) *string { return &a.Organization }),
	"category":     text(func(a *types.Achievement) *types.AchievementCategory { return &a.Category }),
}

var personalFields = map[string]fieldSetter[types.PersonalInfo]{
	"fullName": text(func(p *types.PersonalInfo) *string { return &p.FullName }),
	"email":    text(func(p *types.PersonalInfo) *string { return &p.Email }),
	"phone":    text(func(p *types.PersonalInfo) *string { return &p.Phone }),
	"location": text(func(p *types.PersonalInfo) *string { return &p.Location }),
	"title":    text(func(p *types.PersonalInfo) *string { return &p.Title }),
	"summary":  text(func(p *types.PersonalInfo) *string { return &p.Summary }),
	"photo":    text(func(p *types.PersonalInfo) *string { return &p.Photo }),
}

// setField adapts a field table to the callback shape Update expects.
func setField[E any](fields map[string]fieldSetter[E], field string, value any) func(E) (E, bool) {
	return func(e E) (E, bool) {
		set, ok := fields[field]
		if !ok {
			return e, false
		}
		if !set(&e, value) {
			return e, false
		}
		return e, true
	}
}

func fieldNames[E any](fields map[string]fieldSetter[E]) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
