package types

// SkillLevel is an ordered proficiency level.
type SkillLevel string

// Proficiency levels, lowest first.
const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

// SkillLevels lists the known levels in ascending order.
var SkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// Rank returns 1..4 for known levels and 0 for anything else.
func (l SkillLevel) Rank() int {
	for i, known := range SkillLevels {
		if l == known {
			return i + 1
		}
	}
	return 0
}

// Fill returns the proportion of a level bar that is filled.
// Unrecognized levels fall back to the Intermediate proportion.
func (l SkillLevel) Fill() float64 {
	switch l {
	case LevelBeginner:
		return 0.25
	case LevelIntermediate:
		return 0.5
	case LevelAdvanced:
		return 0.75
	case LevelExpert:
		return 1.0
	default:
		return 0.5
	}
}

// SkillCategory is an unordered tag on a Skill.
type SkillCategory string

// Skill categories. SkillCategories is also the display order of skill groups.
const (
	CategoryTechnical SkillCategory = "Technical"
	CategorySoft      SkillCategory = "Soft"
	CategoryLanguage  SkillCategory = "Language"
	CategoryOther     SkillCategory = "Other"
)

// SkillCategories lists the skill categories in display order.
var SkillCategories = []SkillCategory{CategoryTechnical, CategorySoft, CategoryLanguage, CategoryOther}

// Known reports whether c is one of SkillCategories.
func (c SkillCategory) Known() bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// AchievementCategory classifies an Achievement.
type AchievementCategory string

// Achievement categories.
const (
	AchievementAward         AchievementCategory = "Award"
	AchievementCertification AchievementCategory = "Certification"
	AchievementPublication   AchievementCategory = "Publication"
	AchievementCompetition   AchievementCategory = "Competition"
	AchievementOther         AchievementCategory = "Other"
)
