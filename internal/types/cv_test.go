//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_SerializesEmptyCollections(t *testing.T) {
	data, err := json.Marshal(NewDocument())
	require.NoError(t, err)

	s := string(data)
	for _, key := range []string{"experience", "education", "skills", "projects", "internships", "achievements"} {
		assert.Contains(t, s, `"`+key+`":[]`)
	}
}

func TestDocument_UnmarshalOriginalShape(t *testing.T) {
	raw := `{
		"personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com", "phone": "", "location": "", "title": "", "summary": ""},
		"experience": [{"id": "1", "company": "Acme", "position": "Engineer", "startDate": "2020-01", "endDate": "", "current": true, "description": ""}],
		"education": [],
		"skills": [{"id": "s1", "name": "Go", "level": "Expert", "category": "Technical"}],
		"projects": [],
		"internships": [],
		"achievements": []
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "Jane Doe", doc.PersonalInfo.FullName)
	require.Len(t, doc.Experience, 1)
	assert.True(t, doc.Experience[0].Current)
	require.Len(t, doc.Skills, 1)
	assert.Equal(t, LevelExpert, doc.Skills[0].Level)
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantErr string
	}{
		{
			name:   "empty document is valid",
			mutate: func(_ *Document) {},
		},
		{
			name:    "bad email",
			mutate:  func(d *Document) { d.PersonalInfo.Email = "nope" },
			wantErr: "Email",
		},
		{
			name: "bad month",
			mutate: func(d *Document) {
				d.Experience = []Experience{{ID: "1", StartDate: "2020-13"}}
			},
			wantErr: "StartDate",
		},
		{
			name: "bad project url",
			mutate: func(d *Document) {
				d.Projects = []Project{{ID: "p", URL: "not a url"}}
			},
			wantErr: "URL",
		},
		{
			name: "unknown skill level",
			mutate: func(d *Document) {
				d.Skills = []Skill{{ID: "s", Level: "Guru", Category: CategoryTechnical}}
			},
			wantErr: "Level",
		},
		{
			name: "photo must be a data uri",
			mutate: func(d *Document) {
				d.PersonalInfo.Photo = "http://example.com/me.png"
			},
			wantErr: "Photo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument()
			tt.mutate(&doc)
			err := doc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSkillLevel_FillAndRank(t *testing.T) {
	tests := []struct {
		level SkillLevel
		fill  float64
		rank  int
	}{
		{LevelBeginner, 0.25, 1},
		{LevelIntermediate, 0.5, 2},
		{LevelAdvanced, 0.75, 3},
		{LevelExpert, 1.0, 4},
		{"Wizard", 0.5, 0},
		{"", 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.fill, tt.level.Fill())
			assert.Equal(t, tt.rank, tt.level.Rank())
		})
	}
}

func TestSkillCategory_Known(t *testing.T) {
	assert.True(t, CategoryLanguage.Known())
	assert.False(t, SkillCategory("Cooking").Known())
}
