package document

import (
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skills(ids ...string) []types.Skill {
	out := make([]types.Skill, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.Skill{ID: id, Name: "skill " + id})
	}
	return out
}

func TestAdd_AppendsWithoutMutatingInput(t *testing.T) {
	in := make([]types.Skill, 2, 4)
	copy(in, skills("a", "b"))
	snapshot := append([]types.Skill(nil), in...)

	out := Add(in, types.Skill{ID: "c"})

	require.Len(t, out, 3)
	assert.Equal(t, "c", out[2].ID)
	assert.Equal(t, snapshot, in)
	// spare capacity in the input must stay untouched
	assert.Equal(t, types.Skill{}, in[:3][2])
	out[0].Name = "changed"
	assert.Equal(t, "skill a", in[0].Name)
}

func TestAdd_NilCollection(t *testing.T) {
	out := Add[types.Skill](nil, types.Skill{ID: "x"})
	require.Len(t, out, 1)
	assert.Equal(t, "x", out[0].ID)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name    string
		in      []types.Skill
		id      string
		wantIDs []string
	}{
		{name: "middle", in: skills("a", "b", "c"), id: "b", wantIDs: []string{"a", "c"}},
		{name: "first", in: skills("a", "b", "c"), id: "a", wantIDs: []string{"b", "c"}},
		{name: "absent id", in: skills("a", "b"), id: "zzz", wantIDs: []string{"a", "b"}},
		{name: "empty collection", in: skills(), id: "a", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]types.Skill(nil), tt.in...)
			out := Remove(tt.in, tt.id)

			ids := make([]string, 0, len(out))
			for _, s := range out {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, before, tt.in)
		})
	}
}

func TestRemove_AbsentIDEqualsInput(t *testing.T) {
	in := skills("a", "b")
	assert.Equal(t, in, Remove(in, "nope"))
}

func TestUpdate_ChangesOnlyMatchingEntry(t *testing.T) {
	in := skills("a", "b", "c")
	out := Update(in, "b", func(s types.Skill) (types.Skill, bool) {
		s.Name = "Go"
		return s, true
	})

	require.Len(t, out, 3)
	assert.Equal(t, "skill a", out[0].Name)
	assert.Equal(t, "Go", out[1].Name)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "skill c", out[2].Name)
	assert.Equal(t, "skill b", in[1].Name)
}

func TestUpdate_RejectedSetKeepsEntry(t *testing.T) {
	in := skills("a")
	out := Update(in, "a", func(s types.Skill) (types.Skill, bool) {
		s.Name = "ignored"
		return s, false
	})
	assert.Equal(t, in, out)
}

func TestUpdate_AbsentID(t *testing.T) {
	in := skills("a", "b")
	called := false
	out := Update(in, "zzz", func(s types.Skill) (types.Skill, bool) {
		called = true
		return s, true
	})
	assert.False(t, called)
	assert.Equal(t, in, out)
}

func TestContains(t *testing.T) {
	list := skills("a", "b")
	assert.True(t, Contains(list, "b"))
	assert.False(t, Contains(list, "c"))
	assert.False(t, Contains[types.Skill](nil, "a"))
}
