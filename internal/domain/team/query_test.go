package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(v string) *string { return &v }

func sampleTeams() []Team {
	return []Team{
		{ID: "wis", Name: "Wisconsin", Division: "D-I", Conference: "Big Ten", Ranking: strPtr("3")},
		{ID: "neb", Name: "Nebraska", Division: "D-I", Conference: "Big Ten", Ranking: strPtr("1")},
		{ID: "tex", Name: "Texas", Division: "D-I", Conference: "SEC"},
		{ID: "gvsu", ShortName: "GVSU", Division: "D-II", Conference: "GLIAC"},
		{ID: "amc", Name: "Amherst", Division: "D-III", Conference: "NESCAC", Ranking: strPtr("NR")},
	}
}

func TestConferences(t *testing.T) {
	teams := sampleTeams()

	assert.Equal(t, []string{"Big Ten", "SEC"}, Conferences(teams, "D-I"))
	assert.Equal(t, []string{"Big Ten", "GLIAC", "NESCAC", "SEC"}, Conferences(teams, ""))
	assert.Empty(t, Conferences(teams, "NAIA"))
	assert.Empty(t, Conferences(nil, ""))
}

func TestDivisions(t *testing.T) {
	assert.Equal(t, []string{"D-I", "D-II", "D-III"}, Divisions(sampleTeams()))
}

func TestByConferenceAndDivision(t *testing.T) {
	teams := sampleTeams()

	bigTen := ByConference(teams, "Big Ten")
	assert.Len(t, bigTen, 2)
	assert.Equal(t, "wis", bigTen[0].ID, "input order is preserved")

	assert.Len(t, ByDivision(teams, "D-II"), 1)
	assert.Empty(t, ByDivision(teams, "NJCAA D-1"))
}

func TestTeamHelpers(t *testing.T) {
	teams := sampleTeams()

	found, ok := FindByID(teams, "gvsu")
	assert.True(t, ok)
	assert.Equal(t, "GVSU", found.DisplayName())

	_, ok = FindByID(teams, "")
	assert.False(t, ok)

	rank, ok := teams[1].Rank()
	assert.True(t, ok)
	assert.Equal(t, 1, rank)

	_, ok = teams[4].Rank()
	assert.False(t, ok)
	_, ok = teams[2].Rank()
	assert.False(t, ok)

	assert.Error(t, Team{ID: "x"}.Validate())
	assert.NoError(t, teams[0].Validate())
}
