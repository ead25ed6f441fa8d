package match

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMatches() []Match {
	completed := sets([2]int{25, 20}, [2]int{25, 18}, [2]int{25, 22})
	live := sets([2]int{25, 20}, [2]int{20, 25})

	return []Match{
		{ID: "1", Date: "2026-09-12", Team1: Side{ID: "neb", Division: "D-I", Conference: "Big Ten"}, Team2: Side{ID: "wis", Division: "D-I", Conference: "Big Ten"}, Sets: completed},
		{ID: "2", Date: "2026-09-12", Team1: Side{ID: "gvsu", Division: "D-II", Conference: "GLIAC"}, Team2: Side{ID: "fsu", Division: "D-II", Conference: "GLIAC"}, Sets: live},
		{ID: "3", Date: "2026-09-13", Team1: Side{ID: "tex", Division: "D-I", Conference: "SEC"}, Team2: Side{ID: "amc", Division: "D-III", Conference: "UAA"}},
		{ID: "4", Date: "2026-09-13T19:00:00", Team1: Side{ID: "uca", Division: "NAIA"}, Team2: Side{ID: "neb", Division: "D-I", Conference: "Big Ten"}, Sets: live},
		{ID: "5", Date: "2026-09-14", Team1: Side{ID: "fhc"}, Team2: Side{ID: "lbc"}},
	}
}

func ids(records []Match) []string {
	out := make([]string, 0, len(records))
	for _, m := range records {
		out = append(out, m.ID)
	}
	return out
}

func TestFilter_EmptyCriteriaIsIdentity(t *testing.T) {
	records := sampleMatches()

	got, err := Filter(records, Criteria{})
	require.NoError(t, err)
	assert.Equal(t, records, got)

	got[0].ID = "changed"
	assert.Equal(t, "1", records[0].ID, "filter must return a new slice")
}

func TestFilter_DivisionMatchesEitherSide(t *testing.T) {
	records := sampleMatches()

	got, err := Filter(records, Criteria{Divisions: []string{"D-I"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "4"}, ids(got))

	for _, m := range records {
		want := m.Team1.Division == "D-I" || m.Team2.Division == "D-I"
		assert.Equal(t, want, contains(ids(got), m.ID), "match %s", m.ID)
	}
}

func TestFilter_StagesAreConjunctive(t *testing.T) {
	records := sampleMatches()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "division and conference",
			criteria: Criteria{Divisions: []string{"D-I"}, Conferences: []string{"Big Ten"}},
			want:     []string{"1", "4"},
		},
		{
			name:     "conference absent on one side",
			criteria: Criteria{Conferences: []string{"UAA"}},
			want:     []string{"3"},
		},
		{
			name:     "team identity",
			criteria: Criteria{TeamIDs: []string{"neb", "lbc"}},
			want:     []string{"1", "4", "5"},
		},
		{
			name:     "status live only",
			criteria: Criteria{Status: &StatusMask{Live: true}},
			want:     []string{"2", "4"},
		},
		{
			name:     "status and division",
			criteria: Criteria{Divisions: []string{"D-I"}, Status: &StatusMask{Upcoming: true, Completed: true}},
			want:     []string{"1", "3"},
		},
		{
			name:     "empty status mask drops everything",
			criteria: Criteria{Status: &StatusMask{}},
			want:     []string{},
		},
		{
			name:     "empty string never matches absent fields",
			criteria: Criteria{Conferences: []string{""}},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(records, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_IsIdempotent(t *testing.T) {
	records := sampleMatches()
	criteria := Criteria{Divisions: []string{"D-I", "D-II"}, Status: &StatusMask{Live: true, Completed: true}}

	once, err := Filter(records, criteria)
	require.NoError(t, err)
	twice, err := Filter(once, criteria)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestFilter_ExcludesMalformedRecords(t *testing.T) {
	records := sampleMatches()
	bad := Match{ID: "bad", Team1: Side{Division: "D-I"}}
	bad.Sets[0] = SetScore{Team1: RawScore("twenty"), Team2: Points(25)}
	records = append([]Match{bad}, records...)

	got, err := Filter(records, Criteria{Status: &StatusMask{Live: true, Completed: true, Upcoming: true}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedScore))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(got))

	got, err = Filter(records, Criteria{Divisions: []string{"D-I"}})
	require.NoError(t, err, "no status stage means no classification")
	assert.Equal(t, []string{"bad", "1", "3", "4"}, ids(got))
}

func TestAccessors(t *testing.T) {
	records := sampleMatches()

	assert.Equal(t, []string{"2"}, ids(ByDivision(records, "D-II")))
	assert.Equal(t, []string{"3"}, ids(ByConference(records, "SEC")))
	assert.Equal(t, []string{"1", "4"}, ids(ByTeam(records, "neb")))
	assert.Equal(t, []string{"3"}, ids(ByDate(records, "2026-09-13")))
	assert.Equal(t, []string{"3", "4"}, ids(ByDatePrefix(records, "2026-09-13")))
	assert.Empty(t, ByTeam(records, ""))
}

func TestMaskOf(t *testing.T) {
	mask := MaskOf(StatusLive, StatusUpcoming)
	assert.True(t, mask.Allows(StatusLive))
	assert.True(t, mask.Allows(StatusUpcoming))
	assert.False(t, mask.Allows(StatusCompleted))
	assert.Equal(t, AllStatuses(), MaskOf(StatusLive, StatusUpcoming, StatusCompleted))
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
