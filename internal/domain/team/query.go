package team

import "slices"

// Conferences returns the sorted, de-duplicated conferences of teams in division.
// An empty division means every team.
func Conferences(teams []Team, division string) []string {
	values := make([]string, 0, len(teams))
	for _, t := range teams {
		if division != "" && t.Division != division {
			continue
		}
		values = append(values, t.Conference)
	}
	return sortedUnique(values)
}

// Divisions returns the sorted, de-duplicated divisions present in teams.
func Divisions(teams []Team) []string {
	values := make([]string, 0, len(teams))
	for _, t := range teams {
		values = append(values, t.Division)
	}
	return sortedUnique(values)
}

func ByConference(teams []Team, conference string) []Team {
	return where(teams, func(t Team) bool { return t.Conference == conference })
}

func ByDivision(teams []Team, division string) []Team {
	return where(teams, func(t Team) bool { return t.Division == division })
}

// FindByID returns the team with id, if listed.
func FindByID(teams []Team, id string) (Team, bool) {
	if id == "" {
		return Team{}, false
	}
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

func where(teams []Team, keep func(Team) bool) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func sortedUnique(values []string) []string {
	slices.Sort(values)
	return slices.Compact(values)
}
