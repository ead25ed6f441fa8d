package match

import (
	"errors"
	"strings"
)

// StatusMask selects which lifecycle states survive the status stage.
type StatusMask struct {
	Live      bool
	Completed bool
	Upcoming  bool
}

// AllStatuses keeps every classifiable match.
func AllStatuses() StatusMask {
	return StatusMask{Live: true, Completed: true, Upcoming: true}
}

// MaskOf builds a mask with the given states enabled.
func MaskOf(statuses ...Status) StatusMask {
	var mask StatusMask
	for _, status := range statuses {
		switch status {
		case StatusLive:
			mask.Live = true
		case StatusCompleted:
			mask.Completed = true
		case StatusUpcoming:
			mask.Upcoming = true
		}
	}
	return mask
}

func (m StatusMask) Allows(status Status) bool {
	switch status {
	case StatusLive:
		return m.Live
	case StatusCompleted:
		return m.Completed
	case StatusUpcoming:
		return m.Upcoming
	default:
		return false
	}
}

// Criteria is a conjunction of stages. Empty stages match everything.
// A nil Status skips classification entirely.
type Criteria struct {
	Divisions   []string
	Conferences []string
	TeamIDs     []string
	Status      *StatusMask
}

func (c Criteria) IsZero() bool {
	return len(c.Divisions) == 0 && len(c.Conferences) == 0 && len(c.TeamIDs) == 0 && c.Status == nil
}

type stringSet map[string]struct{}

func newStringSet(values []string) stringSet {
	if len(values) == 0 {
		return nil
	}
	out := make(stringSet, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

func (s stringSet) hasEither(a, b string) bool {
	return s.has(a) || s.has(b)
}

func (s stringSet) has(v string) bool {
	if v == "" {
		return false
	}
	_, ok := s[v]
	return ok
}

// Filter applies division, conference, team identity and status stages in that order.
// The result is a new slice in input order. Matches whose scores cannot be parsed are
// left out when a status stage is present, and their errors are joined into the returned error.
func Filter(records []Match, c Criteria) ([]Match, error) {
	divisions := newStringSet(c.Divisions)
	conferences := newStringSet(c.Conferences)
	teams := newStringSet(c.TeamIDs)

	out := make([]Match, 0, len(records))
	var errs []error
	for _, m := range records {
		if divisions != nil && !divisions.hasEither(m.Team1.Division, m.Team2.Division) {
			continue
		}
		if conferences != nil && !conferences.hasEither(m.Team1.Conference, m.Team2.Conference) {
			continue
		}
		if teams != nil && !teams.hasEither(m.Team1.ID, m.Team2.ID) {
			continue
		}
		if c.Status != nil {
			status, err := Classify(m)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !c.Status.Allows(status) {
				continue
			}
		}
		out = append(out, m)
	}

	return out, errors.Join(errs...)
}

func ByDivision(records []Match, division string) []Match {
	out, _ := Filter(records, Criteria{Divisions: []string{division}})
	return out
}

func ByConference(records []Match, conference string) []Match {
	out, _ := Filter(records, Criteria{Conferences: []string{conference}})
	return out
}

func ByTeam(records []Match, teamID string) []Match {
	out, _ := Filter(records, Criteria{TeamIDs: []string{teamID}})
	return out
}

// ByDate keeps matches whose date equals date exactly.
func ByDate(records []Match, date string) []Match {
	return where(records, func(m Match) bool { return m.Date == date })
}

// ByDatePrefix keeps matches whose date starts with prefix, e.g. "2026-09-12" against "2026-09-12T19:00:00".
func ByDatePrefix(records []Match, prefix string) []Match {
	return where(records, func(m Match) bool { return strings.HasPrefix(m.Date, prefix) })
}

func where(records []Match, keep func(Match) bool) []Match {
	out := make([]Match, 0, len(records))
	for _, m := range records {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
