package match

import "strings"

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusCompleted:
		return true
	default:
		return false
	}
}

func ParseStatus(v string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(v)))
	return status, status.Valid()
}

// Tally is the outcome of scanning a match's sets.
type Tally struct {
	SetsPlayed int
	Team1Wins  int
	Team2Wins  int
}

// Count scans sets 1..5 in order. Sets with a missing side are skipped wherever they appear.
// A tied set gives neither side a win.
func Count(m Match) (Tally, error) {
	var t Tally
	for i, set := range m.Sets {
		if !set.Played() {
			continue
		}

		score1, ok := set.Team1.Int()
		if !ok {
			return Tally{}, &MalformedScoreError{MatchID: m.ID, Set: i + 1, Team: 1, Raw: set.Team1.Raw()}
		}
		score2, ok := set.Team2.Int()
		if !ok {
			return Tally{}, &MalformedScoreError{MatchID: m.ID, Set: i + 1, Team: 2, Raw: set.Team2.Raw()}
		}

		t.SetsPlayed++
		switch {
		case score1 > score2:
			t.Team1Wins++
		case score2 > score1:
			t.Team2Wins++
		}
	}
	return t, nil
}

// Status derives the lifecycle state from the tally.
func (t Tally) Status() Status {
	if t.SetsPlayed == 0 {
		return StatusUpcoming
	}
	if t.Team1Wins >= SetsToWin || t.Team2Wins >= SetsToWin {
		return StatusCompleted
	}
	return StatusLive
}

// Classify maps a match to upcoming, live or completed.
// A present score that is not a non-negative integer fails with *MalformedScoreError.
func Classify(m Match) (Status, error) {
	t, err := Count(m)
	if err != nil {
		return "", err
	}
	return t.Status(), nil
}
