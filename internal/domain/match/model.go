package match

// SetCount is the number of sets in a best-of-five volleyball match.
const SetCount = 5

// SetsToWin is the number of set wins that decides a match.
const SetsToWin = 3

// Side is one participant of a match as reported by a feed.
// Empty strings mean the feed did not carry the field.
type Side struct {
	ID         string
	Label      string
	Name       string
	Division   string
	Conference string
	Logo       string
	Rank       *int
}

// SetScore holds both sides of one set. The set counts as played only when both are present.
type SetScore struct {
	Team1 Score
	Team2 Score
}

func (s SetScore) Played() bool {
	return s.Team1.Present() && s.Team2.Present()
}

// Match is an immutable snapshot of one match from the live, results or schedule feed.
type Match struct {
	ID           string
	Title        string
	Division     string
	Date         string
	Time         string
	Location     string
	Team1        Side
	Team2        Side
	Sets         [SetCount]SetScore
	LiveStatsURL string
	BoxScoreURL  string
	WinnerID     string
}

// HasTeam reports whether either side carries the given team id.
func (m Match) HasTeam(teamID string) bool {
	if teamID == "" {
		return false
	}
	return m.Team1.ID == teamID || m.Team2.ID == teamID
}
