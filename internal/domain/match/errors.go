package match

import (
	"errors"
	"fmt"
)

var ErrMalformedScore = errors.New("malformed set score")

// MalformedScoreError reports a present score that is not a non-negative integer.
type MalformedScoreError struct {
	MatchID string
	Set     int
	Team    int
	Raw     string
}

func (e *MalformedScoreError) Error() string {
	if e.MatchID != "" {
		return fmt.Sprintf("match %s: set %d team %d: malformed score %q", e.MatchID, e.Set, e.Team, e.Raw)
	}
	return fmt.Sprintf("set %d team %d: malformed score %q", e.Set, e.Team, e.Raw)
}

func (e *MalformedScoreError) Is(target error) bool {
	return target == ErrMalformedScore
}
