package team

import (
	"fmt"
	"strconv"
	"strings"
)

// Team is a college volleyball program as listed by the teams feed.
type Team struct {
	ID         string
	ShortName  string
	Name       string
	Division   string
	Conference string
	Logo       string
	Ranking    *string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// DisplayName prefers the full name and falls back to the short name.
func (t Team) DisplayName() string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	return t.ShortName
}

// Rank returns the AVCA poll position when the team is ranked.
func (t Team) Rank() (int, bool) {
	if t.Ranking == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(*t.Ranking))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
