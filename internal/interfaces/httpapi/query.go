package httpapi

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/volleyball-feed/internal/domain/match"
)

type matchQuery struct {
	Divisions   []string `validate:"dive,required,max=32"`
	Conferences []string `validate:"dive,required,max=96"`
	TeamIDs     []string `validate:"dive,required,max=64"`
	Statuses    []string `validate:"dive,oneof=live completed upcoming"`
	Date        string   `validate:"omitempty,max=32,printascii"`
}

type divisionQuery struct {
	Division string `validate:"omitempty,max=32"`
}

// queryValues collects a parameter given repeatedly or comma separated: ?team=a&team=b,c.
func queryValues(values url.Values, key string) []string {
	raw := values[key]
	if len(raw) == 0 {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseMatchQuery(values url.Values) matchQuery {
	statuses := queryValues(values, "status")
	for i := range statuses {
		statuses[i] = strings.ToLower(statuses[i])
	}

	return matchQuery{
		Divisions:   queryValues(values, "division"),
		Conferences: queryValues(values, "conference"),
		TeamIDs:     queryValues(values, "team"),
		Statuses:    statuses,
		Date:        strings.TrimSpace(values.Get("date")),
	}
}

// criteria converts a validated query. An absent status parameter leaves the status stage off.
func (q matchQuery) criteria() match.Criteria {
	c := match.Criteria{
		Divisions:   q.Divisions,
		Conferences: q.Conferences,
		TeamIDs:     q.TeamIDs,
	}
	if len(q.Statuses) > 0 {
		statuses := make([]match.Status, 0, len(q.Statuses))
		for _, s := range q.Statuses {
			if parsed, ok := match.ParseStatus(s); ok {
				statuses = append(statuses, parsed)
			}
		}
		mask := match.MaskOf(statuses...)
		c.Status = &mask
	}
	return c
}
