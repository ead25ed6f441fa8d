package seo

import (
	"fmt"
	"strings"
)

// Metadata is the page title, description and comma-separated keyword list.
type Metadata struct {
	Title       string
	Description string
	Keywords    string
}

type divisionEntry struct {
	key      string
	keywords []string
}

// Order matters: the home page lists division keywords in this order.
var divisions = []divisionEntry{
	{key: "D-I", keywords: []string{
		"NCAA Division I Women's Volleyball",
		"NCAA Division I Volleyball",
		"D1 Women's Volleyball",
		"D1 Volleyball",
		"NCAA DI Women's Volleyball",
		"NCAA DI Volleyball",
	}},
	{key: "D-II", keywords: []string{
		"NCAA Division II Women's Volleyball",
		"NCAA Division II Volleyball",
		"D2 Women's Volleyball",
		"D2 Volleyball",
		"NCAA DII Women's Volleyball",
		"NCAA DII Volleyball",
	}},
	{key: "D-III", keywords: []string{
		"NCAA Division III Women's Volleyball",
		"NCAA Division III Volleyball",
		"D3 Women's Volleyball",
		"D3 Volleyball",
		"NCAA DIII Women's Volleyball",
		"NCAA DIII Volleyball",
	}},
	{key: "NAIA", keywords: []string{
		"NAIA Women's Volleyball",
		"NAIA Volleyball",
		"NAIA College Volleyball",
	}},
	{key: "CCCAA", keywords: []string{
		"CCCAA Women's Volleyball",
		"CCCAA Volleyball",
		"California Community College Women's Volleyball",
		"California Community College Volleyball",
	}},
	{key: "NJCAA D-1", keywords: []string{
		"NJCAA Division I Women's Volleyball",
		"NJCAA Division I Volleyball",
		"NJCAA DI Women's Volleyball",
		"NJCAA DI Volleyball",
	}},
	{key: "NJCAA D-2", keywords: []string{
		"NJCAA Division II Women's Volleyball",
		"NJCAA Division II Volleyball",
		"NJCAA DII Women's Volleyball",
		"NJCAA DII Volleyball",
	}},
	{key: "NJCAA D-3", keywords: []string{
		"NJCAA Division III Women's Volleyball",
		"NJCAA Division III Volleyball",
		"NJCAA DIII Women's Volleyball",
		"NJCAA DIII Volleyball",
	}},
}

var baseKeywords = []string{
	"Women's College Volleyball",
	"College Volleyball",
	"Girls College Volleyball",
	"College Volleyball Scores",
	"College Volleyball Schedule",
	"College Volleyball Teams",
	"Live College Volleyball",
}

var newsKeywords = []string{
	"College Volleyball News",
	"NCAA Volleyball News",
	"NAIA Volleyball News",
	"NJCAA Volleyball News",
	"College Volleyball Updates",
	"Volleyball Rankings",
	"College Volleyball Power Rankings",
}

const keywordSeparator = ", "

// Divisions lists the division keys with a keyword table.
func Divisions() []string {
	out := make([]string, 0, len(divisions))
	for _, d := range divisions {
		out = append(out, d.key)
	}
	return out
}

// DivisionKeywords returns a copy of the keywords for division, or nil for unknown keys.
func DivisionKeywords(division string) []string {
	for _, d := range divisions {
		if d.key == division {
			return append([]string(nil), d.keywords...)
		}
	}
	return nil
}

func BaseKeywords() []string {
	return append([]string(nil), baseKeywords...)
}

// Division builds metadata for a division landing page. Unknown divisions get the base keywords only.
func Division(division string) Metadata {
	keywords := DivisionKeywords(division)
	source := "college volleyball"
	if len(keywords) > 0 {
		source = keywords[0]
	}

	return Metadata{
		Title:       fmt.Sprintf("%s Volleyball - Scores, Schedule & Teams", division),
		Description: fmt.Sprintf("Complete %s volleyball coverage including live scores, schedules, team stats, and standings. Your source for %s.", division, source),
		Keywords:    strings.Join(append(keywords, baseKeywords...), keywordSeparator),
	}
}

func Home() Metadata {
	keywords := make([]string, 0, 64)
	for _, d := range divisions {
		keywords = append(keywords, d.keywords...)
	}
	keywords = append(keywords, baseKeywords...)
	keywords = append(keywords, newsKeywords...)

	return Metadata{
		Title:       "College Volleyball Database - NCAA, NAIA, NJCAA & CCCAA Scores & News",
		Description: "Your complete source for college volleyball scores, schedules, team information, and latest news across NCAA D-I, D-II, D-III, NAIA, NJCAA, and CCCAA divisions.",
		Keywords:    strings.Join(keywords, keywordSeparator),
	}
}

// Conference builds metadata for a conference page. division may be empty.
func Conference(conference, division string) Metadata {
	divisionText := ""
	if division != "" {
		divisionText = division + " "
	}

	return Metadata{
		Title:       fmt.Sprintf("%s %sVolleyball - Teams, Scores & Schedule", conference, divisionText),
		Description: fmt.Sprintf("Complete %s %svolleyball coverage including teams, scores, schedules, and standings. Your source for %s volleyball.", conference, divisionText, conference),
		Keywords: strings.Join([]string{
			conference,
			conference + " volleyball",
			conference + " women's volleyball",
			conference + " teams",
			conference + " scores",
			conference + " schedule",
		}, keywordSeparator),
	}
}

func Team(name, division, conference string) Metadata {
	return Metadata{
		Title:       fmt.Sprintf("%s Volleyball - %s %s", name, division, conference),
		Description: fmt.Sprintf("%s volleyball team information, roster, schedule, and scores. Member of %s in %s.", name, conference, division),
		Keywords: strings.Join([]string{
			name,
			name + " volleyball",
			name + " women's volleyball",
			division,
			conference,
		}, keywordSeparator),
	}
}
