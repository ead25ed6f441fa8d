package vbdb

import (
	"strings"

	"github.com/riskibarqy/volleyball-feed/internal/domain/match"
	"github.com/riskibarqy/volleyball-feed/internal/domain/news"
	"github.com/riskibarqy/volleyball-feed/internal/domain/team"
)

func mapMatches(items []matchPayload) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, mapMatch(item))
	}
	return out
}

func mapMatch(item matchPayload) match.Match {
	m := match.Match{
		ID:           str(item.MatchID),
		Title:        str(item.Title),
		Division:     str(item.Division),
		Date:         str(item.Date),
		Time:         str(item.Time),
		Location:     str(item.Location),
		LiveStatsURL: str(item.LiveStatsURL),
		BoxScoreURL:  str(item.BoxScore),
		WinnerID:     str(item.WinnerID),
		Team1: match.Side{
			ID:         str(item.Team1ID),
			Label:      str(item.Team1),
			Name:       str(item.Team1Name),
			Division:   str(item.Team1Division),
			Conference: str(item.Team1Conference),
			Logo:       str(item.Team1Logo),
			Rank:       rank(item.Team1Rank),
		},
		Team2: match.Side{
			ID:         str(item.Team2ID),
			Label:      str(item.Team2),
			Name:       str(item.Team2Name),
			Division:   str(item.Team2Division),
			Conference: str(item.Team2Conference),
			Logo:       str(item.Team2Logo),
			Rank:       rank(item.Team2Rank),
		},
	}
	m.Sets = [match.SetCount]match.SetScore{
		{Team1: item.Set1Team1, Team2: item.Set1Team2},
		{Team1: item.Set2Team1, Team2: item.Set2Team2},
		{Team1: item.Set3Team1, Team2: item.Set3Team2},
		{Team1: item.Set4Team1, Team2: item.Set4Team2},
		{Team1: item.Set5Team1, Team2: item.Set5Team2},
	}
	if m.Team1.Name == "" {
		m.Team1.Name = m.Team1.Label
	}
	if m.Team2.Name == "" {
		m.Team2.Name = m.Team2.Label
	}
	return m
}

func mapTeams(items []teamPayload) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		out = append(out, team.Team{
			ID:         strings.TrimSpace(item.TeamID),
			ShortName:  item.ShortName,
			Name:       item.Name,
			Division:   item.Division,
			Conference: item.Conference,
			Logo:       item.Logo,
			Ranking:    item.AVCARanking,
		})
	}
	return out
}

func mapArticles(items []articlePayload) []news.Article {
	out := make([]news.Article, 0, len(items))
	for _, item := range items {
		out = append(out, news.Article{
			Title:    item.Title,
			Link:     item.Link,
			Division: item.Division,
			PubDate:  item.PubDate,
			Image:    item.Image,
		})
	}
	return out
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func rank(score match.Score) *int {
	n, ok := score.Int()
	if !ok || n == 0 {
		return nil
	}
	return &n
}
