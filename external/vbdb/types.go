package vbdb

import "github.com/riskibarqy/volleyball-feed/internal/domain/match"

// matchPayload covers the live, results and schedule feeds. Fields absent
// from a feed stay nil.
type matchPayload struct {
	MatchID      *string `json:"match_id"`
	Title        *string `json:"title"`
	Division     *string `json:"division"`
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	Location     *string `json:"location"`
	LiveStatsURL *string `json:"live_stats_url"`
	BoxScore     *string `json:"box_score"`
	WinnerID     *string `json:"winner_id"`

	Team1           *string     `json:"team_1"`
	Team1ID         *string     `json:"team_1_id"`
	Team1Name       *string     `json:"team_1_name"`
	Team1Division   *string     `json:"team_1_division"`
	Team1Conference *string     `json:"team_1_conference"`
	Team1Logo       *string     `json:"team_1_logo"`
	Team1Rank       match.Score `json:"team_1_rank"`

	Team2           *string     `json:"team_2"`
	Team2ID         *string     `json:"team_2_id"`
	Team2Name       *string     `json:"team_2_name"`
	Team2Division   *string     `json:"team_2_division"`
	Team2Conference *string     `json:"team_2_conference"`
	Team2Logo       *string     `json:"team_2_logo"`
	Team2Rank       match.Score `json:"team_2_rank"`

	Set1Team1 match.Score `json:"set_1_team_1"`
	Set1Team2 match.Score `json:"set_1_team_2"`
	Set2Team1 match.Score `json:"set_2_team_1"`
	Set2Team2 match.Score `json:"set_2_team_2"`
	Set3Team1 match.Score `json:"set_3_team_1"`
	Set3Team2 match.Score `json:"set_3_team_2"`
	Set4Team1 match.Score `json:"set_4_team_1"`
	Set4Team2 match.Score `json:"set_4_team_2"`
	Set5Team1 match.Score `json:"set_5_team_1"`
	Set5Team2 match.Score `json:"set_5_team_2"`
}

type teamPayload struct {
	TeamID      string  `json:"team_id"`
	ShortName   string  `json:"short_name"`
	Name        string  `json:"name"`
	Division    string  `json:"division"`
	Conference  string  `json:"conference"`
	Logo        string  `json:"logo"`
	AVCARanking *string `json:"avca_ranking"`
}

type articlePayload struct {
	Title    string  `json:"title"`
	Link     string  `json:"link"`
	Division string  `json:"division"`
	PubDate  *string `json:"pub_date"`
	Image    string  `json:"img"`
}
