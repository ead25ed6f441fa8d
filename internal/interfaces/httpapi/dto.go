package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/volleyball-feed/internal/domain/match"
	"github.com/riskibarqy/volleyball-feed/internal/domain/news"
	"github.com/riskibarqy/volleyball-feed/internal/domain/seo"
	"github.com/riskibarqy/volleyball-feed/internal/domain/team"
	"github.com/riskibarqy/volleyball-feed/internal/usecase"
)

type feedDTO[T any] struct {
	Items     []T        `json:"items"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	Stale     bool       `json:"stale"`
	Skipped   int        `json:"skipped,omitempty"`
}

type sideDTO struct {
	ID         string `json:"id,omitempty"`
	Label      string `json:"label,omitempty"`
	Name       string `json:"name,omitempty"`
	Division   string `json:"division,omitempty"`
	Conference string `json:"conference,omitempty"`
	Logo       string `json:"logo,omitempty"`
	Rank       *int   `json:"rank,omitempty"`
	SetsWon    int    `json:"sets_won"`
}

type setDTO struct {
	Set   int         `json:"set"`
	Team1 match.Score `json:"team_1"`
	Team2 match.Score `json:"team_2"`
}

type matchDTO struct {
	ID           string   `json:"id"`
	Title        string   `json:"title,omitempty"`
	Division     string   `json:"division,omitempty"`
	Date         string   `json:"date,omitempty"`
	Time         string   `json:"time,omitempty"`
	Location     string   `json:"location,omitempty"`
	Status       string   `json:"status,omitempty"`
	Team1        sideDTO  `json:"team_1"`
	Team2        sideDTO  `json:"team_2"`
	Sets         []setDTO `json:"sets"`
	LiveStatsURL string   `json:"live_stats_url,omitempty"`
	BoxScoreURL  string   `json:"box_score_url,omitempty"`
	WinnerID     string   `json:"winner_id,omitempty"`
}

type teamDTO struct {
	ID         string `json:"id"`
	ShortName  string `json:"short_name,omitempty"`
	Name       string `json:"name"`
	Division   string `json:"division,omitempty"`
	Conference string `json:"conference,omitempty"`
	Logo       string `json:"logo,omitempty"`
	Rank       *int   `json:"rank,omitempty"`
}

type articleDTO struct {
	Title    string  `json:"title"`
	Link     string  `json:"link"`
	Division string  `json:"division"`
	PubDate  *string `json:"pub_date"`
	Image    string  `json:"image,omitempty"`
}

type newsDivisionDTO struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Logo      string `json:"logo,omitempty"`
	LogoWidth int    `json:"logo_width"`
}

type seoDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

type overviewDTO struct {
	Live     feedDTO[matchDTO]   `json:"live"`
	Schedule feedDTO[matchDTO]   `json:"schedule"`
	News     feedDTO[articleDTO] `json:"news"`
}

func toFeedDTO[T, U any](feed usecase.FeedResult[T], convert func(T) U) feedDTO[U] {
	out := feedDTO[U]{
		Items:   make([]U, 0, len(feed.Items)),
		Stale:   feed.Stale,
		Skipped: feed.Skipped,
	}
	if !feed.FetchedAt.IsZero() {
		fetchedAt := feed.FetchedAt.UTC()
		out.FetchedAt = &fetchedAt
	}
	for _, item := range feed.Items {
		out.Items = append(out.Items, convert(item))
	}
	return out
}

func matchFeedToDTO(ctx context.Context, feed usecase.FeedResult[match.Match]) feedDTO[matchDTO] {
	_, span := startSpan(ctx, "httpapi.matchFeedToDTO")
	defer span.End()

	return toFeedDTO(feed, matchToDTO)
}

// matchToDTO leaves Status empty when a set score cannot be read.
func matchToDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:           m.ID,
		Title:        m.Title,
		Division:     m.Division,
		Date:         m.Date,
		Time:         m.Time,
		Location:     m.Location,
		Team1:        sideToDTO(m.Team1),
		Team2:        sideToDTO(m.Team2),
		Sets:         make([]setDTO, 0, match.SetCount),
		LiveStatsURL: m.LiveStatsURL,
		BoxScoreURL:  m.BoxScoreURL,
		WinnerID:     m.WinnerID,
	}
	for i, set := range m.Sets {
		if !set.Team1.Present() && !set.Team2.Present() {
			continue
		}
		out.Sets = append(out.Sets, setDTO{Set: i + 1, Team1: set.Team1, Team2: set.Team2})
	}

	if tally, err := match.Count(m); err == nil {
		out.Status = string(tally.Status())
		out.Team1.SetsWon = tally.Team1Wins
		out.Team2.SetsWon = tally.Team2Wins
	}
	return out
}

func sideToDTO(s match.Side) sideDTO {
	return sideDTO{
		ID:         s.ID,
		Label:      s.Label,
		Name:       s.Name,
		Division:   s.Division,
		Conference: s.Conference,
		Logo:       s.Logo,
		Rank:       s.Rank,
	}
}

func teamToDTO(t team.Team) teamDTO {
	out := teamDTO{
		ID:         t.ID,
		ShortName:  t.ShortName,
		Name:       t.DisplayName(),
		Division:   t.Division,
		Conference: t.Conference,
		Logo:       t.Logo,
	}
	if rank, ok := t.Rank(); ok {
		out.Rank = &rank
	}
	return out
}

func articleToDTO(a news.Article) articleDTO {
	return articleDTO{
		Title:    a.Title,
		Link:     a.Link,
		Division: a.Division,
		PubDate:  a.PubDate,
		Image:    a.Image,
	}
}

func newsDivisionToDTO(key string) newsDivisionDTO {
	logo := news.DivisionLogo(key)
	return newsDivisionDTO{
		Key:       key,
		Label:     news.DivisionLabel(key),
		Logo:      logo.URL,
		LogoWidth: logo.Width,
	}
}

func seoToDTO(m seo.Metadata) seoDTO {
	return seoDTO{
		Title:       m.Title,
		Description: m.Description,
		Keywords:    m.Keywords,
	}
}

func identity[T any](v T) T { return v }
