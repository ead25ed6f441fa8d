package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/volleyball-feed/internal/domain/seo"
	"github.com/riskibarqy/volleyball-feed/internal/domain/team"
)

type teamsLister interface {
	Teams(ctx context.Context, division string) FeedResult[team.Team]
}

// SEOService builds page metadata, resolving team pages through the teams feed.
type SEOService struct {
	teams teamsLister
}

func NewSEOService(teams teamsLister) *SEOService {
	return &SEOService{teams: teams}
}

func (s *SEOService) Home() seo.Metadata {
	return seo.Home()
}

func (s *SEOService) Division(division string) (seo.Metadata, error) {
	division = strings.TrimSpace(division)
	if division == "" {
		return seo.Metadata{}, fmt.Errorf("%w: division is required", ErrInvalidInput)
	}
	return seo.Division(division), nil
}

func (s *SEOService) Conference(conference, division string) (seo.Metadata, error) {
	conference = strings.TrimSpace(conference)
	if conference == "" {
		return seo.Metadata{}, fmt.Errorf("%w: conference is required", ErrInvalidInput)
	}
	return seo.Conference(conference, strings.TrimSpace(division)), nil
}

// Team looks the team up in the teams feed of division and builds its page metadata.
func (s *SEOService) Team(ctx context.Context, division, teamID string) (seo.Metadata, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SEOService.Team")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return seo.Metadata{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	feed := s.teams.Teams(ctx, division)
	if feed.Stale {
		return seo.Metadata{}, fmt.Errorf("%w: teams feed unavailable", ErrDependencyUnavailable)
	}

	found, ok := team.FindByID(feed.Items, teamID)
	if !ok {
		return seo.Metadata{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return seo.Team(found.DisplayName(), found.Division, found.Conference), nil
}
