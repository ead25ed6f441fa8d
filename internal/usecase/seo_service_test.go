package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/volleyball-feed/internal/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTeams struct {
	feed FeedResult[team.Team]
}

func (s stubTeams) Teams(context.Context, string) FeedResult[team.Team] {
	return s.feed
}

func TestSEOService_Team(t *testing.T) {
	t.Parallel()

	svc := NewSEOService(stubTeams{feed: FeedResult[team.Team]{Items: []team.Team{
		{ID: "neb", Name: "Nebraska", Division: "D-I", Conference: "Big Ten"},
	}}})

	meta, err := svc.Team(context.Background(), "D-I", "neb")
	require.NoError(t, err)
	assert.Equal(t, "Nebraska Volleyball - D-I Big Ten", meta.Title)

	_, err = svc.Team(context.Background(), "D-I", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Team(context.Background(), "D-I", " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSEOService_TeamWithStaleFeed(t *testing.T) {
	t.Parallel()

	svc := NewSEOService(stubTeams{feed: FeedResult[team.Team]{Items: []team.Team{}, Stale: true}})

	_, err := svc.Team(context.Background(), "D-I", "neb")
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestSEOService_DivisionAndConference(t *testing.T) {
	t.Parallel()

	svc := NewSEOService(stubTeams{})

	meta, err := svc.Division("NAIA")
	require.NoError(t, err)
	assert.Contains(t, meta.Description, "NAIA Women's Volleyball")

	_, err = svc.Division("")
	assert.ErrorIs(t, err, ErrInvalidInput)

	meta, err = svc.Conference("Big Ten", "D-I")
	require.NoError(t, err)
	assert.Equal(t, "Big Ten D-I Volleyball - Teams, Scores & Schedule", meta.Title)

	_, err = svc.Conference("", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NotEmpty(t, svc.Home().Keywords)
}
