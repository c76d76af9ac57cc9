package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/puckcast/internal/models"
)

// MetricProvider supplies per-team, per-venue rolling statistics for a given
// date. Collectors and storage live behind this interface; the engine never
// fetches data itself.
type MetricProvider interface {
	Metrics(ctx context.Context, team string, venue models.Venue, date time.Time) (models.TeamMetrics, error)
}

// StaticProvider is an in-memory MetricProvider for tests and fixtures.
type StaticProvider struct {
	metrics map[string]models.TeamMetrics
}

// NewStaticProvider creates an empty static provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{metrics: make(map[string]models.TeamMetrics)}
}

// Put stores metrics for a team at a venue.
func (p *StaticProvider) Put(m models.TeamMetrics) {
	p.metrics[staticKey(m.Team, m.Venue)] = m
}

// Metrics implements MetricProvider. Unknown teams resolve to league-average
// defaults rather than an error.
func (p *StaticProvider) Metrics(_ context.Context, team string, venue models.Venue, _ time.Time) (models.TeamMetrics, error) {
	if m, ok := p.metrics[staticKey(team, venue)]; ok {
		return m, nil
	}
	return models.DefaultTeamMetrics(team, venue), nil
}

func staticKey(team string, venue models.Venue) string {
	return fmt.Sprintf("%s|%s", team, venue)
}
