package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/yourusername/puckcast/internal/engine"
	"github.com/yourusername/puckcast/internal/models"
)

// Fixture is the JSON shape the CLI loads its team metrics and completed
// games from, standing in for the live collectors.
type Fixture struct {
	Teams []models.TeamMetrics `json:"teams"`
	Games []models.GameOutcome `json:"games"`
}

// LoadFixture reads a fixture file and builds the static provider plus the
// date-sorted game history.
func LoadFixture(path string) (*engine.StaticProvider, []models.GameOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	provider := engine.NewStaticProvider()
	for _, team := range fixture.Teams {
		provider.Put(team)
	}

	games := fixture.Games
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].GameDate.Before(games[j].GameDate)
	})

	return provider, games, nil
}
