// Package replay rebuilds rating state from an ordered game history after a
// process restart.
package replay

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/puckcast/internal/models"
	"github.com/yourusername/puckcast/internal/rating"
)

// Run replays completed games into the tracker in the order given. Ratings
// are not commutative to replay order, so the history must be
// date-ascending; the first out-of-order game aborts the replay with the
// tracker left at the state reached so far.
func Run(tracker *rating.Tracker, games []models.GameOutcome, logger *logrus.Logger) (int, error) {
	applied := 0
	for i, game := range games {
		if i > 0 && game.GameDate.Before(games[i-1].GameDate) {
			return applied, fmt.Errorf("%w: game %d (%s) predates game %d (%s)",
				models.ErrUnorderedHistory,
				i, game.GameDate.Format("2006-01-02"),
				i-1, games[i-1].GameDate.Format("2006-01-02"))
		}
		if _, err := models.ParseLabel(string(game.Winner)); err != nil {
			return applied, fmt.Errorf("game %d: %w", i, err)
		}
		tracker.Update(game.WinnerTeam(), game.LoserTeam(), game.Margin)
		applied++
	}

	logger.WithFields(logrus.Fields{
		"games": applied,
		"teams": len(tracker.Ratings()),
	}).Info("History replay complete")

	return applied, nil
}
