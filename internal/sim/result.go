package sim

import (
	"context"
	"time"
)

// Draw is the Winner value of a match nobody won.
const Draw = -1

// Result summarizes one finished match.
type Result struct {
	MatchID string
	Decks   [2]string
	// Winner is the index of the winning player, or Draw.
	Winner     int
	Turns      int
	HeroHealth [2]int
	HeroArmor  [2]int
	// Diagnostics is the number of entries in the match's diagnostic log.
	Diagnostics int
	StartedAt   time.Time
	Duration    time.Duration
}

// WinnerName returns the winning deck's name, or "" for a draw.
func (r Result) WinnerName() string {
	if r.Winner == Draw {
		return ""
	}
	return r.Decks[r.Winner]
}

// ResultStore persists match results.
type ResultStore interface {
	Save(ctx context.Context, r Result) error
}

// Summary aggregates the results of a batch.
type Summary struct {
	Matches int
	Wins    [2]int
	Draws   int
	// TotalTurns is the sum of turns over all matches.
	TotalTurns int
}

// Add folds r into the summary.
func (s *Summary) Add(r Result) {
	s.Matches++
	s.TotalTurns += r.Turns
	if r.Winner == Draw {
		s.Draws++
		return
	}
	s.Wins[r.Winner]++
}

// AverageTurns returns the mean match length, or 0 for an empty summary.
func (s Summary) AverageTurns() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Matches)
}

// WinRate returns the fraction of matches won by player i.
func (s Summary) WinRate(i int) float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins[i]) / float64(s.Matches)
}
