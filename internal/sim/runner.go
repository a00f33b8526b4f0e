package sim

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/stonesim/internal/config"
	"github.com/cory-johannsen/stonesim/internal/game/dice"
)

// Runner plays a batch of independent matches between two decks.
//
// Each match gets its own entities, rules, diagnostic log and random source,
// so matches run in parallel without sharing mutable state.
type Runner struct {
	decks  [2]Deck
	cfg    config.SimulationConfig
	logger *zap.Logger
	store  ResultStore
	// newSource returns the random source for match i.
	newSource func(i int) dice.Source
}

// NewRunner creates a Runner. store may be nil, in which case results are not
// persisted.
//
// Precondition: cfg must have passed config validation; logger must be non-nil.
func NewRunner(a, b Deck, cfg config.SimulationConfig, logger *zap.Logger, store ResultStore) *Runner {
	r := &Runner{
		decks:  [2]Deck{a, b},
		cfg:    cfg,
		logger: logger,
		store:  store,
	}
	if cfg.Seed == 0 {
		shared := dice.NewCryptoSource()
		r.newSource = func(int) dice.Source { return shared }
	} else {
		r.newSource = func(i int) dice.Source { return dice.NewSeededSource(cfg.Seed + uint64(i)) }
	}
	return r
}

// Run plays cfg.Matches matches with at most cfg.Workers in flight and returns
// the aggregated summary. Results are passed to onResult (if non-nil) in
// completion order; calls to onResult never overlap.
//
// Postcondition: On success Summary.Matches == cfg.Matches. The first match or
// store error cancels the remaining matches and is returned.
func (r *Runner) Run(ctx context.Context, onResult func(Result)) (Summary, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	var (
		mu      sync.Mutex
		summary Summary
	)

	for i := range r.cfg.Matches {
		g.Go(func() error {
			res, err := r.playOne(ctx, i)
			if err != nil {
				return err
			}
			if r.store != nil {
				if err := r.store.Save(ctx, res); err != nil {
					return fmt.Errorf("saving match %s: %w", res.MatchID, err)
				}
			}
			mu.Lock()
			defer mu.Unlock()
			summary.Add(res)
			if onResult != nil {
				onResult(res)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	r.logger.Info("simulation complete",
		zap.Int("matches", summary.Matches),
		zap.Ints("wins", summary.Wins[:]),
		zap.Int("draws", summary.Draws),
		zap.Float64("avg_turns", summary.AverageTurns()),
	)
	return summary, nil
}

func (r *Runner) playOne(ctx context.Context, i int) (Result, error) {
	m, err := NewMatch(r.decks[0], r.decks[1], MatchOptions{
		MaxTurns:          r.cfg.MaxTurns,
		Source:            r.newSource(i),
		Logger:            r.logger,
		MirrorDiagnostics: r.cfg.MirrorDiagnostics,
		ScriptLimit:       r.cfg.ScriptInstructionLimit,
	})
	if err != nil {
		return Result{}, fmt.Errorf("building match %d: %w", i, err)
	}
	res, err := m.Play(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("playing match %s: %w", m.ID, err)
	}
	return res, nil
}
