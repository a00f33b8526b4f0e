package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/stonesim/internal/sim"
)

// ErrResultNotFound is returned when a match result lookup yields no rows.
var ErrResultNotFound = errors.New("match result not found")

// ErrResultExists is returned when a result with the same match ID is already stored.
var ErrResultExists = errors.New("match result already exists")

const insertResultSQL = `INSERT INTO match_results (
	match_id, deck_a, deck_b, winner, turns,
	hero_health_a, hero_health_b, hero_armor_a, hero_armor_b,
	diagnostics, started_at, duration_us
) VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// ResultRepository persists simulated match results.
type ResultRepository struct {
	db *pgxpool.Pool
}

// NewResultRepository creates a ResultRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

func resultArgs(r sim.Result) []any {
	return []any{
		r.MatchID, r.Decks[0], r.Decks[1], r.Winner, r.Turns,
		r.HeroHealth[0], r.HeroHealth[1], r.HeroArmor[0], r.HeroArmor[1],
		r.Diagnostics, r.StartedAt, r.Duration.Microseconds(),
	}
}

func validMatchID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("match id %q: %w", id, err)
	}
	return nil
}

// Save inserts one result.
//
// Precondition: r.MatchID must be a UUID.
// Postcondition: The result is stored, or ErrResultExists is returned if the
// match ID is already present.
func (r *ResultRepository) Save(ctx context.Context, res sim.Result) error {
	if err := validMatchID(res.MatchID); err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, insertResultSQL, resultArgs(res)...); err != nil {
		if isDuplicateKeyError(err) {
			return ErrResultExists
		}
		return fmt.Errorf("inserting match result: %w", err)
	}
	return nil
}

// SaveAll inserts results in a single batch round trip.
//
// Postcondition: On error, results queued before the failing one may already
// be stored.
func (r *ResultRepository) SaveAll(ctx context.Context, results []sim.Result) error {
	if len(results) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, res := range results {
		if err := validMatchID(res.MatchID); err != nil {
			return err
		}
		batch.Queue(insertResultSQL, resultArgs(res)...)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for _, res := range results {
		if _, err := br.Exec(); err != nil {
			if isDuplicateKeyError(err) {
				return fmt.Errorf("match %s: %w", res.MatchID, ErrResultExists)
			}
			return fmt.Errorf("inserting match result %s: %w", res.MatchID, err)
		}
	}
	return nil
}

// Get retrieves a result by match ID.
//
// Postcondition: Returns the Result or ErrResultNotFound.
func (r *ResultRepository) Get(ctx context.Context, matchID string) (sim.Result, error) {
	if err := validMatchID(matchID); err != nil {
		return sim.Result{}, err
	}
	var (
		res        sim.Result
		winner     int16
		durationUS int64
	)
	err := r.db.QueryRow(ctx,
		`SELECT match_id::text, deck_a, deck_b, winner, turns,
		        hero_health_a, hero_health_b, hero_armor_a, hero_armor_b,
		        diagnostics, started_at, duration_us
		 FROM match_results WHERE match_id = $1::uuid`,
		matchID,
	).Scan(&res.MatchID, &res.Decks[0], &res.Decks[1], &winner, &res.Turns,
		&res.HeroHealth[0], &res.HeroHealth[1], &res.HeroArmor[0], &res.HeroArmor[1],
		&res.Diagnostics, &res.StartedAt, &durationUS)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sim.Result{}, ErrResultNotFound
		}
		return sim.Result{}, fmt.Errorf("querying match result: %w", err)
	}
	res.Winner = int(winner)
	res.Duration = time.Duration(durationUS) * time.Microsecond
	return res, nil
}

// Summarize aggregates every stored result of deckA (first player) against deckB.
//
// Postcondition: Returns a zero Summary when no results match.
func (r *ResultRepository) Summarize(ctx context.Context, deckA, deckB string) (sim.Summary, error) {
	var s sim.Summary
	err := r.db.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE winner = 0),
		        count(*) FILTER (WHERE winner = 1),
		        count(*) FILTER (WHERE winner = -1),
		        COALESCE(sum(turns), 0)
		 FROM match_results WHERE deck_a = $1 AND deck_b = $2`,
		deckA, deckB,
	).Scan(&s.Matches, &s.Wins[0], &s.Wins[1], &s.Draws, &s.TotalTurns)
	if err != nil {
		return sim.Summary{}, fmt.Errorf("summarizing %s vs %s: %w", deckA, deckB, err)
	}
	return s, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
