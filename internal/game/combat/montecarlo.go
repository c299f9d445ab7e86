package combat

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
)

// DuelStats aggregates a Monte Carlo batch of duels.
type DuelStats struct {
	Samples   int `json:"samples"`
	ActorWins int `json:"actor_wins"`
	EnemyWins int `json:"enemy_wins"`
	// Draws counts mutual knockouts and round-limit outcomes.
	Draws             int     `json:"draws"`
	RoundLimitReached int     `json:"round_limit_reached"`
	AvgRounds         float64 `json:"avg_rounds"`
}

type sample struct {
	winner Winner
	rounds int
}

// DuelMany runs samples independent duels from cfg. Sample i is seeded with
// cfg.Seed+i (wrapping) and writes only its own slot, so the aggregate is the
// same for any worker count or schedule.
//
// Precondition: samples >= 0; workers < 1 runs one sample at a time.
// Postcondition: ActorWins+EnemyWins+Draws == Samples on success.
func DuelMany(ctx context.Context, cfg DuelConfig, samples, workers int, logger *zap.Logger) (DuelStats, error) {
	if samples < 0 {
		return DuelStats{}, fmt.Errorf("combat: samples must be >= 0, got %d", samples)
	}
	if err := cfg.Validate(); err != nil {
		return DuelStats{}, err
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]sample, samples)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range samples {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			run := cfg
			run.Seed = cfg.Seed + uint64(i)
			run.Source = nil
			res, err := runDuel(run, eventlog.Discard, logger)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			results[i] = sample{winner: res.Winner, rounds: res.Rounds}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DuelStats{}, err
	}

	stats := DuelStats{Samples: samples}
	total := 0
	for _, s := range results {
		total += s.rounds
		switch s.winner {
		case WinnerActor:
			stats.ActorWins++
		case WinnerEnemy:
			stats.EnemyWins++
		case WinnerMaxRounds:
			stats.Draws++
			stats.RoundLimitReached++
		default:
			stats.Draws++
		}
	}
	if samples > 0 {
		stats.AvgRounds = float64(total) / float64(samples)
	}
	logger.Info("monte carlo batch finished",
		zap.Uint64("base_seed", cfg.Seed),
		zap.Int("samples", samples),
		zap.Int("workers", workers),
		zap.Int("actor_wins", stats.ActorWins),
		zap.Int("enemy_wins", stats.EnemyWins),
		zap.Int("draws", stats.Draws),
	)
	return stats, nil
}
