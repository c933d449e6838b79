package predict

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/segmentio/fasthash/jody"
	"golang.org/x/exp/rand"
)

// Runner simulates many games concurrently.
type Runner struct {
	Simulator Simulator

	// Seed makes runs reproducible. A negative seed uses the clock.
	Seed int64

	NoProgress bool

	// BeforeRound, when set, is called by RunRounds before the games of each round are simulated.
	BeforeRound func(games []*ScheduledGame) error
}

type gameResult struct {
	key    string
	result Result
	err    error
}

// seed returns the master seed for a run.
func (r Runner) seed() uint64 {
	if r.Seed < 0 {
		return uint64(time.Now().UnixNano())
	}
	return uint64(r.Seed)
}

// gameSource derives an independent random source for one game from the master seed and the game's key,
// so a game draws the same numbers no matter how the goroutines are scheduled.
func gameSource(seed uint64, g *ScheduledGame) rand.Source {
	h := jody.AddUint64(jody.HashString64(g.Key()), uint64(g.Round))
	return rand.NewSource(seed ^ h)
}

// Run simulates every game and returns the results keyed by matchup.
// All games are awaited before returning. The first error encountered is returned.
func (r Runner) Run(ctx context.Context, games []*ScheduledGame) (map[string]Result, error) {
	return r.run(ctx, r.seed(), games, nil)
}

func (r Runner) run(ctx context.Context, seed uint64, games []*ScheduledGame, bar *progressbar.ProgressBar) (map[string]Result, error) {
	out := make(chan gameResult, len(games))

	var wg sync.WaitGroup
	for _, g := range games {
		wg.Add(1)
		go func(g *ScheduledGame) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				out <- gameResult{key: g.Key(), err: err}
				return
			}
			res, err := r.Simulator.Simulate(g, gameSource(seed, g))
			out <- gameResult{key: g.Key(), result: res, err: err}
		}(g)
	}
	wg.Wait()
	close(out)

	results := make(map[string]Result, len(games))
	var firstErr error
	for gr := range out {
		if bar != nil {
			bar.Add(1)
		}
		if gr.err != nil {
			if firstErr == nil {
				firstErr = gr.err
			}
			continue
		}
		if _, dup := results[gr.key]; dup {
			log.Printf("matchup %s simulated more than once: keeping the first result", gr.key)
			continue
		}
		results[gr.key] = gr.result
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// RunRounds simulates rounds one after another, running the games within each round concurrently.
// Results from every round are merged into one map.
func (r Runner) RunRounds(ctx context.Context, rounds [][]*ScheduledGame) (map[string]Result, error) {
	total := 0
	for _, round := range rounds {
		total += len(round)
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetVisibility(!r.NoProgress),
		progressbar.OptionSetDescription("simulating"),
		progressbar.OptionShowCount(),
	)
	defer bar.Finish()

	seed := r.seed()
	results := make(map[string]Result, total)
	for i, round := range rounds {
		if r.BeforeRound != nil {
			if err := r.BeforeRound(round); err != nil {
				return nil, fmt.Errorf("RunRounds: round %d: %w", i+1, err)
			}
		}
		res, err := r.run(ctx, seed, round, bar)
		if err != nil {
			return nil, fmt.Errorf("RunRounds: round %d: %w", i+1, err)
		}
		for k, v := range res {
			results[k] = v
		}
	}
	return results, nil
}
