package chessenv

import (
	"context"
	"sort"
	"sync"

	"github.com/apex/log"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// DefaultMaxPlies bounds an arena episode when the game itself refuses to
// end. The environment imposes no ceiling of its own; this is the caller
// side of that contract.
const DefaultMaxPlies = 512

// Arena plays batches of self-play episodes across independently owned
// environment instances. Every worker goroutine gets its own Env and every
// game its own seeded agent, so results for a given Seed and game number do
// not depend on scheduling.
type Arena struct {
	Conf     Config
	Games    int
	Workers  int
	MaxPlies int
	Seed     int64
}

// MakeArena makes an arena with the default ply ceiling.
func MakeArena(conf Config, games, workers int, seed int64) Arena {
	return Arena{
		Conf:     conf,
		Games:    games,
		Workers:  workers,
		MaxPlies: DefaultMaxPlies,
		Seed:     seed,
	}
}

// EpisodeResult records one finished self-play episode.
type EpisodeResult struct {
	Game       int
	AgentColor chess.Color
	Outcome    chess.Outcome
	Method     chess.Method
	Plies      int
	Reward     float32
	Truncated  bool
}

// Win reports whether the episode was a decisive win for the agent's color.
func (r EpisodeResult) Win() bool {
	return (r.Outcome == chess.WhiteWon && r.AgentColor == chess.White) ||
		(r.Outcome == chess.BlackWon && r.AgentColor == chess.Black)
}

// Stats aggregates a batch of episode results.
type Stats struct {
	Games     int
	Wins      int
	Losses    int
	Draws     int
	Truncated int

	MeanReward  float64
	StdevReward float64
	MeanPlies   float64
}

// Run plays the configured number of games and returns aggregate statistics
// plus the per-episode results ordered by game number.
func (a *Arena) Run(ctx context.Context) (Stats, []EpisodeResult, error) {
	workers := a.Workers
	if workers < 1 {
		workers = 1
	}
	maxPlies := a.MaxPlies
	if maxPlies < 1 {
		maxPlies = DefaultMaxPlies
	}

	g, ctx := errgroup.WithContext(ctx)

	gameNums := make(chan int)
	results := make(chan EpisodeResult)

	g.Go(func() error {
		defer close(gameNums)
		for i := 0; i < a.Games; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameNums <- i:
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			env, err := New(a.Conf)
			if err != nil {
				return err
			}
			for n := range gameNums {
				res, err := a.playEpisode(env, n, maxPlies)
				if err != nil {
					return errors.Wrapf(err, "game %d", n)
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case results <- res:
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	all := make([]EpisodeResult, 0, a.Games)
	g.Go(func() error {
		for r := range results {
			all = append(all, r)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Stats{}, nil, err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Game < all[j].Game })
	return aggregate(all), all, nil
}

func (a *Arena) playEpisode(env *Env, gameNum, maxPlies int) (EpisodeResult, error) {
	agentColor := chess.White
	if gameNum%2 == 1 {
		agentColor = chess.Black
	}
	agent := NewRandomAgent(a.Seed + int64(gameNum))
	obs := env.Reset(agentColor)

	res := EpisodeResult{Game: gameNum, AgentColor: agentColor, Outcome: chess.NoOutcome}
	for {
		action, err := agent.SelectAction(obs, env.ActionCount())
		if err != nil {
			return EpisodeResult{}, err
		}
		step, err := env.Step(action)
		if err != nil {
			return EpisodeResult{}, err
		}
		obs = step.Observation
		res.Plies = env.MoveCount()

		if step.Done {
			outcome, err := env.Outcome()
			if err != nil {
				return EpisodeResult{}, err
			}
			res.Outcome = outcome
			res.Method = env.Method()
			res.Reward = step.Reward
			break
		}
		if env.MoveCount() >= maxPlies {
			res.Truncated = true
			res.Reward = env.CumulativeReward()
			break
		}
	}

	log.WithFields(log.Fields{
		"game":    res.Game,
		"agent":   res.AgentColor.String(),
		"outcome": res.Outcome.String(),
		"plies":   res.Plies,
		"reward":  res.Reward,
	}).Debug("episode finished")
	return res, nil
}

func aggregate(results []EpisodeResult) Stats {
	s := Stats{Games: len(results)}
	rewards := make([]float64, 0, len(results))
	plies := make([]float64, 0, len(results))
	for _, r := range results {
		rewards = append(rewards, float64(r.Reward))
		plies = append(plies, float64(r.Plies))
		switch {
		case r.Truncated:
			s.Truncated++
		case r.Outcome == chess.Draw:
			s.Draws++
		case r.Win():
			s.Wins++
		default:
			s.Losses++
		}
	}
	if len(results) > 0 {
		s.MeanReward = stat.Mean(rewards, nil)
		s.StdevReward = stat.StdDev(rewards, nil)
		s.MeanPlies = stat.Mean(plies, nil)
	}
	return s
}
