// Plays random self-play games against the environment and reports reward
// statistics. Useful as a smoke test of the reward shaping parameters.
package main

import (
	"context"
	"flag"

	"github.com/apex/log"

	"github.com/chessenv"
)

var (
	numGameFlag  = flag.Int("num_game", 10, "number of games to play")
	workersFlag  = flag.Int("workers", 4, "number of parallel workers")
	seedFlag     = flag.Int64("seed", 1, "base RNG seed, one offset per game")
	maxPliesFlag = flag.Int("max_plies", chessenv.DefaultMaxPlies, "truncate episodes after this many half-moves")

	penaltyRateFlag   = flag.Float64("penalty_rate", 0.01, "base tempo penalty per half-move")
	penaltyGrowthFlag = flag.Float64("penalty_growth", 1.01, "exponential growth of the tempo penalty")
	terminalBonusFlag = flag.Float64("terminal_bonus", 100, "reward magnitude for a decisive result")
)

func main() {
	flag.Parse()

	conf := chessenv.Config{
		PenaltyRate:   float32(*penaltyRateFlag),
		PenaltyGrowth: float32(*penaltyGrowthFlag),
		TerminalBonus: float32(*terminalBonusFlag),
	}
	if err := conf.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	arena := chessenv.MakeArena(conf, *numGameFlag, *workersFlag, *seedFlag)
	arena.MaxPlies = *maxPliesFlag

	stats, results, err := arena.Run(context.Background())
	if err != nil {
		log.WithError(err).Fatal("self play failed")
	}

	for _, r := range results {
		log.WithFields(log.Fields{
			"game":      r.Game,
			"agent":     r.AgentColor.String(),
			"outcome":   r.Outcome.String(),
			"method":    r.Method.String(),
			"plies":     r.Plies,
			"reward":    r.Reward,
			"truncated": r.Truncated,
		}).Info("episode")
	}

	log.WithFields(log.Fields{
		"games":        stats.Games,
		"wins":         stats.Wins,
		"losses":       stats.Losses,
		"draws":        stats.Draws,
		"truncated":    stats.Truncated,
		"mean_reward":  stats.MeanReward,
		"stdev_reward": stats.StdevReward,
		"mean_plies":   stats.MeanPlies,
	}).Info("self play done")
}
