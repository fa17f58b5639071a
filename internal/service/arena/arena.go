package arena

import (
	"context"
	"sync"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/bot"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Config describes a head-to-head series between two preset configurations.
type Config struct {
	A       string        `json:"a"`
	B       string        `json:"b"`
	Games   int           `json:"games"`
	Workers int           `json:"workers"`
	Budget  time.Duration `json:"-"` // per move, 0 keeps each preset's budget
}

// Side names one participant in a series.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// GameResult is the outcome of one game. Winner is empty for a draw.
type GameResult struct {
	Index  int  `json:"index"`
	First  Side `json:"first"`
	Winner Side `json:"winner,omitempty"`
	Moves  int  `json:"moves"`
}

// Standing is one side's tally over the series.
type Standing struct {
	Config    string        `json:"config"`
	Wins      int           `json:"wins"`
	Losses    int           `json:"losses"`
	Draws     int           `json:"draws"`
	Moves     int           `json:"moves"`
	Thinking  time.Duration `json:"-"`
	AvgMoveMs float64       `json:"avg_move_ms"`
	Elo       float64       `json:"elo"`
}

type Report struct {
	A       Standing     `json:"a"`
	B       Standing     `json:"b"`
	Draws   int          `json:"draws"`
	Games   int          `json:"games"`
	Results []GameResult `json:"results"`
}

// Validate checks both configurations and the series size.
func (c Config) Validate() error {
	if c.Games <= 0 {
		return errors.Errorf("games must be positive, got %d", c.Games)
	}
	for _, side := range []string{c.A, c.B} {
		if _, err := bot.NewAgentFromConfig(side); err != nil {
			return errors.WithMessagef(err, "agent %q", side)
		}
	}
	return nil
}

type gameOutcome struct {
	result   GameResult
	thinking [2]time.Duration // indexed by side: 0 = a, 1 = b
	moves    [2]int
}

// Run plays the series. Seats alternate: A moves first in even games, B in
// odd ones. Games run concurrently on up to Workers goroutines; onGame, if
// set, is called once per finished game (serialised, in completion order).
func Run(ctx context.Context, cfg Config, onGame func(GameResult)) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	log.Info().Str("component", "arena").Str("a", cfg.A).Str("b", cfg.B).
		Int("games", cfg.Games).Int("workers", workers).Msg("starting series")

	outcomes := make([]gameOutcome, cfg.Games)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			out, err := playGame(gctx, cfg, i)
			if err != nil {
				return errors.WithMessagef(err, "game %d", i)
			}
			outcomes[i] = out
			if onGame != nil {
				mu.Lock()
				onGame(out.result)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := tally(cfg, outcomes)
	log.Info().Str("component", "arena").
		Int("a_wins", report.A.Wins).Int("b_wins", report.B.Wins).Int("draws", report.Draws).
		Float64("a_elo", report.A.Elo).Float64("b_elo", report.B.Elo).Msg("series finished")
	return report, nil
}

// playGame runs one game to completion. Each side gets a fresh agent and is
// always shown the board from its own point of view.
func playGame(ctx context.Context, cfg Config, index int) (gameOutcome, error) {
	agentA, err := bot.NewAgentFromConfig(cfg.A)
	if err != nil {
		return gameOutcome{}, err
	}
	agentB, err := bot.NewAgentFromConfig(cfg.B)
	if err != nil {
		return gameOutcome{}, err
	}

	first := SideA
	agents := map[domain.Player]*bot.Agent{domain.Self: agentA, domain.Opponent: agentB}
	sides := map[domain.Player]int{domain.Self: 0, domain.Opponent: 1}
	if index%2 == 1 {
		first = SideB
		agents[domain.Self], agents[domain.Opponent] = agentB, agentA
		sides[domain.Self], sides[domain.Opponent] = 1, 0
	}

	out := gameOutcome{result: GameResult{Index: index, First: first}}
	game := domain.NewGame()
	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return gameOutcome{}, err
		}

		seat := game.CurrentSeat
		view := game.View(seat)
		d, err := agents[seat].Decide(view, domain.Self, view.LegalColumns(), cfg.Budget)
		if err != nil {
			return gameOutcome{}, err
		}
		if _, err := game.MakeMove(seat, d.Column); err != nil {
			return gameOutcome{}, errors.Wrapf(err, "seat %s played column %d", seat, d.Column)
		}

		side := sides[seat]
		out.thinking[side] += d.Elapsed
		out.moves[side]++
	}

	out.result.Moves = game.MoveCount
	if game.Status == domain.StatusWon {
		if sides[game.Winner] == 0 {
			out.result.Winner = SideA
		} else {
			out.result.Winner = SideB
		}
	}
	log.Debug().Str("component", "arena").Int("game", index).Str("first", string(first)).
		Str("winner", string(out.result.Winner)).Int("moves", out.result.Moves).Msg("game finished")
	return out, nil
}

// tally folds outcomes in game order, so ratings do not depend on which
// worker finished first.
func tally(cfg Config, outcomes []gameOutcome) Report {
	report := Report{
		A:       Standing{Config: cfg.A, Elo: domain.InitialRating},
		B:       Standing{Config: cfg.B, Elo: domain.InitialRating},
		Games:   len(outcomes),
		Results: make([]GameResult, 0, len(outcomes)),
	}

	for _, out := range outcomes {
		score := 0.5
		switch out.result.Winner {
		case SideA:
			report.A.Wins++
			report.B.Losses++
			score = 1
		case SideB:
			report.B.Wins++
			report.A.Losses++
			score = 0
		default:
			report.A.Draws++
			report.B.Draws++
			report.Draws++
		}
		report.A.Elo, report.B.Elo = domain.UpdateElo(report.A.Elo, report.B.Elo, score)

		report.A.Moves += out.moves[0]
		report.B.Moves += out.moves[1]
		report.A.Thinking += out.thinking[0]
		report.B.Thinking += out.thinking[1]
		report.Results = append(report.Results, out.result)
	}

	report.A.AvgMoveMs = averageMs(report.A.Thinking, report.A.Moves)
	report.B.AvgMoveMs = averageMs(report.B.Thinking, report.B.Moves)
	return report
}

func averageMs(total time.Duration, moves int) float64 {
	if moves == 0 {
		return 0
	}
	return float64(total) / float64(time.Millisecond) / float64(moves)
}
