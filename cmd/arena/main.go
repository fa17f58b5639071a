// Command arena plays two engine configurations against each other and
// prints the tally, average thinking time and Elo of each side.
//
//	arena -a hard -b mcts -games 20 -workers 4
//	arena -token ci    # print a bearer token for POST /api/arena
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/config"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/arena"
	"github.com/AlexisMrz/Connect-4-AI-Agent/pkg/auth"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	flagA        = flag.String("a", "alphabeta", "first engine configuration, e.g. \"alphabeta:depth=6\"")
	flagB        = flag.String("b", "medium", "second engine configuration")
	flagGames    = flag.Int("games", 20, "number of games; seats alternate")
	flagWorkers  = flag.Int("workers", 4, "games played concurrently")
	flagBudgetMs = flag.Int("budget_ms", 0, "per-move budget in ms, 0 keeps each preset's own")
	flagToken    = flag.String("token", "", "print a JWT for this name (signed with JWT_SECRET) and exit")
	flagTokenTTL = flag.Duration("token_ttl", 24*time.Hour, "lifetime of the token printed by -token")
	flagVerbose  = flag.Bool("v", false, "log every game")
)

func main() {
	flag.Parse()
	envErr := godotenv.Load()
	cfg := config.LoadConfig()

	level := "warn"
	if *flagVerbose {
		level = "debug"
	}
	config.SetupLogging(level, "console")
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file found")
	}

	if *flagToken != "" {
		token, err := auth.GenerateToken(cfg.JWTSecret, *flagToken, *flagTokenTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to sign token")
		}
		fmt.Println(token)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done := 0
	report, err := arena.Run(ctx, arena.Config{
		A:       *flagA,
		B:       *flagB,
		Games:   *flagGames,
		Workers: *flagWorkers,
		Budget:  time.Duration(*flagBudgetMs) * time.Millisecond,
	}, func(r arena.GameResult) {
		done++
		fmt.Fprintf(os.Stderr, "\rgame %d/%d", done, *flagGames)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("arena failed")
	}

	fmt.Printf("%-28s %5s %6s %5s %10s %8s\n", "agent", "wins", "losses", "draws", "avg ms", "elo")
	for _, s := range []arena.Standing{report.A, report.B} {
		fmt.Printf("%-28s %5d %6d %5d %10.2f %8.1f\n", s.Config, s.Wins, s.Losses, s.Draws, s.AvgMoveMs, s.Elo)
	}
	fmt.Printf("%d games, %d draws\n", report.Games, report.Draws)
}
