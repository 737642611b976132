// Command simulate plays one match on generated rosters without any
// external dependency and prints the event log.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/maxviazov/hockey-match-engine/internal/engine"
	"github.com/maxviazov/hockey-match-engine/internal/logger"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
	"github.com/maxviazov/hockey-match-engine/internal/repository/memory"
	"github.com/maxviazov/hockey-match-engine/internal/service"
)

func main() {
	var (
		seed     = flag.Uint64("seed", 1, "oracle seed; the same seed replays the same match")
		homeVar  = flag.Uint64("home", 1, "home roster variant")
		awayVar  = flag.Uint64("away", 2, "away roster variant")
		maxTurns = flag.Int("max-turns", 2000, "stop after this many turns even if the match is not over")
		asJSON   = flag.Bool("json", false, "print one JSON event per line")
		verbose  = flag.Bool("v", false, "debug logging on stderr")
	)
	flag.Parse()

	lc := logger.LoggerConfig{Env: "dev", Level: "info", OutputTarget: "stderr", ServiceName: "hockey-simulate"}
	if *verbose {
		lc.Level = "debug"
	}
	appLogger, err := logger.New(&lc)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	store := memory.New()
	svc := service.NewMatchService(store.Matches(), store.Events(), store.Commands(), store.TxManager(), nil, *maxTurns, appLogger)

	ctx := context.Background()
	st, err := svc.CreateMatch(ctx, service.CreateMatchInput{
		Home: engine.SampleTeam("Home", *homeVar),
		Away: engine.SampleTeam("Away", *awayVar),
		Seed: seed,
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("create match")
	}

	res, err := svc.Simulate(ctx, st.ID, *maxTurns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("simulate")
	}

	if err := printLog(ctx, svc, st.ID, *asJSON); err != nil {
		appLogger.Fatal().Err(err).Msg("print events")
	}

	v := res.Match.State
	result := "unfinished"
	if v.Winner != nil {
		result = fmt.Sprintf("winner user%d", *v.Winner)
	}
	appLogger.Info().
		Uint64("seed", *seed).
		Int("turns", v.Turn).
		Int("home", v.User1.Score).
		Int("away", v.User2.Score).
		Str("result", result).
		Msg("match over")
}

// printLog pages through the stored events in turn order.
func printLog(ctx context.Context, svc service.MatchService, id string, asJSON bool) error {
	enc := json.NewEncoder(os.Stdout)
	const limit = 500
	for offset := 0; ; offset += limit {
		page, err := svc.ListEvents(ctx, id, repository.Page{Limit: limit, Offset: offset})
		if err != nil {
			return err
		}
		for _, ev := range page.Items {
			if asJSON {
				if err := enc.Encode(json.RawMessage(ev.Payload)); err != nil {
					return err
				}
				continue
			}
			fmt.Printf("%4d  zone %d  %s\n", ev.Turn, ev.Zone, strings.Join(ev.Actions, " "))
		}
		if offset+limit >= page.Total {
			return nil
		}
	}
}
