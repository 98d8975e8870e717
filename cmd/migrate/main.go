// Command migrate brings the rule catalog up to the embedded version and can
// rewrite legacy-encoded games in the compact format.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/FelixBlom97/EloStealo/app"
	"github.com/FelixBlom97/EloStealo/app/config"
)

func main() {
	var (
		reencode bool
		batch    int
	)
	flag.BoolVar(&reencode, "reencode", false, "rewrite legacy-encoded games in the compact format")
	flag.IntVar(&batch, "batch", 100, "games per re-encode batch")
	flag.Parse()

	start := time.Now()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	st, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.Store, err)
	}
	defer st.Close()

	if _, err := app.MigrateRules(ctx, st, cfg.Rules.VersionFile); err != nil {
		log.Fatalf("rule migration failed: %v", err)
	}

	if reencode {
		n, err := app.ReencodeLegacy(ctx, st, batch, app.GetWorkerCount(cfg.Workers))
		if err != nil {
			log.Fatalf("re-encode failed after %d games: %v", n, err)
		}
	}
	log.Printf("Took %s", time.Since(start))
}
