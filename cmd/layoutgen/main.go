// Package main provides a command-line layout generator that prints an
// ASCII preview of a generated dungeon, with optional persistence.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dungeondredge/layoutd/internal/config"
	"github.com/dungeondredge/layoutd/internal/dungeon/gen"
	"github.com/dungeondredge/layoutd/internal/dungeon/rank"
	"github.com/dungeondredge/layoutd/internal/observability"
	"github.com/dungeondredge/layoutd/internal/render"
	"github.com/dungeondredge/layoutd/internal/storage/postgres"
)

func main() {
	ranksDir := flag.String("ranks", "content/ranks", "path to rank preset YAML directory")
	rankName := flag.String("rank", "bronze", "rank preset to generate")
	seed := flag.Int64("seed", 0, "generation seed; 0 draws a fresh seed")
	width := flag.Int("width", 0, "grid width override; 0 keeps the preset value")
	height := flag.Int("height", 0, "grid height override; 0 keeps the preset value")
	minRooms := flag.Int("min-rooms", 0, "minimum room count override; 0 keeps the preset value")
	maxRooms := flag.Int("max-rooms", 0, "maximum room count override; 0 keeps the preset value")
	useColor := flag.Bool("color", false, "colorize room glyphs")
	corridors := flag.Bool("corridors", false, "also print the corridor shape view")
	verbose := flag.Bool("verbose", false, "log generation steps to stderr")
	persist := flag.Bool("persist", false, "save the layout to the database")
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; used with -persist")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = observability.NewLogger(config.LoggingConfig{Level: "debug", Format: "console"}, "layoutgen")
		if err != nil {
			log.Fatalf("initializing logger: %v", err)
		}
		defer logger.Sync()
	}

	registry, err := rank.LoadRegistryFromDir(*ranksDir)
	if err != nil {
		log.Fatalf("loading rank presets: %v", err)
	}

	params, err := registry.ParamsFor(*rankName, *seed)
	if err != nil {
		log.Fatalf("resolving rank: %v", err)
	}
	applyOverrides(&params, *width, *height, *minRooms, *maxRooms)

	generator, err := gen.NewGenerator(params, logger)
	if err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	start := time.Now()
	layout, err := generator.Generate()
	if err != nil {
		log.Fatalf("generating layout: %v", err)
	}

	r := render.Renderer{Color: *useColor}
	fmt.Fprintf(os.Stdout, "rank=%s seed=%d rooms=%d incomplete=%v [%s]\n\n",
		*rankName, layout.Seed, len(layout.Rooms), layout.Incomplete, time.Since(start))
	fmt.Fprint(os.Stdout, r.Layout(layout))
	if *corridors {
		fmt.Fprint(os.Stdout, "\n")
		fmt.Fprint(os.Stdout, r.Corridors(layout))
	}

	if *persist {
		ctx := context.Background()
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("connecting to database: %v", err)
		}
		defer pool.Close()

		stored, err := postgres.NewLayoutRepository(pool.DB()).Save(ctx, *rankName, layout)
		if err != nil {
			log.Fatalf("saving layout: %v", err)
		}
		fmt.Fprintf(os.Stdout, "\nsaved layout id=%s\n", stored.ID)
	}
}

// applyOverrides replaces preset fields with any non-zero flag values.
func applyOverrides(params *gen.Params, width, height, minRooms, maxRooms int) {
	if width > 0 {
		params.GridWidth = width
	}
	if height > 0 {
		params.GridHeight = height
	}
	if minRooms > 0 {
		params.MinRooms = minRooms
	}
	if maxRooms > 0 {
		params.MaxRooms = maxRooms
	}
}
