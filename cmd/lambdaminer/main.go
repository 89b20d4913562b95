package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lambdaminer/automatic"
	"github.com/domino14/lambdaminer/cache"
	"github.com/domino14/lambdaminer/config"
	"github.com/domino14/lambdaminer/game"
	"github.com/domino14/lambdaminer/solver"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	log.Logger = logger
	log.Debug().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	// An interrupt stops the search; the best moves so far are still
	// printed.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	args := cfg.Args()
	switch {
	case cfg.GetString(config.ConfigManifest) != "":
		var m *automatic.Manifest
		m, err = automatic.LoadManifest(cfg.GetString(config.ConfigManifest))
		if err == nil {
			err = solveBatch(ctx, cfg, m)
		}
	case len(args) > 1:
		err = solveBatch(ctx, cfg, automatic.ManifestFromPaths(args))
	case len(args) == 1:
		err = solveOne(ctx, cfg, args[0])
	default:
		err = errors.New("expected a file name")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("lambdaminer-failed")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func solveOne(ctx context.Context, cfg *config.Config, path string) error {
	b, err := cache.LoadMap(cfg, path)
	if err != nil {
		return err
	}
	g, err := game.NewGame(b)
	if err != nil {
		return err
	}
	s := &solver.Solver{}
	if err := s.Init(g, cfg); err != nil {
		return err
	}
	sol, err := s.Solve(ctx)
	if sol != nil {
		fmt.Println(sol.Moves())
	}
	return err
}

func solveBatch(ctx context.Context, cfg *config.Config, m *automatic.Manifest) error {
	_, err := automatic.SolveBatch(ctx, cfg, m, cfg.GetInt(config.ConfigThreads), os.Stdout)
	return err
}
