// Command simulator plays robot commands read from stdin on a map and
// prints the board and score after each one.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lambdaminer/cache"
	"github.com/domino14/lambdaminer/config"
	"github.com/domino14/lambdaminer/game"
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
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	if len(cfg.Args()) != 1 {
		log.Error().Msg("expected a file name")
		os.Exit(1)
	}
	b, err := cache.LoadMap(cfg, cfg.Args()[0])
	if err != nil {
		log.Error().Err(err).Msg("unable-to-load-map")
		os.Exit(1)
	}
	g, err := game.NewGame(b)
	if err != nil {
		log.Error().Err(err).Msg("unable-to-start-game")
		os.Exit(1)
	}
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if _, err := simulate(g, os.Stdin, w); err != nil {
		log.Error().Err(err).Msg("simulation-failed")
	}
}

// simulate plays commands from in while the game is ongoing. Letters are
// case-insensitive and anything that is not a command is skipped.
func simulate(g *game.Game, in io.Reader, out io.Writer) (*game.Game, error) {
	fmt.Fprintln(out, g.Board())
	r := bufio.NewReader(in)
	for g.Ongoing() {
		ch, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return g, err
		}
		if 'a' <= ch && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		c := game.Command(ch)
		if !c.Valid() {
			continue
		}
		if g, err = g.Step(c); err != nil {
			return g, err
		}
		fmt.Fprintln(out, g.Board())
		fmt.Fprintf(out, "Moves:   %d\n", g.Moves())
		fmt.Fprintf(out, "Lambdas: %d\n", g.LambdasCollected())
		fmt.Fprintf(out, "Score:   %d\n", g.Score())
	}
	switch g.State() {
	case game.Won:
		fmt.Fprintln(out, "Game was won")
	case game.Lost:
		fmt.Fprintln(out, "Game was lost")
	case game.Aborted:
		fmt.Fprintln(out, "Game was aborted")
	default:
		fmt.Fprintln(out, "Game was interrupted")
	}
	return g, nil
}
