package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lambdaminer/board"
	"github.com/domino14/lambdaminer/cache"
	"github.com/domino14/lambdaminer/config"
	"github.com/domino14/lambdaminer/game"
	"github.com/domino14/lambdaminer/solver"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format for option")
	errNoMap             = errors.New("please load a map first with the `load` command")
	errNoSolution        = errors.New("please run `solve` first")
	errNothingToUndo     = errors.New("nothing to undo")
)

// sampleMaps can be loaded with `load -sample <name>`.
var sampleMaps = map[string]string{
	"contest1":    board.Contest1,
	"corridor":    board.Corridor,
	"rockpush":    board.RockPush,
	"rockblocked": board.RockBlocked,
	"avalanche":   board.Avalanche,
	"ragged":      board.Ragged,
}

func sampleNames() []string {
	names := make([]string, 0, len(sampleMaps))
	for n := range sampleMaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a line into a command, its positional arguments and
// its -key value options. Quoting follows the shell.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if len(f) > 1 && strings.HasPrefix(f, "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := f[1:]
			cmd.options[key] = append(cmd.options[key], fields[i+1])
			i++
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "load":
		return sc.load(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "move", "m":
		return sc.move(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "reset":
		return sc.reset(cmd)
	case "score":
		return sc.score(cmd)
	case "solve":
		return sc.solve(cmd)
	case "stats":
		return sc.stats(cmd)
	case "info":
		return sc.info(cmd)
	case "help":
		return sc.help(cmd)
	case "exit", "bye":
		return nil, errQuit
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(cmd.cmd))
	return nil, fmt.Errorf("unrecognized command %q; try `help`", cmd.cmd)
}

func (sc *ShellController) current() *game.Game {
	if len(sc.history) == 0 {
		return nil
	}
	return sc.history[len(sc.history)-1]
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	var b *board.Board
	var name string
	var err error
	if sample := cmd.options.String("sample"); sample != "" {
		m, ok := sampleMaps[sample]
		if !ok {
			return nil, fmt.Errorf("no sample map %q; samples are %s", sample,
				strings.Join(sampleNames(), ", "))
		}
		b, err = cache.LoadMapBytes(sc.config, []byte(m))
		name = sample
	} else {
		if len(cmd.args) != 1 {
			return nil, errors.New("usage: load <path> | load -sample <name>")
		}
		b, err = cache.LoadMap(sc.config, cmd.args[0])
		name = cmd.args[0]
	}
	if err != nil {
		return nil, err
	}
	g, err := game.NewGame(b)
	if err != nil {
		return nil, err
	}
	sc.mapName = name
	sc.history = []*game.Game{g}
	sc.played = nil
	sc.solver = nil
	sc.solution = nil
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	g := sc.current()
	if g == nil {
		return nil, errNoMap
	}
	if cmd.options.Bool("solution") {
		if sc.solution == nil {
			return nil, errNoSolution
		}
		sol := sc.solution
		return msg(fmt.Sprintf("Solution: %s\n%s", sol.Moves(),
			sol.Game.ToDisplayText())), nil
	}
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) move(cmd *shellcmd) (*Response, error) {
	g := sc.current()
	if g == nil {
		return nil, errNoMap
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: move <commands>, e.g. move LDRA")
	}
	cmds, err := game.ParseCommands(strings.ToUpper(strings.Join(cmd.args, "")))
	if err != nil {
		return nil, err
	}
	for _, c := range cmds {
		next, err := g.Step(c)
		if err != nil {
			// Keep the moves made so far.
			return nil, err
		}
		sc.history = append(sc.history, next)
		sc.played = append(sc.played, c)
		g = next
	}
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.current() == nil {
		return nil, errNoMap
	}
	n, err := cmd.options.IntDefault("n", 1)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(sc.history)-1 {
		return nil, errNothingToUndo
	}
	sc.history = sc.history[:len(sc.history)-n]
	sc.played = sc.played[:len(sc.played)-n]
	return msg(sc.current().ToDisplayText()), nil
}

func (sc *ShellController) reset(cmd *shellcmd) (*Response, error) {
	if sc.current() == nil {
		return nil, errNoMap
	}
	sc.history = sc.history[:1]
	sc.played = nil
	return msg(sc.current().ToDisplayText()), nil
}

func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	g := sc.current()
	if g == nil {
		return nil, errNoMap
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Map:     %s\n", sc.mapName)
	fmt.Fprintf(&sb, "Played:  %s\n", game.CommandsString(sc.played))
	fmt.Fprintf(&sb, "Moves:   %d\n", g.Moves())
	fmt.Fprintf(&sb, "Lambdas: %d\n", g.LambdasCollected())
	fmt.Fprintf(&sb, "Score:   %d (%s)", g.Score(), g.State())
	return msg(sb.String()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	g := sc.current()
	if g == nil {
		return nil, errNoMap
	}
	if !g.Ongoing() {
		return nil, game.ErrGameOver
	}
	s := &solver.Solver{}
	if err := s.Init(g, sc.config); err != nil {
		return nil, err
	}
	if dedup := cmd.options.String("dedup"); dedup != "" {
		if err := s.SetDedup(dedup); err != nil {
			return nil, err
		}
	}
	ctx := context.Background()
	if t := cmd.options.String("timeout"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, err
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	sol, err := s.Solve(ctx)
	if sol == nil {
		return nil, err
	}
	if err != nil {
		log.Info().Err(err).Msg("solve-stopped-early")
	}
	sc.solver = s
	sc.solution = sol

	var sb strings.Builder
	fmt.Fprintf(&sb, "Solution: %s\n", sol.Moves())
	fmt.Fprintf(&sb, "Score:    %d (%s)\n", sol.Score(), sol.Game.State())
	fmt.Fprintf(&sb, "Visited:  %d boards, expanded %d, in %v", sol.Visited,
		sol.Expanded, sol.Elapsed.Round(time.Millisecond))
	if !sol.Complete {
		sb.WriteString("\nSearch stopped early.")
	}
	if cmd.options.Bool("play") {
		for _, c := range sol.Commands {
			next, err := sc.current().Step(c)
			if err != nil {
				return nil, err
			}
			sc.history = append(sc.history, next)
			sc.played = append(sc.played, c)
		}
		sb.WriteString("\n")
		sb.WriteString(sc.current().ToDisplayText())
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) stats(cmd *shellcmd) (*Response, error) {
	if sc.solver == nil {
		return nil, errNoSolution
	}
	bins, err := cmd.options.IntDefault("bins", 10)
	if err != nil {
		return nil, err
	}
	width, err := cmd.options.IntDefault("width", 50)
	if err != nil {
		return nil, err
	}
	scores := sc.solver.Scores()
	var sb strings.Builder
	sb.WriteString(scores.Summary())
	sb.WriteString("\n")
	if scores.Sampled() > 0 {
		if err := scores.WriteHistogram(&sb, bins, width); err != nil {
			return nil, err
		}
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) info(cmd *shellcmd) (*Response, error) {
	if sc.solver == nil {
		return nil, errNoSolution
	}
	c := sc.solver.Cache()
	if c == nil {
		return msg("Last search used " + config.DedupZobrist + " dedup; no grid cache."), nil
	}
	return msg(strings.TrimRight(c.Info(), "\n")), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage("standard")), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}
