package shell

import (
	"errors"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lambdaminer/config"
	"github.com/domino14/lambdaminer/game"
	"github.com/domino14/lambdaminer/solver"
)

var errQuit = errors.New("sending quit signal")

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	mapName string
	// history[0] is the start of the game; the last entry is the
	// current position.
	history []*game.Game
	// played[i] took history[i] to history[i+1].
	played []game.Command

	solver *solver.Solver
	// solution is the result of the last solve, kept until the next load.
	solution *solver.Solution
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := &ShellController{config: cfg}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33mlambdaminer>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func (sc *ShellController) stdout() io.Writer {
	if sc.l != nil {
		return sc.l.Stdout()
	}
	return os.Stdout
}

func (sc *ShellController) stderr() io.Writer {
	if sc.l != nil {
		return sc.l.Stderr()
	}
	return os.Stderr
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.stdout())
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.stderr())
}

// Execute runs a single shell line.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	cmd, err := extractFields(line)
	switch {
	case errors.Is(err, errNoData):
		return
	case err != nil:
		sc.showError(err)
		return
	}
	resp, err := sc.dispatch(cmd)
	if errors.Is(err, errQuit) {
		sig <- syscall.SIGINT
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		cmd, err := extractFields(line)
		if errors.Is(err, errNoData) {
			continue
		} else if err != nil {
			sc.showError(err)
			continue
		}
		resp, err := sc.dispatch(cmd)
		if errors.Is(err, errQuit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	log.Debug().Msg("shell cleanup")
	sc.solver = nil
	sc.solution = nil
}
