// Package solver searches the moves of a mining game breadth first and
// reports the best sequence it found.
package solver

import (
	"context"
	"fmt"
	"slices"
	"time"
	"unsafe"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/lambdaminer/board"
	"github.com/domino14/lambdaminer/config"
	"github.com/domino14/lambdaminer/game"
	"github.com/domino14/lambdaminer/quadcache"
	"github.com/domino14/lambdaminer/stats"
	"github.com/domino14/lambdaminer/zobrist"
)

// Nodes between checks of the context and the memory budget.
const checkInterval = 1024

type node struct {
	game   *game.Game
	cmd    game.Command
	parent *node

	snap quadcache.Map[board.Cell]
	key  uint64
}

// Solution is the outcome of a search.
type Solution struct {
	Commands []game.Command
	// Game is the accepted game after all of Commands, including a final
	// abort if there is one.
	Game *game.Game

	Expanded int
	Visited  int
	Elapsed  time.Duration
	// Complete is false when the search stopped early, on cancellation or
	// because it ran out of its memory budget.
	Complete bool
}

// Moves is the solution as a command string, e.g. "LDRA".
func (s *Solution) Moves() string {
	return game.CommandsString(s.Commands)
}

func (s *Solution) Score() int {
	return s.Game.Score()
}

type Solver struct {
	game *game.Game

	dedup            string
	memoryFraction   float64
	progressInterval int

	cache   *quadcache.Cache[board.Cell]
	zobrist *zobrist.Zobrist
	scores  *stats.ScoreSample

	// visited holds one entry per distinct board seen, keyed by snapshot
	// or by zobrist hash depending on dedup.
	snapVisited map[quadcache.Map[board.Cell]]struct{}
	keyVisited  map[uint64]struct{}
	allocated   int
}

// Init prepares a search from g. A nil cfg means the defaults.
func (s *Solver) Init(g *game.Game, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s.game = g
	s.memoryFraction = cfg.GetFloat64(config.ConfigMemoryFraction)
	s.progressInterval = cfg.GetInt(config.ConfigProgressInterval)
	if s.progressInterval <= 0 {
		s.progressInterval = 100000
	}
	return s.SetDedup(cfg.GetString(config.ConfigDedup))
}

// SetDedup picks the visited-set key: config.DedupSnapshot or
// config.DedupZobrist.
func (s *Solver) SetDedup(mode string) error {
	switch mode {
	case config.DedupSnapshot, config.DedupZobrist:
		s.dedup = mode
		return nil
	}
	return fmt.Errorf("unknown dedup mode %q", mode)
}

func (s *Solver) SetMemoryFraction(f float64) {
	s.memoryFraction = f
}

// Cache is the grid cache of the last search, or nil if it did not use one.
func (s *Solver) Cache() *quadcache.Cache[board.Cell] {
	return s.cache
}

// Scores holds the scores of all states dequeued by the last search.
func (s *Solver) Scores() *stats.ScoreSample {
	return s.scores
}

func (s *Solver) reset() {
	b := s.game.Board()
	s.scores = stats.NewScoreSample(stats.DefaultSampleLimit)
	s.allocated = 0
	s.snapVisited = nil
	s.keyVisited = nil
	s.cache = nil
	s.zobrist = nil

	switch s.dedup {
	case config.DedupZobrist:
		s.zobrist = &zobrist.Zobrist{}
		s.zobrist.Initialize(b.Width(), b.Height())
		s.keyVisited = make(map[uint64]struct{})
	default:
		s.cache = quadcache.New[board.Cell](b, board.Empty)
		s.snapVisited = make(map[quadcache.Map[board.Cell]]struct{})
	}
}

func (s *Solver) root() *node {
	n := &node{game: s.game}
	if s.cache != nil {
		n.snap = s.cache.Original()
	} else {
		n.key = s.zobrist.Hash(s.game.Board())
	}
	return n
}

// child derives the visited key of g from its parent's, replaying only the
// cells the step changed.
func (s *Solver) child(parent *node, cmd game.Command, g *game.Game) *node {
	n := &node{game: g, cmd: cmd, parent: parent}
	if s.cache != nil {
		snap := parent.snap
		for _, c := range g.Changes() {
			snap = snap.Write(c.X, c.Y, c.New)
		}
		n.snap = snap
	} else {
		n.key = s.zobrist.AddChanges(parent.key, g.Changes())
	}
	return n
}

// markVisited records n and reports whether it was new.
func (s *Solver) markVisited(n *node) bool {
	if s.snapVisited != nil {
		if _, ok := s.snapVisited[n.snap]; ok {
			return false
		}
		s.snapVisited[n.snap] = struct{}{}
		return true
	}
	if _, ok := s.keyVisited[n.key]; ok {
		return false
	}
	s.keyVisited[n.key] = struct{}{}
	return true
}

func (s *Solver) numVisited() int {
	if s.snapVisited != nil {
		return len(s.snapVisited)
	}
	return len(s.keyVisited)
}

// footprint estimates the bytes held by the search.
func (s *Solver) footprint() uint64 {
	const mapEntryOverhead = 16
	var total uint64
	total += uint64(s.allocated) * uint64(unsafe.Sizeof(node{}))
	if s.cache != nil {
		total += s.cache.Footprint()
		total += uint64(len(s.snapVisited)) * (uint64(unsafe.Sizeof(quadcache.Map[board.Cell]{})) + mapEntryOverhead)
	} else {
		total += uint64(len(s.keyVisited)) * (8 + mapEntryOverhead)
	}
	return total
}

// Solve runs the search. States are expanded in breadth-first order, trying
// the commands in game.SearchCommands order, and a state whose board has been
// seen before is dropped. The search ends when the frontier is empty or a won
// state is dequeued; the best-scoring dequeued state is accepted, and an
// abort is appended if it is still ongoing.
//
// If ctx is cancelled, Solve returns the best solution so far together with
// ctx's error.
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	if s.game == nil {
		return nil, fmt.Errorf("solver not initialized")
	}
	s.reset()
	tstart := time.Now()

	var budget uint64
	if s.memoryFraction > 0 {
		budget = uint64(s.memoryFraction * float64(memory.TotalMemory()))
		log.Debug().Uint64("budget-bytes", budget).Msg("search-memory-budget")
	}

	root := s.root()
	s.markVisited(root)
	s.allocated++
	queue := []*node{root}
	head := 0
	best := root
	complete := true
	var cerr error
	expanded := 0

	for head < len(queue) {
		if expanded%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				log.Info().Err(err).Int("expanded", expanded).Msg("search-interrupted")
				complete = false
				cerr = err
				break
			}
			if budget > 0 && s.footprint() > budget {
				log.Info().Uint64("footprint", s.footprint()).Uint64("budget", budget).
					Msg("search-memory-budget-exceeded")
				complete = false
				break
			}
		}

		cur := queue[head]
		// Release the slot; ancestors stay reachable through parent links.
		queue[head] = nil
		head++
		expanded++
		if expanded%s.progressInterval == 0 {
			log.Info().Int("expanded", expanded).Int("frontier", len(queue)-head).
				Int("visited", s.numVisited()).Int("best", best.game.Score()).
				Msg("search-progress")
		}

		score := cur.game.Score()
		s.scores.Add(score)
		if score > best.game.Score() {
			best = cur
			if score > 0 {
				log.Debug().Int("score", score).Int("moves", cur.game.Moves()).
					Msg("new-best")
			}
		}

		if cur.game.Won() {
			break
		}
		if !cur.game.Ongoing() {
			continue
		}
		for _, cmd := range game.SearchCommands {
			next, err := cur.game.Step(cmd)
			if err != nil {
				return nil, err
			}
			n := s.child(cur, cmd, next)
			if s.markVisited(n) {
				queue = append(queue, n)
				s.allocated++
			}
		}
		if head > len(queue)/2 && head > checkInterval {
			queue = slices.Clone(queue[head:])
			head = 0
		}
	}

	sol, err := s.solution(best)
	if err != nil {
		return nil, err
	}
	sol.Visited = s.numVisited()
	sol.Expanded = expanded
	sol.Elapsed = time.Since(tstart)
	sol.Complete = complete

	ev := log.Info().
		Str("moves", sol.Moves()).
		Int("score", sol.Score()).
		Stringer("outcome", sol.Game.State()).
		Int("expanded", sol.Expanded).
		Int("visited", sol.Visited).
		Bool("complete", complete).
		Float64("time-elapsed-sec", sol.Elapsed.Seconds())
	if s.cache != nil {
		ev = ev.Ints("squares-per-level", s.cache.LevelSizes()).
			Int("squares", lo.Sum(s.cache.LevelSizes()))
	}
	ev.Msg("solve-returning")

	return sol, cerr
}

func (s *Solver) solution(n *node) (*Solution, error) {
	var cmds []game.Command
	for cur := n; cur.parent != nil; cur = cur.parent {
		cmds = append(cmds, cur.cmd)
	}
	slices.Reverse(cmds)
	g := n.game
	if g.Ongoing() {
		var err error
		if g, err = g.Step(game.Abort); err != nil {
			return nil, err
		}
		cmds = append(cmds, game.Abort)
	}
	return &Solution{Commands: cmds, Game: g}, nil
}
