// Package engine wires configuration, the transposition table, the search
// node, and the UCI-facing operations together (§5's concurrency model): Go
// runs the search on the calling goroutine, a weighted semaphore of weight 1
// lets only one Go run at a time, and a plain int32 flag (read atomically,
// set by Stop) is the cancellation signal the search polls. The first
// iterative-deepening depth ignores that flag, so a stop issued before it
// completes is only honoured after it completes. The UCI loop calls Go
// synchronously, so it reads a `stop` command only after the search returns.
package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kvchess/chesscore/internal/chess"
	"github.com/kvchess/chesscore/internal/config"
	"github.com/kvchess/chesscore/internal/movegen"
	"github.com/kvchess/chesscore/internal/position"
	"github.com/kvchess/chesscore/internal/search"
	"github.com/kvchess/chesscore/internal/telemetry"
)

// Engine holds everything that persists across UCI commands within a
// process lifetime: the transposition table, the current search node, and
// the synchronisation primitives guarding a search in flight.
type Engine struct {
	cfg     config.Engine
	log     logr.Logger
	instr   telemetry.Instruments
	tt      *search.TranspositionTable
	node    *search.Node
	timeMgr search.TimeManager
	stop    int32
	sem     *semaphore.Weighted
	debug   bool
}

// New builds an Engine from cfg, starting at the standard position.
func New(cfg config.Engine, log logr.Logger) *Engine {
	startPos, _ := position.FromFEN(position.StartingFEN)
	return &Engine{
		cfg:     cfg,
		log:     log,
		instr:   telemetry.NewInstruments(),
		tt:      search.NewTranspositionTable(hashSlots(cfg.HashSizeMB)),
		node:    search.NewNode(startPos),
		timeMgr: timeManagerFor(cfg),
		sem:     semaphore.NewWeighted(1),
	}
}

// timeManagerFor builds the sudden-death/normal time split from the
// configured proportionality constants, per §4.9.
func timeManagerFor(cfg config.Engine) search.TimeManager {
	return search.SuddenDeathTimeManager(
		search.EqualTimeManager(cfg.MovesProp, cfg.IncProp),
		search.EqualTimeManager(cfg.SuddenDeathProp, cfg.IncProp),
	)
}

// hashSlots converts a hash-table size budget in megabytes to a slot count,
// assuming a modest fixed per-slot size; the table is never resized during a
// search (§5's resource policy).
func hashSlots(mb int) int {
	const bytesPerSlot = 24
	n := (mb * 1024 * 1024) / bytesPerSlot
	if n < 1 {
		n = 1
	}
	return n
}

// SetDebug records the `debug [on|off]` setting, which Debug reports; no
// output is switched on or off by it.
func (e *Engine) SetDebug(on bool) { e.debug = on }

// Debug reports whether `debug on` is currently in effect.
func (e *Engine) Debug() bool { return e.debug }

// Name and Author are reported by the `uci` command's id lines.
func (e *Engine) Name() string   { return e.cfg.Name }
func (e *Engine) Author() string { return e.cfg.Author }

// NewGame clears the transposition table and any per-game state, per
// `ucinewgame`.
func (e *Engine) NewGame() {
	e.tt.Clear()
}

// SetPosition loads fen (or the standard starting position) and applies
// each long-algebraic move in order. On any parse or illegality error the
// engine's current position is left unchanged, per §7's error policy for
// `position`.
func (e *Engine) SetPosition(fen string, moves []string) error {
	pos, err := position.FromFEN(fen)
	if err != nil {
		e.log.Error(err, "malformed FEN", "fen", fen)
		return fmt.Errorf("engine: %w", err)
	}
	node := search.NewNode(pos)
	for _, lan := range moves {
		fm, err := resolveMove(node, lan)
		if err != nil {
			e.log.Error(err, "illegal move in position command", "move", lan)
			return fmt.Errorf("engine: move %q: %w", lan, err)
		}
		if !node.MakeMove(fm) {
			node.UnmakeMove()
			e.log.Error(nil, "move leaves own king in check", "move", lan)
			return fmt.Errorf("engine: move %q leaves own king in check", lan)
		}
	}
	e.node = node
	return nil
}

// resolveMove matches a long-algebraic move string against the current
// position's pseudo-legal moves, since LAN alone doesn't disambiguate
// promotion piece capitalisation or move-type flags (castle, en passant).
func resolveMove(node *search.Node, lan string) (chess.FatMove, error) {
	if len(lan) < 4 {
		return chess.FatMove{}, fmt.Errorf("malformed move")
	}
	from, err := chess.ParseSquare(lan[0:2])
	if err != nil {
		return chess.FatMove{}, err
	}
	to, err := chess.ParseSquare(lan[2:4])
	if err != nil {
		return chess.FatMove{}, err
	}

	var buf movegen.Buffer
	movegen.AllMoves(node.Pos, &buf)
	for i := 0; i < buf.Len; i++ {
		fm := buf.Moves[i]
		if fm.Move.From() != from || fm.Move.To() != to {
			continue
		}
		if fm.Move.Type().IsPromotion() {
			if len(lan) < 5 || fm.Move.Type().PromotedPiece().String() != string(lan[4]) {
				continue
			}
		}
		return fm, nil
	}
	return chess.FatMove{}, fmt.Errorf("not a pseudo-legal move in this position")
}

// GoRequest carries every parameter the `go` command can supply.
type GoRequest struct {
	TimeControl search.TimeControl
	Perft       int // 0 means "not a perft request"
}

// GoResult is the outcome of a `go` command: either a perft node count, or a
// completed (possibly time-limited) search.
type GoResult struct {
	PerftNodes uint64
	IsPerft    bool
	Search     search.IterationResult
}

// Go starts a search (or a perft count) and blocks until it completes or is
// stopped. onIteration is invoked once per completed iterative-deepening
// depth so the UCI layer can stream "info" lines as they happen.
func (e *Engine) Go(ctx context.Context, req GoRequest, onIteration func(search.IterationResult)) (GoResult, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return GoResult{}, err
	}
	defer e.sem.Release(1)

	atomic.StoreInt32(&e.stop, 0)

	if req.Perft > 0 {
		nodes := search.Perft(e.node, req.Perft)
		return GoResult{PerftNodes: nodes, IsPerft: true}, nil
	}

	span, end := telemetry.SpanForSearch(ctx)
	defer end()

	searcher := search.NewSearcher(e.node, e.tt, &e.stop)
	deadline := time.Now().Add(e.timeBudget(req.TimeControl))

	result := searcher.IterativeDeepen(deadline, e.cfg.MaxSearchDepth, onIteration)

	e.instr.NodesSearched.Add(ctx, int64(searcher.Nodes))
	e.instr.SearchDepth.Record(ctx, int64(result.Depth))
	span.SetAttributes(
		attribute.Int("search.depth", result.Depth),
		attribute.Int64("search.nodes", int64(searcher.Nodes)),
	)

	return GoResult{Search: result}, nil
}

func (e *Engine) timeBudget(tc search.TimeControl) time.Duration {
	white := e.node.Pos.SideToMove == chess.White
	d := e.timeMgr(tc, white)
	if d <= 0 {
		d = 100 * time.Millisecond
	}
	return d
}

// Stop asks the active search to return its best result so far.
func (e *Engine) Stop() {
	atomic.StoreInt32(&e.stop, 1)
}
