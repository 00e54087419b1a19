// Package uci implements the controller described in §6.1: newline-
// delimited commands read from standard input, newline-delimited responses
// written to standard output. Parse errors are logged and the offending
// command is otherwise ignored — the engine never exits on a malformed
// command (§7).
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/kvchess/chesscore/internal/engine"
	"github.com/kvchess/chesscore/internal/position"
	"github.com/kvchess/chesscore/internal/search"
)

// Protocol drives one UCI session over the given reader/writer pair.
type Protocol struct {
	in  *bufio.Scanner
	out io.Writer
	eng *engine.Engine
	log logr.Logger
}

// New builds a Protocol bound to eng, reading commands from in and writing
// responses to out.
func New(in io.Reader, out io.Writer, eng *engine.Engine, log logr.Logger) *Protocol {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	return &Protocol{in: scanner, out: out, eng: eng, log: log}
}

// Run reads commands until `quit` or end-of-input, returning the process
// exit code (always 0 on a clean quit, per §6.1).
func (p *Protocol) Run() int {
	for p.in.Scan() {
		line := strings.TrimSpace(p.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "uci":
			p.handleUCI()
		case "isready":
			fmt.Fprintln(p.out, "readyok")
		case "ucinewgame":
			p.eng.NewGame()
		case "position":
			p.handlePosition(fields[1:])
		case "go":
			p.handleGo(fields[1:])
		case "stop":
			p.eng.Stop()
		case "debug":
			p.handleDebug(fields[1:])
		case "setoption":
			p.handleSetOption(fields[1:])
		case "quit":
			return 0
		default:
			p.log.Info("unrecognised UCI command", "command", fields[0])
		}
	}
	return 0
}

func (p *Protocol) handleUCI() {
	fmt.Fprintf(p.out, "id name %s\n", p.eng.Name())
	fmt.Fprintf(p.out, "id author %s\n", p.eng.Author())
	fmt.Fprintln(p.out, "option name Hash type spin default 16 min 1 max 4096")
	fmt.Fprintln(p.out, "uciok")
}

func (p *Protocol) handleDebug(args []string) {
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "on":
		p.eng.SetDebug(true)
	case "off":
		p.eng.SetDebug(false)
	default:
		p.log.Info("malformed debug argument", "arg", args[0])
	}
}

func (p *Protocol) handleSetOption(args []string) {
	// Only "Hash" is advertised; unknown or malformed options are logged and
	// ignored per §7's "bad option value" policy. The hash size is fixed at
	// construction time in this engine, so acknowledging without applying a
	// change to a running table is the honest behaviour here.
	if len(args) < 4 || args[0] != "name" {
		p.log.Info("malformed setoption command", "args", args)
		return
	}
	p.log.V(1).Info("setoption acknowledged", "name", args[1])
}

func (p *Protocol) handlePosition(args []string) {
	if len(args) == 0 {
		p.log.Info("position command missing argument")
		return
	}

	var fen string
	rest := args[1:]
	switch args[0] {
	case "startpos":
		fen = position.StartingFEN
	case "fen":
		if len(rest) < 6 {
			p.log.Info("malformed position fen: not enough fields", "args", args)
			return
		}
		fen = strings.Join(rest[:6], " ")
		rest = rest[6:]
	default:
		p.log.Info("malformed position command", "args", args)
		return
	}

	var moves []string
	if len(rest) > 0 && rest[0] == "moves" {
		moves = rest[1:]
	}

	if err := p.eng.SetPosition(fen, moves); err != nil {
		p.log.Info("position command rejected", "error", err.Error())
	}
}

func (p *Protocol) handleGo(args []string) {
	req := engine.GoRequest{}
	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) && args[i] != "infinite" {
			break
		}
		switch args[i] {
		case "wtime":
			req.TimeControl.White.Remaining = parseMS(args[i+1])
			i++
		case "btime":
			req.TimeControl.Black.Remaining = parseMS(args[i+1])
			i++
		case "winc":
			req.TimeControl.White.Increment = parseMS(args[i+1])
			i++
		case "binc":
			req.TimeControl.Black.Increment = parseMS(args[i+1])
			i++
		case "movestogo":
			n, _ := strconv.Atoi(args[i+1])
			req.TimeControl.MovesToGo = n
			i++
		case "movetime":
			req.TimeControl.MoveTime = parseMS(args[i+1])
			i++
		case "perft":
			n, _ := strconv.Atoi(args[i+1])
			req.Perft = n
			i++
		}
	}

	result, err := p.eng.Go(context.Background(), req, func(it search.IterationResult) {
		p.printInfo(it)
	})
	if err != nil {
		p.log.Info("go command failed", "error", err.Error())
		return
	}

	if result.IsPerft {
		fmt.Fprintf(p.out, "info string perft nodes %d\n", result.PerftNodes)
		fmt.Fprintf(p.out, "bestmove 0000\n")
		return
	}

	best := "0000"
	if !result.Search.BestMove.IsZero() {
		best = result.Search.BestMove.String()
	}
	fmt.Fprintf(p.out, "bestmove %s\n", best)
}

func (p *Protocol) printInfo(it search.IterationResult) {
	nps := int64(0)
	if it.Elapsed > 0 {
		nps = int64(float64(it.Nodes) / it.Elapsed.Seconds())
	}

	var pvStr strings.Builder
	for i, m := range it.PV {
		if i > 0 {
			pvStr.WriteByte(' ')
		}
		pvStr.WriteString(m.String())
	}

	scoreField := scoreToUCI(it.Score, len(it.PV))
	fmt.Fprintf(p.out, "info depth %d score %s nodes %d time %d nps %d pv %s\n",
		it.Depth, scoreField, it.Nodes, it.Elapsed.Milliseconds(), nps, pvStr.String())
}

// scoreToUCI renders a centipawn or mate score per §6.1's telemetry format.
// A mate score reports the number of plies to mate, halved and ceiling-
// rounded to a move count, with the sign giving the side delivering mate.
func scoreToUCI(score int, pvLen int) string {
	const matedThreshold = search.MaxScore - search.MaxSearchDepth
	if score >= matedThreshold {
		pliesToMate := search.MaxScore - score
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	}
	if score <= -matedThreshold {
		pliesToMate := search.MaxScore + score
		return fmt.Sprintf("mate -%d", (pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

func parseMS(s string) time.Duration {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}
