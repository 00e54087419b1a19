package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"

	"github.com/kvchess/chesscore/internal/config"
	"github.com/kvchess/chesscore/internal/engine"
	"github.com/kvchess/chesscore/internal/search"
)

func newTestProtocol(in string) (*Protocol, *bytes.Buffer) {
	eng := engine.New(config.DefaultEngine(), logr.Discard())
	var out bytes.Buffer
	return New(strings.NewReader(in), &out, eng, logr.Discard()), &out
}

func TestHandleUCIAnnouncesIdentityAndOptions(t *testing.T) {
	p, out := newTestProtocol("uci\nquit\n")
	code := p.Run()
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "id name chesscore")
	assert.Contains(t, out.String(), "uciok")
}

func TestIsReadyRespondsReadyOK(t *testing.T) {
	p, out := newTestProtocol("isready\nquit\n")
	p.Run()
	assert.Contains(t, out.String(), "readyok")
}

func TestGoPerftReportsNodeCount(t *testing.T) {
	p, out := newTestProtocol("go perft 2\nquit\n")
	p.Run()
	assert.Contains(t, out.String(), "perft nodes 400")
	assert.Contains(t, out.String(), "bestmove 0000")
}

func TestPositionCommandIsAppliedBeforeGo(t *testing.T) {
	p, out := newTestProtocol("position startpos moves e2e4\ngo perft 1\nquit\n")
	p.Run()
	// Black to move after 1.e4 has 20 pseudo-legal replies.
	assert.Contains(t, out.String(), "perft nodes 20")
}

func TestMalformedCommandsAreIgnoredNotFatal(t *testing.T) {
	p, out := newTestProtocol("position\nsetoption\nbananas\nisready\nquit\n")
	code := p.Run()
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "readyok")
}

func TestScoreToUCIRendersCentipawnsAndMate(t *testing.T) {
	assert.Equal(t, "cp 37", scoreToUCI(37, 1))
	assert.Equal(t, "cp -12", scoreToUCI(-12, 1))
	assert.Equal(t, "mate 1", scoreToUCI(search.MaxScore-1, 1))
	assert.Equal(t, "mate -1", scoreToUCI(-(search.MaxScore-1), 1))
}
