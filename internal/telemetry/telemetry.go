// Package telemetry wires the engine's ambient logging and instrumentation:
// a logr.Logger (backed by stdr, a stdlib-log implementation of the logr
// interface) for the warn/info-level diagnostics §7 calls for, written to
// stderr, and an OpenTelemetry meter/tracer pair for search instrumentation
// (node counts, completed search depth, one span per search). No exporter is configured
// by default — the API records against the global no-op implementations
// until a caller plugs in a real SDK, which keeps the engine dependency-free
// at the edge while still giving it a real instrumentation surface to grow
// into.
package telemetry

import (
	"context"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// NewLogger returns a logr.Logger writing to stderr (stdout is reserved for
// the UCI protocol stream). verbosity follows logr convention: 0 is
// "info"/always-on, higher numbers are progressively more verbose debug
// levels; the UCI layer logs setoption acknowledgements at V(1).
func NewLogger(verbosity int) logr.Logger {
	std := log.New(os.Stderr, "", log.LstdFlags)
	l := stdr.NewWithOptions(std, stdr.Options{LogCaller: stdr.None})
	stdr.SetVerbosity(verbosity)
	return l
}

// Meter is the engine's single OpenTelemetry meter, named after the module
// so instruments it creates are attributable if a real SDK is ever plugged
// in via otel.SetMeterProvider.
var Meter = otel.Meter("github.com/kvchess/chesscore")

// Tracer is the engine's single tracer, used to span each iterative-
// deepening search ("go" command to "bestmove").
var Tracer = otel.Tracer("github.com/kvchess/chesscore")

// Instruments bundles the counters/histograms the search reports into.
type Instruments struct {
	NodesSearched metric.Int64Counter
	SearchDepth   metric.Int64Histogram
}

// NewInstruments creates the engine's metric instruments against the
// package Meter. Errors from instrument creation are only possible if the
// name/unit combination is malformed, which is a programmer error here, not
// a runtime condition — the panic surfaces it immediately at startup.
func NewInstruments() Instruments {
	nodes, err := Meter.Int64Counter(
		"chesscore.search.nodes",
		metric.WithDescription("total search-tree nodes visited"),
	)
	if err != nil {
		panic(err)
	}
	depth, err := Meter.Int64Histogram(
		"chesscore.search.depth",
		metric.WithDescription("depth reached by each completed iterative-deepening pass"),
	)
	if err != nil {
		panic(err)
	}
	return Instruments{NodesSearched: nodes, SearchDepth: depth}
}

// SpanForSearch starts a span covering one iterative-deepening search
// ("go" command to "bestmove"); callers defer the returned end function.
func SpanForSearch(ctx context.Context) (trace.Span, func()) {
	_, span := Tracer.Start(ctx, "search.go")
	return span, func() { span.End() }
}
