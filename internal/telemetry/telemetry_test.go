package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstrumentsDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		NewInstruments()
	})
}

func TestInstrumentsRecordWithoutError(t *testing.T) {
	instr := NewInstruments()
	ctx := context.Background()
	assert.NotPanics(t, func() {
		instr.NodesSearched.Add(ctx, 42)
		instr.SearchDepth.Record(ctx, 7)
	})
}

func TestSpanForSearchEndIsSafeToCallOnce(t *testing.T) {
	span, end := SpanForSearch(context.Background())
	require.NotNil(t, span)
	assert.NotPanics(t, end)
}

func TestNewLoggerAtDifferentVerbosityDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		log := NewLogger(1)
		log.Info("test message")
	})
}
