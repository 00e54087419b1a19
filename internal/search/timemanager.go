package search

import "time"

// TimeControl carries the remaining clock state reported by the "go"
// command: either a fixed movetime, or each side's remaining time and
// increment plus the number of moves left to the next time control (0 means
// sudden death — no further controls).
type TimeControl struct {
	MoveTime  time.Duration
	White     ClockState
	Black     ClockState
	MovesToGo int
}

// ClockState is one side's remaining time and per-move increment.
type ClockState struct {
	Remaining time.Duration
	Increment time.Duration
}

func (tc TimeControl) forSide(white bool) ClockState {
	if white {
		return tc.White
	}
	return tc.Black
}

// TimeManager suggests how long to think given the current time control.
// Pluggable so the iterative-deepening loop is testable with a fixed budget.
type TimeManager func(tc TimeControl, whiteToMove bool) time.Duration

// latencyBuffer is subtracted from a caller-supplied movetime to leave room
// for protocol/IPC overhead before the deadline is actually reached.
const latencyBuffer = 50 * time.Millisecond

// EqualTimeManager allocates remaining/movesProp + increment/incProp, the
// simplest per-move time split: assume movesProp moves remain and spend an
// even share of the clock plus a share of the increment.
func EqualTimeManager(movesProp, incProp int64) TimeManager {
	return func(tc TimeControl, whiteToMove bool) time.Duration {
		cs := tc.forSide(whiteToMove)
		var budget time.Duration
		if movesProp > 0 {
			budget += cs.Remaining / time.Duration(movesProp)
		}
		if incProp > 0 {
			budget += cs.Increment / time.Duration(incProp)
		}
		return budget
	}
}

// SuddenDeathTimeManager chooses between a manager for when another time
// control is still ahead (MovesToGo > 0) and one for sudden death, and
// honours an explicit movetime override when present; the latency buffer is
// subtracted from that movetime only, not from the clock-based budgets.
func SuddenDeathTimeManager(normal, suddenDeath TimeManager) TimeManager {
	return func(tc TimeControl, whiteToMove bool) time.Duration {
		if tc.MoveTime > 0 {
			if tc.MoveTime > latencyBuffer {
				return tc.MoveTime - latencyBuffer
			}
			return 0
		}
		if tc.MovesToGo > 0 {
			return normal(tc, whiteToMove)
		}
		return suddenDeath(tc, whiteToMove)
	}
}
