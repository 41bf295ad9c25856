package pipeline

// State is the lifecycle position of one video in the batch.
type State int

const (
	StatePending State = iota
	StateOpened
	StateStreaming
	StateFinalized
	StateRelocated
	StateFailed
)

var stateNames = [...]string{
	StatePending:   "pending",
	StateOpened:    "opened",
	StateStreaming: "streaming",
	StateFinalized: "finalized",
	StateRelocated: "relocated",
	StateFailed:    "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateRelocated || s == StateFailed
}

// next is the only forward transition allowed from each non-terminal state.
var next = map[State]State{
	StatePending:   StateOpened,
	StateOpened:    StateStreaming,
	StateStreaming: StateFinalized,
	StateFinalized: StateRelocated,
}

// CanTransition reports whether from → to is a legal move. Any
// non-terminal state may fail.
func CanTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	return next[from] == to
}
