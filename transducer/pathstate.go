package transducer

import "github.com/fergusq/kfst-go/symbol"

// PathState is the record threaded through path enumeration: the
// current automaton state, the weight accumulated so far, independent
// flag states for the input and output sides, and the symbols emitted
// so far. InputIndices is nil unless the caller requested alignment
// tracking, in which case it holds one entry per emitted output symbol:
// the index, in the tokenised input, of the input symbol that produced it.
//
// A PathState is never mutated in place once created; every transition
// taken during enumeration produces a new PathState, leaving every
// sibling branch's copy untouched. This is what lets the engine explore
// many branches from the same ancestor state without them stepping on
// each other's output buffers or flag states.
type PathState struct {
	State        uint32
	Weight       float64
	InputFlags   symbol.FlagState
	OutputFlags  symbol.FlagState
	Output       []symbol.Symbol
	InputIndices []int

	// postInputAdvance records whether an epsilon transition has been
	// taken since the input was exhausted, so RunResult can expose it to
	// aligned lookups without the caller having to re-derive it.
	postInputAdvance bool
}

// DefaultPathState returns the canonical start state: state 0, zero
// weight, empty flag states, and no emitted output.
func DefaultPathState() PathState {
	return PathState{State: 0}
}

// RunResult is one path state yielded by RunFST. RunFST only ever
// yields path states that reached an accepting state with the input
// fully consumed, so Finished is always true on a yielded result; it is
// still carried on the type for parity with the tuple shape the core
// API is specified with.
type RunResult struct {
	// Finished reports that State.State is an accepting state and the
	// input was fully consumed to reach it.
	Finished bool
	// PostInputAdvance reports that at least one epsilon transition was
	// taken after the input was exhausted to reach this result.
	PostInputAdvance bool
	State            PathState
}
