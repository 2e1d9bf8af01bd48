package transducer

import (
	"iter"

	"github.com/fergusq/kfst-go/symbol"
)

// RunFST explores the transducer nondeterministically from start over
// input, yielding every path state that reaches an accepting state with
// input fully consumed. The returned iter.Seq suspends after every
// yield and abandons the remaining exploration the moment the caller's
// range loop stops consuming it — a `break` inside `for r := range
// t.RunFST(...)` unwinds the whole call stack at the next yield
// boundary with no leaked resources, since no goroutine or open
// resource is ever held across a yield.
//
// Exploration has no bound on epsilon cycles; on a transducer whose
// epsilon transitions form a cycle this may not terminate, matching the
// reference engine's behaviour. Lookup/LookupAligned offer
// WithMaxEpsilonDepth for callers who need a backstop.
func (t *Transducer) RunFST(input []symbol.Symbol, start PathState) iter.Seq[RunResult] {
	return t.runFST(input, start, -1)
}

// runFST is the internal entry point shared by the public, unbounded
// RunFST and Lookup's depth-capped variant. maxEpsilonDepth < 0 means
// unbounded.
func (t *Transducer) runFST(input []symbol.Symbol, start PathState, maxEpsilonDepth int) iter.Seq[RunResult] {
	return func(yield func(RunResult) bool) {
		t.explore(start, input, 0, 0, maxEpsilonDepth, yield)
	}
}

// explore is the depth-first recursive step. remaining is the not-yet-
// consumed suffix of the tokenised input; cursor is its absolute
// position in the original input, used for alignment records. It
// returns false once the caller's yield has signalled it wants no more
// results, propagating the abort up through the recursion.
func (t *Transducer) explore(s PathState, remaining []symbol.Symbol, cursor, epsilonDepth, maxEpsilonDepth int, yield func(RunResult) bool) bool {
	sr, hasRules := t.rulesFor(s.State)

	if len(remaining) == 0 {
		if w, ok := t.IsFinal(s.State); ok {
			finished := s
			finished.Weight += w
			if !yield(RunResult{Finished: true, PostInputAdvance: s.postInputAdvance, State: finished}) {
				return false
			}
		}
	} else if hasRules {
		// 1. Literal consume: every transition keyed by the exact next
		// input symbol, in stored order.
		head := remaining[0]
		if transitions, ok := sr.bySymbol[head]; ok {
			for _, tr := range transitions {
				next, ok := t.commit(s, head, tr, head, true, cursor)
				if !ok {
					continue
				}
				if !t.explore(next, remaining[1:], cursor+1, 0, maxEpsilonDepth, yield) {
					return false
				}
			}
		}
	}

	// 2. Input-side epsilon transitions (EPSILON and every Flag), taken
	// without consuming remaining[0]. Explored regardless of whether
	// remaining is empty.
	if hasRules && (maxEpsilonDepth < 0 || epsilonDepth < maxEpsilonDepth) {
		head, hasHead := symbol.Symbol{}, false
		if len(remaining) > 0 {
			head, hasHead = remaining[0], true
		}
		for _, esym := range sr.epsilonSyms {
			for _, tr := range sr.bySymbol[esym] {
				next, ok := t.commit(s, esym, tr, head, hasHead, cursor)
				if !ok {
					continue
				}
				if len(remaining) == 0 {
					next.postInputAdvance = true
				}
				if !t.explore(next, remaining, cursor, epsilonDepth+1, maxEpsilonDepth, yield) {
					return false
				}
			}
		}
	}

	// 3. Unknown/identity handling: only when the next input symbol is
	// itself an unknown-fallback symbol.
	if hasRules && len(remaining) > 0 && remaining[0].IsUnknown() {
		head := remaining[0]
		for _, specialSym := range [...]symbol.Symbol{symbol.Unknown(), symbol.Identity()} {
			transitions, ok := sr.bySymbol[specialSym]
			if !ok {
				continue
			}
			for _, tr := range transitions {
				next, ok := t.commit(s, specialSym, tr, head, true, cursor)
				if !ok {
					continue
				}
				if !t.explore(next, remaining[1:], cursor+1, 0, maxEpsilonDepth, yield) {
					return false
				}
			}
		}
	}

	return true
}

// commit applies one transition to s, producing the successor PathState
// or ok=false if the transition's flag conditions reject the branch.
//
// inSym is the symbol driving this transition (the literal symbol
// matched, the epsilon/flag symbol taken, or the special unknown/
// identity symbol). head/hasHead describe the input symbol currently at
// the front of the remaining input before this transition runs,
// regardless of whether this transition consumes it — this is the
// "current input symbol I[0]" IDENTITY substitutes and the position
// alignment records against. cursorPos is that symbol's absolute offset
// in the original input.
func (t *Transducer) commit(s PathState, inSym symbol.Symbol, tr Transition, head symbol.Symbol, hasHead bool, cursorPos int) (PathState, bool) {
	if t.debug {
		t.logger.Printf("%d -> %d %s %s", s.State, tr.To, inSym.Text(), tr.Out.Text())
	}

	next := s
	next.State = tr.To
	next.Weight = s.Weight + tr.Weight
	next.postInputAdvance = false

	if inSym.IsFlag() {
		flags, ok := symbol.Apply(inSym, s.InputFlags)
		if !ok {
			return PathState{}, false
		}
		next.InputFlags = flags
	}

	if tr.Out.IsFlag() {
		flags, ok := symbol.Apply(tr.Out, s.OutputFlags)
		if !ok {
			return PathState{}, false
		}
		next.OutputFlags = flags
	}

	if emitted, ok := emission(tr.Out, head, hasHead); ok {
		next.Output = appendSymbol(s.Output, emitted)
		if s.InputIndices != nil {
			next.InputIndices = appendIndex(s.InputIndices, cursorPos)
		}
	}

	return next, true
}

// emission computes what a transition's output symbol contributes to
// the emitted string: nothing for EPSILON/Flag, the current input
// symbol for IDENTITY when one exists (substituting the real glyph for
// the placeholder), or the output symbol's own text otherwise.
func emission(out, head symbol.Symbol, hasHead bool) (symbol.Symbol, bool) {
	if out.IsEpsilon() {
		return symbol.Symbol{}, false
	}
	if out.IsIdentity() && hasHead {
		return head, true
	}
	return out, true
}

func appendSymbol(s []symbol.Symbol, sym symbol.Symbol) []symbol.Symbol {
	out := make([]symbol.Symbol, len(s)+1)
	copy(out, s)
	out[len(s)] = sym
	return out
}

func appendIndex(s []int, idx int) []int {
	out := make([]int, len(s)+1)
	copy(out, s)
	out[len(s)] = idx
	return out
}
