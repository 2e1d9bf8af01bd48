// Package transducer holds the immutable in-memory representation of a
// weighted finite-state transducer and the operations that read it:
// construction from decoded rules, tokenisation, nondeterministic path
// enumeration, and the high-level Lookup query. It plays the role the
// teacher's blob package plays for encoded metric data: the single
// package that knows how to go from a decoded rule set to a queryable
// in-memory value, with the two wire-format codecs built on top of it.
package transducer

import (
	"log"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/fergusq/kfst-go/internal/hash"
	"github.com/fergusq/kfst-go/symbol"
)

// Transition is one outgoing arc of the rule table: a destination state,
// an output symbol, and a weight. The source state and input symbol are
// implied by the map the Transition is stored under.
type Transition struct {
	To     uint32
	Out    symbol.Symbol
	Weight float64
}

// stateRules is the precomputed, query-ready form of one state's row in
// the rule table: a direct map for O(1) literal/unknown/identity lookup,
// plus a deterministically sorted list of the epsilon-class input
// symbols present at this state (flags and EPSILON), since Go map
// iteration order is not stable and the engine's yield order must be.
type stateRules struct {
	bySymbol    map[symbol.Symbol][]Transition
	epsilonSyms []symbol.Symbol
}

// Transducer is the immutable, queryable form of a weighted FST. Values
// are produced once by FromRules (directly, or via format/att.Decode /
// format/binary.Decode) and never mutated afterwards; every exported
// accessor returns either a plain value or a defensive copy.
type Transducer struct {
	finalStates map[uint32]float64
	rules       map[uint32]stateRules

	// symbols is the canonical alphabet in descending-length, ascending-
	// text order: the tokeniser's maximal-munch scan order and the order
	// returned by Symbols().
	symbols []symbol.Symbol

	// byRuneLen buckets the literal String symbols of symbols by their
	// rune length, keyed by xxHash64 of their text, so the tokeniser can
	// probe "is there a symbol of length n starting here" in amortised
	// O(1) per candidate length instead of scanning the whole alphabet.
	byRuneLen     map[int]map[uint64]int
	maxSymbolRune int

	debug  bool
	logger *log.Logger
}

// FromRules constructs a Transducer from a decoded rule set. It is the
// sole place that establishes the canonical symbol order the tokeniser
// and the encoders both rely on: symbols are sorted by descending text
// length, ties broken by ascending text, giving a stable, deterministic
// maximal-munch scan order regardless of the order rules/symbols were
// supplied in.
//
// finalStates and rules are not retained by reference beyond what is
// needed to build the immutable internal representation; the caller's
// slices/maps may be reused or discarded after the call returns.
func FromRules(
	finalStates map[uint32]float64,
	rules map[uint32]map[symbol.Symbol][]Transition,
	symbols []symbol.Symbol,
	debug bool,
) *Transducer {
	t := &Transducer{
		finalStates: make(map[uint32]float64, len(finalStates)),
		rules:       make(map[uint32]stateRules, len(rules)),
		debug:       debug,
	}
	if debug {
		t.logger = log.New(os.Stderr, "", 0)
	}

	for state, w := range finalStates {
		t.finalStates[state] = w
	}

	for state, bySymbol := range rules {
		sr := stateRules{bySymbol: make(map[symbol.Symbol][]Transition, len(bySymbol))}
		for sym, transitions := range bySymbol {
			cp := make([]Transition, len(transitions))
			copy(cp, transitions)
			sr.bySymbol[sym] = cp
			if sym.IsEpsilon() {
				sr.epsilonSyms = append(sr.epsilonSyms, sym)
			}
		}
		sort.Slice(sr.epsilonSyms, func(i, j int) bool {
			return symbol.Less(sr.epsilonSyms[i], sr.epsilonSyms[j])
		})
		t.rules[state] = sr
	}

	t.symbols = make([]symbol.Symbol, len(symbols))
	copy(t.symbols, symbols)
	sort.SliceStable(t.symbols, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(t.symbols[i].Text()), utf8.RuneCountInString(t.symbols[j].Text())
		if li != lj {
			return li > lj
		}
		return t.symbols[i].Text() < t.symbols[j].Text()
	})

	t.byRuneLen = make(map[int]map[uint64]int)
	for i, sym := range t.symbols {
		if !sym.IsString() {
			continue
		}
		n := utf8.RuneCountInString(sym.Text())
		if n == 0 {
			continue
		}
		if n > t.maxSymbolRune {
			t.maxSymbolRune = n
		}
		bucket, ok := t.byRuneLen[n]
		if !ok {
			bucket = make(map[uint64]int)
			t.byRuneLen[n] = bucket
		}
		bucket[hash.ID(sym.Text())] = i
	}

	return t
}

// FinalStates returns a copy of the final-state weight map.
func (t *Transducer) FinalStates() map[uint32]float64 {
	out := make(map[uint32]float64, len(t.finalStates))
	for k, v := range t.finalStates {
		out[k] = v
	}
	return out
}

// IsFinal reports whether state is accepting, and its weight if so.
func (t *Transducer) IsFinal(state uint32) (float64, bool) {
	w, ok := t.finalStates[state]
	return w, ok
}

// Symbols returns a copy of the transducer's alphabet in descending-
// length, ascending-text order (the tokeniser's scan order).
func (t *Transducer) Symbols() []symbol.Symbol {
	out := make([]symbol.Symbol, len(t.symbols))
	copy(out, t.symbols)
	return out
}

// InputSymbols returns the deduplicated input symbols of every outgoing
// transition of state. It is O(arity of state): a direct map index
// followed by a key collection, with no pass over the full rule table.
func (t *Transducer) InputSymbols(state uint32) []symbol.Symbol {
	sr, ok := t.rules[state]
	if !ok {
		return nil
	}
	out := make([]symbol.Symbol, 0, len(sr.bySymbol))
	for sym := range sr.bySymbol {
		out = append(out, sym)
	}
	return out
}

// Debug reports whether the transducer was constructed with tracing
// enabled.
func (t *Transducer) Debug() bool { return t.debug }

// TransitionRecord is one transition in the deterministic order the
// wire-format encoders iterate in: ascending source state, then a fixed
// total order over that state's input symbols, then the stored order
// within that symbol's transition list.
type TransitionRecord struct {
	From   uint32
	To     uint32
	In     symbol.Symbol
	Out    symbol.Symbol
	Weight float64
}

// AllTransitions returns every transition of the transducer in the
// deterministic order format/att and format/binary encode in. Go map
// iteration over states and per-state symbols has no stable order, so
// this canonicalises both: states ascending by id, symbols ascending by
// symbol.Less, with the original transition-list order preserved within
// each symbol.
func (t *Transducer) AllTransitions() []TransitionRecord {
	states := make([]uint32, 0, len(t.rules))
	for s := range t.rules {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	var out []TransitionRecord
	for _, state := range states {
		sr := t.rules[state]
		syms := make([]symbol.Symbol, 0, len(sr.bySymbol))
		for sym := range sr.bySymbol {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return symbol.Less(syms[i], syms[j]) })

		for _, sym := range syms {
			for _, tr := range sr.bySymbol[sym] {
				out = append(out, TransitionRecord{From: state, To: tr.To, In: sym, Out: tr.Out, Weight: tr.Weight})
			}
		}
	}
	return out
}

// FinalStateRecord is one accepting state and its weight.
type FinalStateRecord struct {
	State  uint32
	Weight float64
}

// SortedFinalStates returns every accepting state in ascending state-id
// order, the order the wire-format encoders iterate final states in.
func (t *Transducer) SortedFinalStates() []FinalStateRecord {
	out := make([]FinalStateRecord, 0, len(t.finalStates))
	for s, w := range t.finalStates {
		out = append(out, FinalStateRecord{State: s, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

// rulesFor returns the precomputed rule row for state, and whether one
// exists (a state with no outgoing transitions is legitimate — a dead
// end or an accepting state with no further arcs).
func (t *Transducer) rulesFor(state uint32) (stateRules, bool) {
	sr, ok := t.rules[state]
	return sr, ok
}
