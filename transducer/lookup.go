package transducer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fergusq/kfst-go/symbol"
)

// OutputWeight is one result of Lookup: an emitted output string and
// the weight of the lowest-weight accepting path that produced it.
type OutputWeight struct {
	Output string
	Weight float64
}

// AlignedSymbol pairs one emitted output symbol with the index, in the
// tokenised input, of the input symbol that produced it.
type AlignedSymbol struct {
	InputIndex int
	Symbol     symbol.Symbol
}

// AlignedOutputWeight is one result of LookupAligned.
type AlignedOutputWeight struct {
	Symbols []AlignedSymbol
	Weight  float64
}

// lookupOptions configures Lookup/LookupAligned beyond their required
// parameters.
type lookupOptions struct {
	maxEpsilonDepth int // 0 means unbounded
}

// Option configures a Lookup or LookupAligned call.
type Option func(*lookupOptions)

// WithMaxEpsilonDepth bounds the number of consecutive epsilon
// transitions explored along any single path before that branch is
// abandoned. It defaults to unset (no cap), matching the reference
// engine's unbounded epsilon recursion; set it to guard against
// malformed epsilon-cyclic transducers that would otherwise not
// terminate.
func WithMaxEpsilonDepth(n int) Option {
	return func(o *lookupOptions) { o.maxEpsilonDepth = n }
}

func resolveOptions(opts []Option) lookupOptions {
	var o lookupOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Lookup tokenises text, enumerates accepting paths from start, and
// returns the weight-ascending, output-deduplicated result set: tokenise
// → enumerate → filter-accepting → materialise → sort-ascending →
// dedupe-by-first-occurrence (so the lowest weight attestation of each
// output string is the one kept).
func (t *Transducer) Lookup(text string, start uint32, allowUnknown bool, opts ...Option) ([]OutputWeight, error) {
	o := resolveOptions(opts)

	symbols, err := t.SplitToSymbols(text, allowUnknown)
	if err != nil {
		return nil, err
	}

	maxDepth := -1
	if o.maxEpsilonDepth > 0 {
		maxDepth = o.maxEpsilonDepth
	}

	startState := DefaultPathState()
	startState.State = start

	var results []OutputWeight
	for r := range t.runFST(symbols, startState, maxDepth) {
		if !r.Finished {
			continue
		}
		var b strings.Builder
		for _, sym := range r.State.Output {
			b.WriteString(sym.Text())
		}
		results = append(results, OutputWeight{Output: b.String(), Weight: r.State.Weight})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Weight < results[j].Weight })

	seen := make(map[string]bool, len(results))
	out := make([]OutputWeight, 0, len(results))
	for _, r := range results {
		if seen[r.Output] {
			continue
		}
		seen[r.Output] = true
		out = append(out, r)
	}

	return out, nil
}

// LookupAligned is Lookup's alignment-preserving counterpart: each
// result additionally carries, for every emitted output symbol, the
// index in the tokenised input of the input symbol that produced it. Duplicates are detected on the combination of
// output string and the full alignment sequence, rather than the output
// string alone.
func (t *Transducer) LookupAligned(text string, start uint32, allowUnknown bool, opts ...Option) ([]AlignedOutputWeight, error) {
	o := resolveOptions(opts)

	symbols, err := t.SplitToSymbols(text, allowUnknown)
	if err != nil {
		return nil, err
	}

	maxDepth := -1
	if o.maxEpsilonDepth > 0 {
		maxDepth = o.maxEpsilonDepth
	}

	startState := DefaultPathState()
	startState.State = start
	startState.InputIndices = []int{}

	var results []AlignedOutputWeight
	for r := range t.runFST(symbols, startState, maxDepth) {
		if !r.Finished {
			continue
		}
		aligned := make([]AlignedSymbol, len(r.State.Output))
		for i, sym := range r.State.Output {
			idx := -1
			if i < len(r.State.InputIndices) {
				idx = r.State.InputIndices[i]
			}
			aligned[i] = AlignedSymbol{InputIndex: idx, Symbol: sym}
		}
		results = append(results, AlignedOutputWeight{Symbols: aligned, Weight: r.State.Weight})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Weight < results[j].Weight })

	seen := make(map[string]bool, len(results))
	out := make([]AlignedOutputWeight, 0, len(results))
	for _, r := range results {
		key := alignedKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}

	return out, nil
}

func alignedKey(r AlignedOutputWeight) string {
	var b strings.Builder
	for _, a := range r.Symbols {
		b.WriteString(a.Symbol.Text())
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(a.InputIndex))
		b.WriteByte(0)
	}
	return b.String()
}
