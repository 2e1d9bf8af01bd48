package transducer

import (
	"fmt"

	"github.com/fergusq/kfst-go/errs"
	"github.com/fergusq/kfst-go/internal/hash"
	"github.com/fergusq/kfst-go/symbol"
)

// TokenizationError is raised by SplitToSymbols (and, transitively,
// Lookup/LookupAligned) when no symbol matches the cursor and the
// caller has disallowed the unknown-symbol fallback.
type TokenizationError struct {
	Err error
	// Text is the full string that failed to tokenise.
	Text string
	// Pos is the rune offset at which no symbol matched.
	Pos int
}

func (e *TokenizationError) Error() string {
	return fmt.Sprintf("%s: %q at rune offset %d", e.Err.Error(), e.Text, e.Pos)
}

func (e *TokenizationError) Unwrap() error { return e.Err }

// SplitToSymbols segments text into the transducer's alphabet by greedy
// longest-match: at every cursor position the longest String symbol
// whose text is a prefix of the remaining input is emitted. If no
// symbol matches, a single-scalar unknown String symbol is emitted when
// allowUnknown is true; otherwise tokenisation fails with a
// *TokenizationError.
//
// Tokenisation operates on Unicode scalar values, not bytes, so an
// emitted unknown symbol is always a well-formed string.
func (t *Transducer) SplitToSymbols(text string, allowUnknown bool) ([]symbol.Symbol, error) {
	runes := []rune(text)
	out := make([]symbol.Symbol, 0, len(runes))

	pos := 0
	for pos < len(runes) {
		sym, n, ok := t.longestMatch(runes[pos:])
		if ok {
			out = append(out, sym)
			pos += n
			continue
		}

		if !allowUnknown {
			return nil, &TokenizationError{Err: errs.ErrTokenization, Text: text, Pos: pos}
		}

		out = append(out, symbol.NewString(string(runes[pos]), true))
		pos++
	}

	return out, nil
}

// longestMatch finds the longest String symbol whose text is a prefix
// of remaining, scanning candidate rune lengths from the transducer's
// longest known symbol down to one. Each candidate length is an O(1)
// amortised hash-map probe rather than a scan of the whole alphabet.
func (t *Transducer) longestMatch(remaining []rune) (symbol.Symbol, int, bool) {
	maxLen := t.maxSymbolRune
	if maxLen > len(remaining) {
		maxLen = len(remaining)
	}

	for n := maxLen; n >= 1; n-- {
		bucket, ok := t.byRuneLen[n]
		if !ok {
			continue
		}

		candidate := string(remaining[:n])
		if idx, ok := bucket[hash.ID(candidate)]; ok && t.symbols[idx].Text() == candidate {
			return t.symbols[idx], n, true
		}
	}

	return symbol.Symbol{}, 0, false
}
