// Package symbol defines the value type of a transducer's alphabet.
//
// A Symbol is one of four disjoint variants — String, Flag diacritic,
// Special, and Raw — unified behind a single comparable struct instead
// of an interface, so that symbols can be used directly as map keys and
// compared with == without boxing or dynamic dispatch on every lookup
// in the path enumeration hot loop.
package symbol

import (
	"fmt"
	"sort"
	"strings"
)

// kind discriminates the four Symbol variants.
type kind uint8

const (
	kindString kind = iota
	kindFlag
	kindSpecial
	kindRaw
)

// FlagKind enumerates the six flag diacritic operators.
type FlagKind byte

const (
	FlagUnify   FlagKind = 'U'
	FlagRequire FlagKind = 'R'
	FlagDisallow FlagKind = 'D'
	FlagClear   FlagKind = 'C'
	FlagPositive FlagKind = 'P'
	FlagNegative FlagKind = 'N'
)

func (k FlagKind) valid() bool {
	switch k {
	case FlagUnify, FlagRequire, FlagDisallow, FlagClear, FlagPositive, FlagNegative:
		return true
	}
	return false
}

// specialKind enumerates the three special symbols.
type specialKind uint8

const (
	SpecialEpsilon specialKind = iota
	SpecialIdentity
	SpecialUnknown
)

// RawPayloadLen is the fixed payload length of a Raw symbol: 15 bytes,
// chosen so the whole encoded value fits in 16 bytes alongside a
// one-byte discriminant, matching the kfst_rs wire layout this variant
// exists to stay compatible with.
const RawPayloadLen = 15

// Symbol is the value type of a transducer's alphabet. The zero value is
// the empty String symbol ("", unknown=false); use the constructors
// below to build the other variants.
//
// Symbol is comparable: two values are == iff they are the same variant
// with equal fields, matching the spec's value-equality requirement.
type Symbol struct {
	kind kind

	// kindString text, and kindFlag key.
	str string
	// kindString.unknown (a Raw symbol keeps its bit in raw[0] instead).
	unknown bool

	flagKind  FlagKind
	flagValue string
	hasValue  bool

	special specialKind

	raw [RawPayloadLen]byte
}

// NewString returns a String symbol with the given literal text.
func NewString(text string, unknownSymbol bool) Symbol {
	return Symbol{kind: kindString, str: text, unknown: unknownSymbol}
}

// NewFlag returns a Flag diacritic symbol. Pass hasValue=false for the
// single-parameter form (`@K.key@`).
func NewFlag(fk FlagKind, key, value string, hasValue bool) (Symbol, error) {
	if !fk.valid() {
		return Symbol{}, fmt.Errorf("symbol: invalid flag kind %q", byte(fk))
	}
	return Symbol{kind: kindFlag, str: key, flagKind: fk, flagValue: value, hasValue: hasValue}, nil
}

// Epsilon returns the special EPSILON symbol.
func Epsilon() Symbol { return Symbol{kind: kindSpecial, special: SpecialEpsilon} }

// Identity returns the special IDENTITY symbol.
func Identity() Symbol { return Symbol{kind: kindSpecial, special: SpecialIdentity} }

// Unknown returns the special UNKNOWN symbol.
func Unknown() Symbol { return Symbol{kind: kindSpecial, special: SpecialUnknown} }

// NewRaw returns a Raw symbol wrapping exactly RawPayloadLen bytes of
// caller-defined metadata. Bit 0 of the first byte marks epsilon, bit 1
// marks unknown; the rest of the payload is opaque to this package.
func NewRaw(payload [RawPayloadLen]byte) Symbol {
	return Symbol{kind: kindRaw, raw: payload}
}

// IsEpsilon reports whether the symbol should be treated as an epsilon:
// true for the EPSILON special symbol and for every Flag diacritic.
func (s Symbol) IsEpsilon() bool {
	switch s.kind {
	case kindFlag:
		return true
	case kindSpecial:
		return s.special == SpecialEpsilon
	case kindRaw:
		return s.raw[0]&1 != 0
	default:
		return false
	}
}

// IsUnknown reports whether the symbol stands for "outside the known
// alphabet" — true for a String symbol constructed with unknown=true,
// and for a Raw symbol with bit 1 of its first byte set.
func (s Symbol) IsUnknown() bool {
	switch s.kind {
	case kindString:
		return s.unknown
	case kindRaw:
		return s.raw[0]&2 != 0
	default:
		return false
	}
}

// IsFlag reports whether the symbol is a Flag diacritic.
func (s Symbol) IsFlag() bool { return s.kind == kindFlag }

// IsString reports whether the symbol is a literal String variant (as
// opposed to Flag, Special, or Raw). These are the only symbols the
// tokeniser matches directly against input text.
func (s Symbol) IsString() bool { return s.kind == kindString }

// IsIdentity reports whether the symbol is the special IDENTITY symbol.
func (s Symbol) IsIdentity() bool { return s.kind == kindSpecial && s.special == SpecialIdentity }

// Flag returns the flag kind, key and optional value of a Flag symbol.
// ok is false for any non-Flag symbol.
func (s Symbol) Flag() (fk FlagKind, key, value string, hasValue, ok bool) {
	if s.kind != kindFlag {
		return 0, "", "", false, false
	}
	return s.flagKind, s.str, s.flagValue, s.hasValue, true
}

// Text returns the canonical string form of the symbol, as used both by
// the tokeniser's alphabet and the textual/binary codecs.
func (s Symbol) Text() string {
	switch s.kind {
	case kindString:
		return s.str
	case kindFlag:
		if s.hasValue {
			return "@" + string(s.flagKind) + "." + s.str + "." + s.flagValue + "@"
		}
		return "@" + string(s.flagKind) + "." + s.str + "@"
	case kindSpecial:
		switch s.special {
		case SpecialEpsilon:
			return "@_EPSILON_SYMBOL_@"
		case SpecialIdentity:
			return "@_IDENTITY_SYMBOL_@"
		case SpecialUnknown:
			return "@_UNKNOWN_SYMBOL_@"
		}
	case kindRaw:
		return fmt.Sprintf("RawSymbol(%x)", s.raw)
	}
	return ""
}

// String implements fmt.Stringer for debugging/logging.
func (s Symbol) String() string { return s.Text() }

// order ranks symbols by variant then by fields, for deterministic
// iteration in encoders (the total order required by the data model;
// tokenisation and the binary symbol table use the separate
// length-then-text orders documented on transducer.FromRules and
// SortByLengthThenText).
func (s Symbol) order() (kind, string, string, string) {
	switch s.kind {
	case kindFlag:
		val := s.flagValue
		if !s.hasValue {
			val = ""
		}
		return s.kind, string(s.flagKind), s.str, val
	case kindSpecial:
		return s.kind, fmt.Sprintf("%d", s.special), "", ""
	case kindRaw:
		return s.kind, string(s.raw[:]), "", ""
	default:
		return s.kind, s.str, "", ""
	}
}

// Less implements the total order over symbols described in the data
// model: by variant first, then lexicographically by fields.
func Less(a, b Symbol) bool {
	ak1, ak2, ak3, ak4 := a.order()
	bk1, bk2, bk3, bk4 := b.order()
	if ak1 != bk1 {
		return ak1 < bk1
	}
	if ak2 != bk2 {
		return ak2 < bk2
	}
	if ak3 != bk3 {
		return ak3 < bk3
	}
	return ak4 < bk4
}

// SortByLengthThenText sorts symbols in ascending order of
// (length of Text(), Text()) — the order the binary symbol table is
// written in (format/binary) so that symbol-index assignment is stable
// across re-encodings.
func SortByLengthThenText(symbols []Symbol) {
	sort.SliceStable(symbols, func(i, j int) bool {
		ti, tj := symbols[i].Text(), symbols[j].Text()
		if len(ti) != len(tj) {
			return len(ti) < len(tj)
		}
		return ti < tj
	})
}

// SortByDescendingLength sorts symbols in descending order of
// length of Text() — the tokeniser's maximal-munch scan order. Ties
// (equal length) are broken by the stable sort's incoming order, which
// callers should have already made deterministic (e.g. via
// SortByLengthThenText followed by a reversal, or by ascending text for
// ties — see transducer.FromRules for the concrete policy used).
func SortByDescendingLength(symbols []Symbol) {
	sort.SliceStable(symbols, func(i, j int) bool {
		return len(symbols[i].Text()) > len(symbols[j].Text())
	})
}

// isFlagDiacriticString reports whether a raw symbol string matches the
// flag diacritic grammar: `^@[PNDRCU]\.` ... ending in `@`, length > 4.
func isFlagDiacriticString(s string) bool {
	if len(s) <= 4 {
		return false
	}
	if s[0] != '@' || s[len(s)-1] != '@' {
		return false
	}
	switch s[1] {
	case 'U', 'R', 'D', 'C', 'P', 'N':
	default:
		return false
	}
	return s[2] == '.'
}

func isSpecialString(s string) bool {
	switch s {
	case "@0@", "@_EPSILON_SYMBOL_@", "@_IDENTITY_SYMBOL_@", "@_UNKNOWN_SYMBOL_@":
		return true
	}
	return false
}

// Parse decodes a raw symbol string into its canonical Symbol, following
// the rules of the data model: a flag diacritic if it matches
// `^@[PNDRCU]\.` and ends in `@` with length > 4, one of the four
// special-symbol literals, or otherwise a plain String symbol with
// unknown=false.
func Parse(s string) (Symbol, error) {
	if isFlagDiacriticString(s) {
		fk := FlagKind(s[1])
		di := strings.LastIndex(s, ".")
		var key, value string
		var hasValue bool
		if di > 3 {
			key = s[3:di]
			value = s[di+1 : len(s)-1]
			hasValue = true
		} else {
			key = s[3 : len(s)-1]
		}
		return NewFlag(fk, key, value, hasValue)
	}

	if isSpecialString(s) {
		switch s {
		case "@0@", "@_EPSILON_SYMBOL_@":
			return Epsilon(), nil
		case "@_IDENTITY_SYMBOL_@":
			return Identity(), nil
		case "@_UNKNOWN_SYMBOL_@":
			return Unknown(), nil
		}
	}

	return NewString(s, false), nil
}
