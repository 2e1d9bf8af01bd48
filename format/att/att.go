// Package att implements the line-oriented, tab-delimited textual
// transducer format (traditionally called "AT&T form"): one state or
// transition per line, decoded and encoded through transducer.Transducer.
package att

import (
	"strconv"
	"strings"

	"github.com/fergusq/kfst-go/errs"
	"github.com/fergusq/kfst-go/format"
	"github.com/fergusq/kfst-go/symbol"
	"github.com/fergusq/kfst-go/transducer"
)

const (
	tabEscape   = format.TabEscape
	spaceEscape = format.SpaceEscape
)

func unescapeSymbolText(s string) string {
	s = strings.ReplaceAll(s, tabEscape, "\t")
	s = strings.ReplaceAll(s, spaceEscape, " ")
	return s
}

func escapeSymbolText(s string) string {
	s = strings.ReplaceAll(s, "\t", tabEscape)
	s = strings.ReplaceAll(s, " ", spaceEscape)
	return s
}

// Decode parses the textual format into a Transducer. Any blank line is
// ignored; any line whose tab-separated field count is not 1, 2, 4, or 5
// is a decode error.
func Decode(data []byte, debug bool) (*transducer.Transducer, error) {
	finalStates := make(map[uint32]float64)
	rules := make(map[uint32]map[symbol.Symbol][]transducer.Transition)
	symbolSet := make(map[symbol.Symbol]struct{})

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		switch len(fields) {
		case 1:
			state, err := parseState(fields[0])
			if err != nil {
				return nil, err
			}
			finalStates[state] = 0

		case 2:
			state, err := parseState(fields[0])
			if err != nil {
				return nil, err
			}
			weight, err := parseWeight(fields[1])
			if err != nil {
				return nil, err
			}
			finalStates[state] = weight

		case 4, 5:
			from, err := parseState(fields[0])
			if err != nil {
				return nil, err
			}
			to, err := parseState(fields[1])
			if err != nil {
				return nil, err
			}
			inSym, err := symbol.Parse(unescapeSymbolText(fields[2]))
			if err != nil {
				return nil, format.NewFormatError(errs.ErrMalformedField, err.Error())
			}
			outSym, err := symbol.Parse(unescapeSymbolText(fields[3]))
			if err != nil {
				return nil, format.NewFormatError(errs.ErrMalformedField, err.Error())
			}
			weight := 0.0
			if len(fields) == 5 {
				weight, err = parseWeight(fields[4])
				if err != nil {
					return nil, err
				}
			}

			if rules[from] == nil {
				rules[from] = make(map[symbol.Symbol][]transducer.Transition)
			}
			rules[from][inSym] = append(rules[from][inSym], transducer.Transition{To: to, Out: outSym, Weight: weight})
			symbolSet[inSym] = struct{}{}
			symbolSet[outSym] = struct{}{}

		default:
			return nil, format.NewFormatError(errs.ErrMalformedLine, line)
		}
	}

	symbols := make([]symbol.Symbol, 0, len(symbolSet))
	for sym := range symbolSet {
		symbols = append(symbols, sym)
	}

	return transducer.FromRules(finalStates, rules, symbols, debug), nil
}

func parseState(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, format.NewFormatError(errs.ErrMalformedField, s)
	}
	return uint32(n), nil
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, format.NewFormatError(errs.ErrMalformedField, s)
	}
	return w, nil
}

// Encode renders t in the textual format: final states first, each on
// its own line (weight omitted when zero), then every transition, one
// per line (weight omitted when zero). Both are iterated in the
// deterministic order transducer.Transducer.AllTransitions and
// SortedFinalStates fix, so Encode's output is reproducible across
// calls for an equivalent transducer regardless of construction order.
func Encode(t *transducer.Transducer) []byte {
	var b strings.Builder

	for _, fs := range t.SortedFinalStates() {
		if fs.Weight == 0 {
			b.WriteString(strconv.FormatUint(uint64(fs.State), 10))
			b.WriteByte('\n')
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(fs.State), 10))
		b.WriteByte('\t')
		b.WriteString(strconv.FormatFloat(fs.Weight, 'g', -1, 64))
		b.WriteByte('\n')
	}

	for _, tr := range t.AllTransitions() {
		b.WriteString(strconv.FormatUint(uint64(tr.From), 10))
		b.WriteByte('\t')
		b.WriteString(strconv.FormatUint(uint64(tr.To), 10))
		b.WriteByte('\t')
		b.WriteString(escapeSymbolText(tr.In.Text()))
		b.WriteByte('\t')
		b.WriteString(escapeSymbolText(tr.Out.Text()))
		if tr.Weight != 0 {
			b.WriteByte('\t')
			b.WriteString(strconv.FormatFloat(tr.Weight, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}

	return []byte(b.String())
}
