// Package binary implements the compact compressed binary transducer
// format: a fixed-width header, a null-terminated symbol table, and an
// LZMA/xz-compressed body of transitions and final states, decoded and
// encoded through transducer.Transducer.
package binary

import (
	"bytes"
	"math"

	"github.com/fergusq/kfst-go/compress"
	"github.com/fergusq/kfst-go/endian"
	"github.com/fergusq/kfst-go/errs"
	"github.com/fergusq/kfst-go/format"
	"github.com/fergusq/kfst-go/internal/hash"
	"github.com/fergusq/kfst-go/internal/pool"
	"github.com/fergusq/kfst-go/symbol"
	"github.com/fergusq/kfst-go/transducer"
)

// headerSize is the byte length of the fixed header: 4-byte magic,
// uint16 version, uint16 num_symbols, uint32 num_transitions, uint32
// num_final_states, uint8 is_weighted.
const headerSize = 4 + 2 + 2 + 4 + 4 + 1

var engine = endian.BigEndianEngine()

// Decode parses the binary format into a Transducer.
func Decode(data []byte, debug bool) (*transducer.Transducer, error) {
	if len(data) < headerSize {
		return nil, format.NewFormatError(errs.ErrTruncatedBinary, "header")
	}
	if string(data[0:4]) != format.BinaryMagic {
		return nil, format.NewFormatError(errs.ErrBadMagic, "")
	}

	version := engine.Uint16(data[4:6])
	if version != format.BinaryVersion {
		return nil, format.NewFormatError(errs.ErrUnsupportedVersion, "")
	}

	numSymbols := int(engine.Uint16(data[6:8]))
	numTransitions := engine.Uint32(data[8:12])
	numFinalStates := engine.Uint32(data[12:16])
	isWeighted := data[16] != 0

	symbols := make([]symbol.Symbol, numSymbols)
	offset := headerSize
	for i := range numSymbols {
		nul := bytes.IndexByte(data[offset:], 0x00)
		if nul < 0 {
			return nil, format.NewFormatError(errs.ErrTruncatedBinary, "symbol table")
		}
		sym, err := symbol.Parse(string(data[offset : offset+nul]))
		if err != nil {
			return nil, format.NewFormatError(errs.ErrMalformedField, err.Error())
		}
		symbols[i] = sym
		offset += nul + 1
	}

	body, err := compress.NewLZMACodec().Decompress(data[offset:])
	if err != nil {
		return nil, format.NewFormatError(errs.ErrCompressionFailure, err.Error())
	}

	rules := make(map[uint32]map[symbol.Symbol][]transducer.Transition)
	cursor := 0

	for range numTransitions {
		entry, n, err := readTransitionEntry(body[cursor:], isWeighted, numSymbols)
		if err != nil {
			return nil, err
		}
		cursor += n

		if rules[entry.from] == nil {
			rules[entry.from] = make(map[symbol.Symbol][]transducer.Transition)
		}
		inSym := symbols[entry.inIdx]
		rules[entry.from][inSym] = append(rules[entry.from][inSym], transducer.Transition{
			To:     entry.to,
			Out:    symbols[entry.outIdx],
			Weight: entry.weight,
		})
	}

	finalStates := make(map[uint32]float64, numFinalStates)
	for range numFinalStates {
		if cursor+4 > len(body) {
			return nil, format.NewFormatError(errs.ErrTruncatedBinary, "final states")
		}
		state := engine.Uint32(body[cursor:])
		cursor += 4

		weight := 0.0
		if isWeighted {
			if cursor+8 > len(body) {
				return nil, format.NewFormatError(errs.ErrTruncatedBinary, "final state weight")
			}
			weight = math.Float64frombits(engine.Uint64(body[cursor:]))
			cursor += 8
		}
		finalStates[state] = weight
	}

	return transducer.FromRules(finalStates, rules, symbols, debug), nil
}

type transitionEntry struct {
	from, to      uint32
	inIdx, outIdx uint16
	weight        float64
}

func readTransitionEntry(body []byte, isWeighted bool, numSymbols int) (transitionEntry, int, error) {
	const fixedLen = 4 + 4 + 2 + 2
	if len(body) < fixedLen {
		return transitionEntry{}, 0, format.NewFormatError(errs.ErrTruncatedBinary, "transition")
	}

	e := transitionEntry{
		from:   engine.Uint32(body[0:4]),
		to:     engine.Uint32(body[4:8]),
		inIdx:  engine.Uint16(body[8:10]),
		outIdx: engine.Uint16(body[10:12]),
	}
	n := fixedLen

	if int(e.inIdx) >= numSymbols || int(e.outIdx) >= numSymbols {
		return transitionEntry{}, 0, format.NewFormatError(errs.ErrSymbolIndexOutOfRange, "")
	}

	if isWeighted {
		if len(body) < n+8 {
			return transitionEntry{}, 0, format.NewFormatError(errs.ErrTruncatedBinary, "transition weight")
		}
		e.weight = math.Float64frombits(engine.Uint64(body[n : n+8]))
		n += 8
	}

	return e, n, nil
}

// Encode renders t in the binary format: header, symbol table in
// ascending (length, text) order, then an LZMA/xz-compressed body of
// transitions and final states in the deterministic order
// transducer.Transducer.AllTransitions and SortedFinalStates fix.
//
// Encode refuses with a *format.CapacityError if t exceeds any of the
// wire format's fixed-width caps.
func Encode(t *transducer.Transducer) ([]byte, error) {
	symbols := t.Symbols()
	symbol.SortByLengthThenText(symbols)
	if len(symbols) > format.MaxSymbols {
		return nil, format.NewCapacityError(errs.ErrTooManySymbols, len(symbols))
	}

	transitions := t.AllTransitions()
	if len(transitions) > format.MaxTransitions {
		return nil, format.NewCapacityError(errs.ErrTooManyTransitions, len(transitions))
	}

	finalStates := t.SortedFinalStates()
	if len(finalStates) > format.MaxFinalStates {
		return nil, format.NewCapacityError(errs.ErrTooManyFinalStates, len(finalStates))
	}

	symbolIndex := make(map[uint64]int, len(symbols))
	for i, sym := range symbols {
		symbolIndex[hash.ID(sym.Text())] = i
	}
	indexOf := func(sym symbol.Symbol) uint16 {
		return uint16(symbolIndex[hash.ID(sym.Text())])
	}

	isWeighted := false
	for _, tr := range transitions {
		if tr.Weight != 0 {
			isWeighted = true
			break
		}
	}
	if !isWeighted {
		for _, fs := range finalStates {
			if fs.Weight != 0 {
				isWeighted = true
				break
			}
		}
	}

	header := pool.NewByteBuffer(headerSize)
	header.B = append(header.B, format.BinaryMagic...)
	header.B = engine.AppendUint16(header.B, format.BinaryVersion)
	header.B = engine.AppendUint16(header.B, uint16(len(symbols)))
	header.B = engine.AppendUint32(header.B, uint32(len(transitions)))
	header.B = engine.AppendUint32(header.B, uint32(len(finalStates)))
	if isWeighted {
		header.B = append(header.B, 1)
	} else {
		header.B = append(header.B, 0)
	}

	symbolTable := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(symbolTable)
	for _, sym := range symbols {
		symbolTable.B = append(symbolTable.B, sym.Text()...)
		symbolTable.B = append(symbolTable.B, 0x00)
	}

	body := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(body)
	for _, tr := range transitions {
		body.B = engine.AppendUint32(body.B, tr.From)
		body.B = engine.AppendUint32(body.B, tr.To)
		body.B = engine.AppendUint16(body.B, indexOf(tr.In))
		body.B = engine.AppendUint16(body.B, indexOf(tr.Out))
		if isWeighted {
			body.B = engine.AppendUint64(body.B, math.Float64bits(tr.Weight))
		}
	}
	for _, fs := range finalStates {
		body.B = engine.AppendUint32(body.B, fs.State)
		if isWeighted {
			body.B = engine.AppendUint64(body.B, math.Float64bits(fs.Weight))
		}
	}

	compressed, err := compress.NewLZMACodec().Compress(body.Bytes())
	if err != nil {
		return nil, format.NewFormatError(errs.ErrCompressionFailure, err.Error())
	}

	out := make([]byte, 0, header.Len()+symbolTable.Len()+len(compressed))
	out = append(out, header.Bytes()...)
	out = append(out, symbolTable.Bytes()...)
	out = append(out, compressed...)
	return out, nil
}
