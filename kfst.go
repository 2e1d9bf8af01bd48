// Package kfst provides convenient top-level wrappers around the
// transducer, format/att and format/binary packages, simplifying the
// most common way a caller loads and queries a finite-state transducer.
//
// # Basic Usage
//
// Loading a textual transducer and looking up a form:
//
//	import "github.com/fergusq/kfst-go"
//
//	tr, err := kfst.FromTextualFile("analyser.att", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := tr.Lookup("cats", 0, true)
//
// Loading the compact binary form is identical except for the
// constructor:
//
//	tr, err := kfst.FromBinaryFile("analyser.kfst", false)
//
// # Package Structure
//
// This package is a thin convenience layer. For fine-grained control
// over path enumeration, tokenisation or the wire codecs directly, use
// the transducer, format/att and format/binary packages.
package kfst

import (
	"os"

	"github.com/fergusq/kfst-go/format/att"
	"github.com/fergusq/kfst-go/format/binary"
	"github.com/fergusq/kfst-go/symbol"
	"github.com/fergusq/kfst-go/transducer"
)

// Transducer is an alias for transducer.Transducer, so callers that
// only import the root package never need to reference the transducer
// package by name.
type Transducer = transducer.Transducer

// Symbol is an alias for symbol.Symbol.
type Symbol = symbol.Symbol

// FromTextualBytes decodes data as an AT&T-style textual transducer.
func FromTextualBytes(data []byte, debug bool) (*Transducer, error) {
	return att.Decode(data, debug)
}

// FromTextualFile reads path and decodes it as an AT&T-style textual
// transducer.
func FromTextualFile(path string, debug bool) (*Transducer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromTextualBytes(data, debug)
}

// ToTextualBytes encodes t in the AT&T-style textual format.
func ToTextualBytes(t *Transducer) []byte {
	return att.Encode(t)
}

// ToTextualFile encodes t in the AT&T-style textual format and writes
// it to path.
func ToTextualFile(t *Transducer, path string) error {
	return os.WriteFile(path, ToTextualBytes(t), 0o644)
}

// FromBinaryBytes decodes data as a compressed binary transducer.
func FromBinaryBytes(data []byte, debug bool) (*Transducer, error) {
	return binary.Decode(data, debug)
}

// FromBinaryFile reads path and decodes it as a compressed binary
// transducer.
func FromBinaryFile(path string, debug bool) (*Transducer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBinaryBytes(data, debug)
}

// ToBinaryBytes encodes t in the compressed binary format. It returns a
// *format.CapacityError if t exceeds the format's fixed-width caps.
func ToBinaryBytes(t *Transducer) ([]byte, error) {
	return binary.Encode(t)
}

// ToBinaryFile encodes t in the compressed binary format and writes it
// to path.
func ToBinaryFile(t *Transducer, path string) error {
	data, err := ToBinaryBytes(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
