// Package codec converts mints to and from their canonical tree encodings.
// The textual form is JSON, the binary form MessagePack; both carry a
// self-describing kind tag per node and a format version, and both
// round-trip every valid mint (order, defaults and reference names
// preserved; registry contents are never embedded, only reference names).
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"mint/internal/mint"
)

// Version is the current encoding format version. Increment when the wire
// layout changes.
const Version = 1

// ErrorKind classifies codec failures.
type ErrorKind uint8

const (
	Malformed ErrorKind = iota
	UnknownKind
	VersionMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case UnknownKind:
		return "unknown-kind"
	case VersionMismatch:
		return "version-mismatch"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is a structured codec failure.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "codec: " + e.Kind.String()
	}
	return fmt.Sprintf("codec: %s: %s", e.Kind, e.Detail)
}

// Encode renders m as the canonical JSON tree.
func Encode(m mint.Mint) ([]byte, error) {
	doc, err := toWire(m)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, &Error{Kind: Malformed, Detail: err.Error()}
	}
	return buf.Bytes(), nil
}

// Decode parses the canonical JSON tree back into a mint.
func Decode(data []byte) (mint.Mint, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc wireDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, &Error{Kind: Malformed, Detail: err.Error()}
	}
	return fromWire(&doc)
}

// EncodeBinary renders m in the MessagePack form of the same tree.
func EncodeBinary(m mint.Mint) ([]byte, error) {
	doc, err := toWire(m)
	if err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return nil, &Error{Kind: Malformed, Detail: err.Error()}
	}
	return data, nil
}

// DecodeBinary parses the MessagePack tree back into a mint.
func DecodeBinary(data []byte) (mint.Mint, error) {
	var doc wireDoc
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Kind: Malformed, Detail: err.Error()}
	}
	return fromWire(&doc)
}
