// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aricbor

import (
	"encoding/binary"

	"github.com/dtnma-ace/ace/lib/arierr"
	"github.com/dtnma-ace/ace/lib/codec"
)

// Major CBOR type numbers (RFC 8949 §3.1).
const (
	majorUint  = 0
	majorNeg   = 1
	majorBytes = 2
	majorText  = 3
	majorArray = 4
	majorMap   = 5
	majorTag   = 6
	majorSimple = 7
)

// writeHeader builds the initial-byte-plus-argument header for a CBOR item
// of the given major type, matching the minimal-length encoding Core
// Deterministic Encoding requires.
func writeHeader(major byte, n uint64) []byte {
	switch {
	case n < 24:
		return []byte{major<<5 | byte(n)}
	case n <= 0xFF:
		return []byte{major<<5 | 24, byte(n)}
	case n <= 0xFFFF:
		b := make([]byte, 3)
		b[0] = major<<5 | 25
		binary.BigEndian.PutUint16(b[1:], uint16(n))
		return b
	case n <= 0xFFFFFFFF:
		b := make([]byte, 5)
		b[0] = major<<5 | 26
		binary.BigEndian.PutUint32(b[1:], uint32(n))
		return b
	default:
		b := make([]byte, 9)
		b[0] = major<<5 | 27
		binary.BigEndian.PutUint64(b[1:], n)
		return b
	}
}

// readHeader parses the initial byte (and any following argument bytes) of
// one CBOR item, returning the major type, the argument value, and the
// number of header bytes consumed.
func readHeader(data []byte) (major byte, arg uint64, headerLen int, err error) {
	if len(data) == 0 {
		return 0, 0, 0, arierr.DecodeError("aricbor: unexpected end of input")
	}
	b := data[0]
	major = b >> 5
	ai := b & 0x1F
	switch {
	case ai < 24:
		return major, uint64(ai), 1, nil
	case ai == 24:
		if len(data) < 2 {
			return 0, 0, 0, arierr.DecodeError("aricbor: truncated 1-byte argument")
		}
		return major, uint64(data[1]), 2, nil
	case ai == 25:
		if len(data) < 3 {
			return 0, 0, 0, arierr.DecodeError("aricbor: truncated 2-byte argument")
		}
		return major, uint64(binary.BigEndian.Uint16(data[1:3])), 3, nil
	case ai == 26:
		if len(data) < 5 {
			return 0, 0, 0, arierr.DecodeError("aricbor: truncated 4-byte argument")
		}
		return major, uint64(binary.BigEndian.Uint32(data[1:5])), 5, nil
	case ai == 27:
		if len(data) < 9 {
			return 0, 0, 0, arierr.DecodeError("aricbor: truncated 8-byte argument")
		}
		return major, binary.BigEndian.Uint64(data[1:9]), 9, nil
	default:
		return 0, 0, 0, arierr.DecodeError("aricbor: indefinite-length CBOR items are not supported")
	}
}

// itemLen returns the total byte length of the single CBOR item starting
// at data[0], recursing into arrays, maps, and tags as needed to find
// where it ends.
func itemLen(data []byte) (int, error) {
	major, arg, hlen, err := readHeader(data)
	if err != nil {
		return 0, err
	}
	switch major {
	case majorUint, majorNeg:
		return hlen, nil
	case majorBytes, majorText:
		total := hlen + int(arg)
		if total > len(data) {
			return 0, arierr.DecodeError("aricbor: truncated string payload")
		}
		return total, nil
	case majorArray:
		pos := hlen
		for i := uint64(0); i < arg; i++ {
			if pos > len(data) {
				return 0, arierr.DecodeError("aricbor: truncated array")
			}
			n, err := itemLen(data[pos:])
			if err != nil {
				return 0, err
			}
			pos += n
		}
		return pos, nil
	case majorMap:
		pos := hlen
		for i := uint64(0); i < arg*2; i++ {
			if pos > len(data) {
				return 0, arierr.DecodeError("aricbor: truncated map")
			}
			n, err := itemLen(data[pos:])
			if err != nil {
				return 0, err
			}
			pos += n
		}
		return pos, nil
	case majorTag:
		if hlen > len(data) {
			return 0, arierr.DecodeError("aricbor: truncated tag")
		}
		n, err := itemLen(data[hlen:])
		if err != nil {
			return 0, err
		}
		return hlen + n, nil
	case majorSimple:
		return hlen, nil
	}
	return 0, arierr.DecodeError("aricbor: unknown major type %d", major)
}

func writeArray(items [][]byte) []byte {
	buf := writeHeader(majorArray, uint64(len(items)))
	for _, it := range items {
		buf = append(buf, it...)
	}
	return buf
}

func writeMapPairs(pairs [][2][]byte) []byte {
	buf := writeHeader(majorMap, uint64(len(pairs)))
	for _, p := range pairs {
		buf = append(buf, p[0]...)
		buf = append(buf, p[1]...)
	}
	return buf
}

func writeTag(tag uint64, content []byte) []byte {
	return append(writeHeader(majorTag, tag), content...)
}

// readArrayItems splits a CBOR array item into its elements' raw bytes,
// without interpreting them.
func readArrayItems(data []byte) ([][]byte, error) {
	major, n, hlen, err := readHeader(data)
	if err != nil {
		return nil, err
	}
	if major != majorArray {
		return nil, arierr.DecodeError("aricbor: expected array, got major type %d", major)
	}
	pos := hlen
	items := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		ln, err := itemLen(data[pos:])
		if err != nil {
			return nil, err
		}
		items = append(items, data[pos:pos+ln])
		pos += ln
	}
	return items, nil
}

// readMapPairs splits a CBOR map item into its key/value element pairs, in
// on-wire order, without interpreting them.
func readMapPairs(data []byte) ([][2][]byte, error) {
	major, n, hlen, err := readHeader(data)
	if err != nil {
		return nil, err
	}
	if major != majorMap {
		return nil, arierr.DecodeError("aricbor: expected map, got major type %d", major)
	}
	pos := hlen
	pairs := make([][2][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		kLen, err := itemLen(data[pos:])
		if err != nil {
			return nil, err
		}
		key := data[pos : pos+kLen]
		pos += kLen
		vLen, err := itemLen(data[pos:])
		if err != nil {
			return nil, err
		}
		val := data[pos : pos+vLen]
		pos += vLen
		pairs = append(pairs, [2][]byte{key, val})
	}
	return pairs, nil
}

// readTagContent splits a CBOR tag item into its tag number and content
// bytes.
func readTagContent(data []byte) (tagNum uint64, content []byte, err error) {
	major, n, hlen, err := readHeader(data)
	if err != nil {
		return 0, nil, err
	}
	if major != majorTag {
		return 0, nil, arierr.DecodeError("aricbor: expected tag, got major type %d", major)
	}
	ln, err := itemLen(data[hlen:])
	if err != nil {
		return 0, nil, err
	}
	return n, data[hlen : hlen+ln], nil
}

// Scalar leaf helpers. These lean on package codec (fxamacker/cbor/v2's
// Core Deterministic Encoding) for correct minimal-length integer and
// float encoding; only the surrounding array/map/tag structure above is
// hand-assembled.

func encUint(n uint64) []byte {
	b, _ := codec.Marshal(n)
	return b
}

func encInt(n int64) []byte {
	b, _ := codec.Marshal(n)
	return b
}

func encFloat32(f float32) []byte {
	b, _ := codec.Marshal(f)
	return b
}

func encFloat64(f float64) []byte {
	b, _ := codec.Marshal(f)
	return b
}

func encText(s string) []byte {
	b, _ := codec.Marshal(s)
	return b
}

func encBytes(b []byte) []byte {
	out, _ := codec.Marshal(b)
	return out
}

func encBool(b bool) []byte {
	out, _ := codec.Marshal(b)
	return out
}

var (
	wireNull      = []byte{0xF6}
	wireUndefined = []byte{0xF7}
)

func decUint(raw []byte) (uint64, error) {
	var v uint64
	if err := codec.Unmarshal(raw, &v); err != nil {
		return 0, arierr.DecodeError("aricbor: %v", err)
	}
	return v, nil
}

func decInt(raw []byte) (int64, error) {
	var v int64
	if err := codec.Unmarshal(raw, &v); err != nil {
		return 0, arierr.DecodeError("aricbor: %v", err)
	}
	return v, nil
}

func decFloat64(raw []byte) (float64, error) {
	var v float64
	if err := codec.Unmarshal(raw, &v); err != nil {
		return 0, arierr.DecodeError("aricbor: %v", err)
	}
	return v, nil
}

func decText(raw []byte) (string, error) {
	_, arg, hlen, err := readHeader(raw)
	if err != nil {
		return "", err
	}
	return string(raw[hlen : hlen+int(arg)]), nil
}

func decBytes(raw []byte) ([]byte, error) {
	_, arg, hlen, err := readHeader(raw)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), raw[hlen:hlen+int(arg)]...), nil
}
