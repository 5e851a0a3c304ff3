// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the ARI toolchain's standard CBOR encoding
// configuration.
//
// CBOR is the wire format for ARI values: lib/aricbor hand-assembles
// array/map/tag framing so an AM literal's insertion order survives
// the round trip, but every scalar leaf value it carries (ints,
// floats, text, bytes) is marshaled through this package's Core
// Deterministic mode. On-disk artifacts that aren't ARI values
// themselves — an ADM catalog cache, a cached lint report — use this
// package directly.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every caller encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// # Struct Tag Rules
//
// The struct tag on a type documents its serialization format:
//
//   - `cbor` tag: this type is ONLY ever serialized as CBOR. Examples:
//     on-disk catalog cache entries, cached lint reports.
//   - `json` tag: this type may be serialized as BOTH JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags as fallback when `cbor`
//     tags are absent, so a single `json` tag controls field naming
//     and omitempty for both formats. Examples: types shared between
//     CLI --json output and a CBOR cache entry.
//
// Never use both `cbor` and `json` tags on the same field. The tag
// choice documents the contract — doubling up is noise that obscures
// whether a type participates in JSON serialization.
package codec
