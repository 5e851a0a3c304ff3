// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package aricbor implements the CBOR wire codec for ARI values,
// complementing package aritext's text codec. It builds on package codec's
// Core Deterministic Encoding for every scalar CBOR item and hand-assembles
// the surrounding array/map/tag structure, since the wire shapes here (a
// two-axis positive/negative type-code scheme, an AM map that must preserve
// insertion order rather than RFC 8949's sorted-key canonical form) fall
// outside what a general-purpose struct marshaler can express.
//
// Wire shape, grounded on the original ari_cbor.py codec and the worked
// end-to-end CBOR examples rather than taken at face value from prose:
//
//   - Undefined, Null, Bool, Text, Bytes encode bare, using the CBOR major
//     type that already identifies them unambiguously.
//   - Every other literal (INT, UINT, VAST, UVAST, BYTE, REAL32, REAL64, TP,
//     TD, AC, AM, TBL, TBLT, EXECSET, RPTSET) encodes as a 2-element array
//     [type_code, value], using ari.BuiltinType's own numbering as
//     type_code. This disambiguates, e.g., a bare CBOR integer that could
//     otherwise be INT, UINT, VAST, UVAST, or BYTE.
//   - Object references encode as a variable-length array
//     [org, model, type_code, name] plus optional trailing elements: a CBOR
//     array of actual parameters, and/or a CBOR map {y,m,d} giving a
//     revision date, disambiguated at decode time by CBOR major type. The
//     object-reference type_code space is DISTINCT from (and numbered
//     differently than) the literal type_code space above: it reuses the
//     original ace.ari.StructType "AMM object types" negative-integer
//     values, not ari.ObjectType's friendly 0-8 numbering. See
//     wireObjectType/objectTypeFromWire and DESIGN.md.
//   - EXECSET and RPTSET's nonce field, and RPTSET's ref_time/rel_time
//     fields, encode as bare CBOR items (no type_code wrapper) even though
//     everything else inside them is a fully wrapped ARI value; this
//     mirrors the original codec's "untyped literal" convention for these
//     specific fields.
package aricbor
