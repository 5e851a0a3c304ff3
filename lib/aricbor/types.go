// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aricbor

import (
	"time"

	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/arierr"
)

// wireObjectTypes maps ari.ObjectType's friendly 0-8 in-memory numbering to
// the negative-integer codes the wire format actually uses, reproduced
// from ace.ari.StructType's "AMM object types" section of the original
// codec. IDENT was never assigned a value there (every other object type
// was); -1 is not used by any other object type here and is this codec's
// own choice, not one carried over from the original.
var wireObjectTypes = map[ari.ObjectType]int64{
	ari.ObjConst:   -2,
	ari.ObjCtrl:    -3,
	ari.ObjEdd:     -4,
	ari.ObjIdent:   -1,
	ari.ObjOper:    -6,
	ari.ObjSbr:     -8,
	ari.ObjTbr:     -10,
	ari.ObjTypedef: -12,
	ari.ObjVar:     -11,
}

var objectTypeFromWire = func() map[int64]ari.ObjectType {
	m := make(map[int64]ari.ObjectType, len(wireObjectTypes))
	for k, v := range wireObjectTypes {
		m[v] = k
	}
	return m
}()

func wireObjectType(t ari.ObjectType) (int64, bool) {
	v, ok := wireObjectTypes[t]
	return v, ok
}

func objectTypeFromWireCode(v int64) (ari.ObjectType, bool) {
	t, ok := objectTypeFromWire[v]
	return t, ok
}

// encodeTimeval reproduces the original codec's decimal-fraction reduction
// exactly: compute total microseconds, then strip trailing decimal zeros
// from a base exponent of -6 until the mantissa is no longer a clean
// multiple of 10 (the exponent may end up above 0). Only a value whose
// reduction stops exactly at exp==0 (whole seconds not divisible by 10)
// encodes as a bare integer; everything else, including zero and multiples
// of 10 seconds, is [mant, exp].
func encodeTimeval(d time.Duration) []byte {
	mant := d.Microseconds()
	exp := -6
	for mant != 0 && mant%10 == 0 {
		mant /= 10
		exp++
	}
	if exp == 0 {
		return encInt(mant)
	}
	return writeArray([][]byte{encInt(mant), encInt(int64(exp))})
}

// decodeTimeval inverts encodeTimeval: a bare integer is whole seconds; a
// 2-element array is [mant, exp], reconstituted as mant * 10^(exp+6)
// microseconds.
func decodeTimeval(raw []byte) (time.Duration, error) {
	major, _, _, err := readHeader(raw)
	if err != nil {
		return 0, err
	}
	if major == majorArray {
		items, err := readArrayItems(raw)
		if err != nil {
			return 0, err
		}
		if len(items) != 2 {
			return 0, arierr.DecodeError("aricbor: timeval array must have 2 elements, got %d", len(items))
		}
		mant, err := decInt(items[0])
		if err != nil {
			return 0, err
		}
		exp, err := decInt(items[1])
		if err != nil {
			return 0, err
		}
		power := exp + 6
		usec := mant
		for i := int64(0); i < power; i++ {
			usec *= 10
		}
		for i := int64(0); i > power; i-- {
			usec /= 10
		}
		return time.Duration(usec) * time.Microsecond, nil
	}
	n, err := decInt(raw)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

func encodeIdent(id ari.Ident) []byte {
	if id.HasEnum {
		return encInt(id.Enum)
	}
	return encText(id.Text)
}

func decodeIdent(raw []byte) (ari.Ident, error) {
	major, arg, _, err := readHeader(raw)
	if err != nil {
		return ari.Ident{}, err
	}
	switch major {
	case majorUint:
		return ari.Numeric(int64(arg)), nil
	case majorNeg:
		return ari.Numeric(-1 - int64(arg)), nil
	case majorText:
		s, err := decText(raw)
		if err != nil {
			return ari.Ident{}, err
		}
		return ari.Symbolic(s), nil
	}
	return ari.Ident{}, arierr.DecodeError("aricbor: identifier must be an integer or text string, got major type %d", major)
}
