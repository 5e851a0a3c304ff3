// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ari

import "github.com/google/uuid"

// NewNonce returns a fresh nonce literal suitable for ExecSet or RptSet
// construction when a caller has no application-specific nonce of its
// own. The nonce is carried as a BYTESTR literal holding the raw UUID
// bytes.
func NewNonce() ARI {
	id := uuid.New()
	return Literal{typ: BuiltinRef(TypeBytestr), value: Bytes(id[:])}
}

// NewExecSetAuto constructs an ExecSet with a freshly generated nonce.
func NewExecSetAuto(targets []ARI) *ExecSet {
	return NewExecSet(NewNonce(), targets)
}

// NewRptSetAuto constructs an RptSet with a freshly generated nonce.
func NewRptSetAuto(refTime Timepoint, reports []Report) *RptSet {
	return NewRptSet(NewNonce(), refTime, reports)
}
