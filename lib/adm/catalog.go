// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adm

import (
	"sync"

	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/arierr"
	"github.com/dtnma-ace/ace/lib/aritype"
)

// Object is implemented by every kind of ADM catalog object.
type Object interface {
	objectType() ari.ObjectType
	objectName() ari.Ident
}

// ObjectType reports the catalog object kind of obj. Exported so
// packages outside adm (lib/admtransform) can dispatch on object kind
// without a type switch over every concrete Object type.
func ObjectType(obj Object) ari.ObjectType { return obj.objectType() }

// ObjectName reports the catalog name of obj.
func ObjectName(obj Object) ari.Ident { return obj.objectName() }

// NoEnum marks a catalog object as not yet assigned an enum. Module
// records loaded from YAML carry an explicit enum in [yamlConst.Enum]
// and friends; an author who wants adm-add-enum to assign one writes
// NoEnum (-1) rather than omitting the field, since a bare Go int
// cannot otherwise distinguish "omitted" from the legitimate enum 0.
const NoEnum = -1

// ConstObject is a CONST catalog object: a named, typed constant value.
type ConstObject struct {
	Name  ari.Ident
	Enum  int
	Type  aritype.Expr
	Value ari.ARI
}

func (o ConstObject) objectType() ari.ObjectType { return ari.ObjConst }
func (o ConstObject) objectName() ari.Ident      { return o.Name }

// Parameter is one formal parameter of a CTRL or OPER object.
type Parameter struct {
	Name    string
	Type    aritype.Expr
	Default ari.ARI // nil if required
}

// CtrlObject is a CTRL catalog object: an invokable control with formal
// parameters.
type CtrlObject struct {
	Name    ari.Ident
	Enum    int
	Formals []Parameter
}

func (o CtrlObject) objectType() ari.ObjectType { return ari.ObjCtrl }
func (o CtrlObject) objectName() ari.Ident      { return o.Name }

// EddObject is an EDD catalog object: an externally-defined, read-only
// data item of a declared type.
type EddObject struct {
	Name ari.Ident
	Enum int
	Type aritype.Expr
}

func (o EddObject) objectType() ari.ObjectType { return ari.ObjEdd }
func (o EddObject) objectName() ari.Ident      { return o.Name }

// VarObject is a VAR catalog object: a mutable, typed variable.
type VarObject struct {
	Name    ari.Ident
	Enum    int
	Type    aritype.Expr
	Initial ari.ARI
}

func (o VarObject) objectType() ari.ObjectType { return ari.ObjVar }
func (o VarObject) objectName() ari.Ident      { return o.Name }

// IdentObject is an IDENT catalog object: a named base-class, supplemented
// from original_source's models.py Ident/IdentBase tables (spec.md names
// IDENT as an object type but does not elaborate its fields).
type IdentObject struct {
	Name  ari.Ident
	Enum  int
	Bases []ari.ObjectRef
}

func (o IdentObject) objectType() ari.ObjectType { return ari.ObjIdent }
func (o IdentObject) objectName() ari.Ident      { return o.Name }

// OperObject is an OPER catalog object: an operator with formal operand
// types and a result type, used by expression-valued ARIs.
type OperObject struct {
	Name    ari.Ident
	Enum    int
	Operands []Parameter
	Result  aritype.Expr
}

func (o OperObject) objectType() ari.ObjectType { return ari.ObjOper }
func (o OperObject) objectName() ari.Ident      { return o.Name }

// SbrObject is an SBR (state-based rule) catalog object, supplemented
// from original_source's models.py Sbr table: a condition expression and
// an action to execute when it holds.
type SbrObject struct {
	Name      ari.Ident
	Enum      int
	Condition ari.ARI
	Action    ari.ARI
}

func (o SbrObject) objectType() ari.ObjectType { return ari.ObjSbr }
func (o SbrObject) objectName() ari.Ident      { return o.Name }

// TbrObject is a TBR (time-based rule) catalog object, supplemented from
// original_source's models.py Tbr table: a period and an action to
// execute on that schedule.
type TbrObject struct {
	Name   ari.Ident
	Enum   int
	Period ari.Timeperiod
	Action ari.ARI
}

func (o TbrObject) objectType() ari.ObjectType { return ari.ObjTbr }
func (o TbrObject) objectName() ari.Ident      { return o.Name }

// TypedefObject is a TYPEDEF catalog object: a named type expression.
type TypedefObject struct {
	Name ari.Ident
	Enum int
	Expr aritype.Expr
}

func (o TypedefObject) objectType() ari.ObjectType { return ari.ObjTypedef }
func (o TypedefObject) objectName() ari.Ident      { return o.Name }

// Module is one loaded ADM module: an org/name/revision triple, a
// module-level enum, and its objects keyed by (type, name).
type Module struct {
	Org        ari.Ident
	Name       ari.Ident
	Revision   *ari.Revision
	ModuleEnum int
	Objects    []Object

	// byName and byEnum index Objects by its two lookup keys so
	// ResolveByName need not scan the slice linearly. Built once, in
	// LoadModule, and never mutated afterward, so sharing the same map
	// across Module copies (Snapshot) is safe.
	byName map[objectKey]Object
	byEnum map[objectEnumKey]Object
}

type objectKey struct {
	typ  ari.ObjectType
	name string
}

type objectEnumKey struct {
	typ  ari.ObjectType
	enum int64
}

// ObjectEnum reports the catalog enum assigned to obj, if any, across
// every concrete Object kind.
func ObjectEnum(obj Object) (int, bool) {
	switch o := obj.(type) {
	case ConstObject:
		return o.Enum, true
	case CtrlObject:
		return o.Enum, true
	case EddObject:
		return o.Enum, true
	case VarObject:
		return o.Enum, true
	case IdentObject:
		return o.Enum, true
	case OperObject:
		return o.Enum, true
	case SbrObject:
		return o.Enum, true
	case TbrObject:
		return o.Enum, true
	case TypedefObject:
		return o.Enum, true
	}
	return 0, false
}

func buildObjectIndex(m *Module) {
	m.byName = make(map[objectKey]Object, len(m.Objects))
	m.byEnum = make(map[objectEnumKey]Object, len(m.Objects))
	for _, obj := range m.Objects {
		m.byName[objectKey{typ: obj.objectType(), name: obj.objectName().String()}] = obj
		if e, ok := ObjectEnum(obj); ok && e != NoEnum {
			m.byEnum[objectEnumKey{typ: obj.objectType(), enum: int64(e)}] = obj
		}
	}
}

// Catalog is the in-memory, concurrency-safe index of loaded modules.
type Catalog struct {
	mu      sync.RWMutex
	modules map[string][]*Module // keyed by org/name, one entry per revision
	byEnum  map[int]*Module       // keyed by module enum, when assigned
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		modules: make(map[string][]*Module),
		byEnum:  make(map[int]*Module),
	}
}

func moduleKey(org, name ari.Ident) string {
	return org.String() + "/" + name.String()
}

// LoadModule adds or replaces a module in the catalog. Loading a module
// with the same org/name/revision as one already present replaces it.
func (c *Catalog) LoadModule(m Module) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	buildObjectIndex(&m)

	key := moduleKey(m.Org, m.Name)
	existing := c.modules[key]
	replaced := false
	for i, mod := range existing {
		if revisionsEqual(mod.Revision, m.Revision) {
			existing[i] = &m
			replaced = true
			break
		}
	}
	if !replaced {
		existing = append(existing, &m)
	}
	c.modules[key] = existing
	c.byEnum[m.ModuleEnum] = &m
	return nil
}

func revisionsEqual(a, b *ari.Revision) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// ListModules returns every loaded module, across all revisions.
func (c *Catalog) ListModules() []Module {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Module
	for _, revs := range c.modules {
		for _, m := range revs {
			out = append(out, *m)
		}
	}
	return out
}

// ResolveModule finds a module by org/name, optionally pinned to a
// revision. Omitting rev selects the latest loaded revision.
func (c *Catalog) ResolveModule(org, name ari.Ident, rev *ari.Revision) (Module, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	revs, ok := c.modules[moduleKey(org, name)]
	if !ok || len(revs) == 0 {
		return Module{}, arierr.NotFound("adm: no module %s/%s", org, name)
	}
	if rev == nil {
		latest := revs[0]
		for _, m := range revs[1:] {
			if revisionLess(latest.Revision, m.Revision) {
				latest = m
			}
		}
		return *latest, nil
	}
	for _, m := range revs {
		if revisionsEqual(m.Revision, rev) {
			return *m, nil
		}
	}
	return Module{}, arierr.NotFound("adm: no module %s/%s@%s", org, name, rev)
}

func revisionLess(a, b *ari.Revision) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}

// ResolveByEnum finds the module with the given module-level enum.
func (c *Catalog) ResolveByEnum(enum int) (Module, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.byEnum[enum]
	if !ok {
		return Module{}, arierr.NotFound("adm: no module with enum %d", enum)
	}
	return *m, nil
}

// ResolveByName resolves an object reference to its catalog Object.
// ref.Name may be given in either its symbolic or numeric (enum) form —
// the catalog indexes both, per object, at load time. An org name that
// matches more than one loaded module (no revision given, multiple orgs
// share a bare name) is not possible here since org/name together key
// the module map; ambiguity instead arises when a caller supplies only a
// name with no org, which this method does not support — callers needing
// name-only resolution should use ResolveAmbiguous.
func (c *Catalog) ResolveByName(ref ari.ObjectRef) (Object, error) {
	mod, err := c.ResolveModule(ref.Org, ref.Model, ref.Rev)
	if err != nil {
		return nil, err
	}
	if ref.Name.IsNumeric() {
		if obj, ok := mod.byEnum[objectEnumKey{typ: ref.ObjType, enum: ref.Name.Enum}]; ok {
			return obj, nil
		}
		return nil, arierr.NotFound("adm: no %s object with enum %d in %s/%s", ref.ObjType, ref.Name.Enum, ref.Org, ref.Model)
	}
	if obj, ok := mod.byName[objectKey{typ: ref.ObjType, name: ref.Name.String()}]; ok {
		return obj, nil
	}
	return nil, arierr.NotFound("adm: no %s object named %s in %s/%s", ref.ObjType, ref.Name, ref.Org, ref.Model)
}

// ResolveObjectName returns the symbolic catalog name for ref, useful for
// re-emitting a numeric-form reference (e.g. "!12") with its human name
// once a catalog can resolve it. It reports false if ref does not
// resolve to a known object.
func (c *Catalog) ResolveObjectName(ref ari.ObjectRef) (ari.Ident, bool) {
	obj, err := c.ResolveByName(ref)
	if err != nil {
		return ari.Ident{}, false
	}
	return obj.objectName(), true
}

// ResolveAmbiguous resolves an object by type and name alone, across
// every loaded module. name may be symbolic or numeric. It returns
// AmbiguousReferenceError if more than one module defines a matching
// object, and NotFoundError if none does.
func (c *Catalog) ResolveAmbiguous(objType ari.ObjectType, name ari.Ident) (ari.ObjectRef, Object, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var matchRef ari.ObjectRef
	var matchObj Object
	count := 0
	for _, revs := range c.modules {
		for _, mod := range revs {
			var obj Object
			var ok bool
			if name.IsNumeric() {
				obj, ok = mod.byEnum[objectEnumKey{typ: objType, enum: name.Enum}]
			} else {
				obj, ok = mod.byName[objectKey{typ: objType, name: name.String()}]
			}
			if ok {
				count++
				matchObj = obj
				matchRef = ari.ObjectRef{Org: mod.Org, Model: mod.Name, Rev: mod.Revision, ObjType: objType, Name: obj.objectName()}
			}
		}
	}
	switch count {
	case 0:
		return ari.ObjectRef{}, nil, arierr.NotFound("adm: no %s object named %s in any loaded module", objType, name)
	case 1:
		return matchRef, matchObj, nil
	default:
		return ari.ObjectRef{}, nil, arierr.Ambiguous("adm: %d modules define a %s object named %s", count, objType, name)
	}
}

// Typedef implements aritype.Resolver: it expands a TYPEDEF object
// reference to its type expression.
func (c *Catalog) Typedef(ref ari.ObjectRef) (aritype.Expr, error) {
	obj, err := c.ResolveByName(ref)
	if err != nil {
		return nil, err
	}
	td, ok := obj.(TypedefObject)
	if !ok {
		return nil, arierr.TypeMismatch("adm: %s/%s/%s is not a TYPEDEF object", ref.Org, ref.Model, ref.Name)
	}
	return td.Expr, nil
}

// Snapshot returns a deep, independent copy of the catalog for transforms
// to mutate without affecting the live catalog (spec's copy-on-write /
// snapshot-swap concurrency model).
func (c *Catalog) Snapshot() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := NewCatalog()
	for key, revs := range c.modules {
		copied := make([]*Module, len(revs))
		for i, m := range revs {
			dup := *m
			dup.Objects = append([]Object(nil), m.Objects...)
			copied[i] = &dup
			out.byEnum[dup.ModuleEnum] = &dup
		}
		out.modules[key] = copied
	}
	return out
}
