package types

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/structogram/nsd"
)

// Type describes a data type of the pseudocode dialect. The hierarchy is
// closed: primitive, array, record, enumeration, redirect (synonym) and the
// dummy type. Every variant renders a canonical self-description string; the
// deep form doubles as the structural equality key.
type Type interface {
	// Name returns the display name. Anonymous types render as AnonTypeN.
	Name() string
	// Description renders the self-description, either shallow (embedded
	// types by name only) or deep (fully expanded substructure).
	Description(deep bool) string
	// DescriptionWithName renders like Description but with an alternative
	// top-level name, used for name-blind structural comparison.
	DescriptionWithName(altName string, deep bool) string
	IsAnonymous() bool
	IsDummy() bool
	IsPrimitive() bool
	IsNumeric() bool
	IsStructured() bool
}

// anonSerial numbers anonymous types, process-wide.
var anonSerial int64

// typeBase carries the attributes common to all variants. Anonymous types
// get a reserved internal name starting with '%'.
type typeBase struct {
	name     string
	registry *Registry // uplink, set on registration
}

func newTypeBase(name string) (typeBase, error) {
	if name == "" {
		n := atomic.AddInt64(&anonSerial, 1)
		return typeBase{name: fmt.Sprintf("%%%d", n)}, nil
	}
	if !nsd.IsIdentifier(name, true) {
		return typeBase{}, fmt.Errorf("type name must be an ASCII identifier: %q", name)
	}
	return typeBase{name: strings.TrimSpace(name)}, nil
}

func (b *typeBase) Name() string {
	return strings.Replace(b.name, "%", "AnonType", 1)
}

func (b *typeBase) IsAnonymous() bool {
	return strings.HasPrefix(b.name, "%") || b.name == dummyName
}

func (b *typeBase) IsDummy() bool {
	return b.name == dummyName
}

func (b *typeBase) IsPrimitive() bool {
	return false
}

func (b *typeBase) IsNumeric() bool {
	return false
}

func (b *typeBase) IsStructured() bool {
	return false
}

// lookup retrieves a referenced type from the owning registry, if any.
func (b *typeBase) lookup(name string) Type {
	if b.registry == nil {
		return nil
	}
	return b.registry.GetType(name)
}

// --- Dummy type ------------------------------------------------------------

const dummyName = "???"

// DummyType is the unknown-type sentinel. It signals inference ambiguity
// and is never registrable under a name.
type DummyType struct {
	typeBase
}

var dummy = &DummyType{typeBase{name: dummyName}}

// Dummy returns the unknown-type sentinel.
func Dummy() Type {
	return dummy
}

func (d *DummyType) Name() string {
	return dummyName
}

func (d *DummyType) Description(deep bool) string {
	return dummyName
}

func (d *DummyType) DescriptionWithName(altName string, deep bool) string {
	return dummyName
}

// --- Structural comparison -------------------------------------------------

// Equal checks two types for structural equality via their deep
// descriptions. Anonymous top-level names are blinded out before comparison.
// The dummy type compares unequal to everything, itself included.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsDummy() || b.IsDummy() {
		return false
	}
	if a == b {
		return true
	}
	d1, d2 := a.Description(true), b.Description(true)
	if d1 == d2 {
		return true
	}
	if a.IsAnonymous() {
		d1 = a.DescriptionWithName(b.Name(), true)
	} else if b.IsAnonymous() {
		d2 = b.DescriptionWithName(a.Name(), true)
	}
	return d1 == d2
}

// Resolve follows redirect chains down to a material type. Non-redirect
// types resolve to themselves.
func Resolve(t Type) Type {
	seen := 0
	for {
		r, ok := t.(*RedirType)
		if !ok {
			return t
		}
		if seen++; seen > 64 {
			tracer().Errorf("type reference chain too long, probably cyclic: %s", t.Name())
			return Dummy()
		}
		t = r.Target()
	}
}
