package types

import (
	"fmt"
)

// RedirType is a registered synonym: a name aliasing another type. Chains
// of redirects are allowed, cycles are not. Redirects are transparent to
// structural comparison, their description is the target's description.
type RedirType struct {
	typeBase
	target Type
}

// NewRedirect creates a synonym for targetType. The new name must differ
// from the target's name and from the name of the type the chain eventually
// resolves to.
func NewRedirect(name string, targetType Type) (*RedirType, error) {
	if targetType == nil {
		return nil, fmt.Errorf("type synonym %q needs a target type", name)
	}
	base, err := newTypeBase(name)
	if err != nil {
		return nil, err
	}
	material := Resolve(targetType)
	if name == targetType.Name() || material == nil || name == material.Name() {
		return nil, fmt.Errorf("type synonym %q must not be recursive", name)
	}
	return &RedirType{typeBase: base, target: targetType}, nil
}

// Target returns the directly referred type, preferring a fresh registry
// lookup by name so the synonym follows redefinitions.
func (r *RedirType) Target() Type {
	if r.target == nil {
		return Dummy()
	}
	if fresh := r.lookup(r.target.Name()); fresh != nil && fresh != r {
		r.target = fresh
	}
	return r.target
}

func (r *RedirType) IsPrimitive() bool {
	return Resolve(r).IsPrimitive()
}

func (r *RedirType) IsNumeric() bool {
	return Resolve(r).IsNumeric()
}

func (r *RedirType) IsStructured() bool {
	return Resolve(r).IsStructured()
}

func (r *RedirType) Description(deep bool) string {
	if !deep {
		return r.Name()
	}
	return Resolve(r).Description(true)
}

func (r *RedirType) DescriptionWithName(altName string, deep bool) string {
	if !deep {
		return altName
	}
	return Resolve(r).DescriptionWithName(altName, true)
}
