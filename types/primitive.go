package types

// primClass groups the built-in primitive types for promotion decisions.
type primClass int8

const (
	primBool primClass = iota
	primIntegral
	primUnsigned
	primFloating
	primChar
	primString
)

// PrimitiveType is a built-in type with a fixed name and a zero value
// prototype.
type PrimitiveType struct {
	typeBase
	proto interface{}
	class primClass
}

func newPrimitive(name string, proto interface{}, class primClass) *PrimitiveType {
	base, err := newTypeBase(name)
	if err != nil {
		panic(err) // built-in names are literals
	}
	return &PrimitiveType{typeBase: base, proto: proto, class: class}
}

func (p *PrimitiveType) Description(deep bool) string {
	return p.Name()
}

func (p *PrimitiveType) DescriptionWithName(altName string, deep bool) string {
	if altName != "" {
		return altName
	}
	return p.Name()
}

func (p *PrimitiveType) IsPrimitive() bool {
	return true
}

func (p *PrimitiveType) IsNumeric() bool {
	switch p.class {
	case primIntegral, primUnsigned, primFloating:
		return true
	}
	return false
}

// IsIntegral is a predicate: a signed or unsigned integer type?
func (p *PrimitiveType) IsIntegral() bool {
	return p.class == primIntegral || p.class == primUnsigned
}

// IsUnsigned is a predicate: an unsigned integer type?
func (p *PrimitiveType) IsUnsigned() bool {
	return p.class == primUnsigned
}

// IsFloating is a predicate: a floating point type?
func (p *PrimitiveType) IsFloating() bool {
	return p.class == primFloating
}

// ZeroValue returns the prototype value of this type.
func (p *PrimitiveType) ZeroValue() interface{} {
	return p.proto
}
