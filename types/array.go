package types

import (
	"fmt"
)

// SizeUnknown marks an array of unknown or flexible length.
const SizeUnknown = -1

// ArrayType describes arrays: an element type, a declared length and an
// index start offset (non-zero lower bounds occur in Pascal-style sources).
// The self-description uses the sigil '@'.
type ArrayType struct {
	typeBase
	elType Type
	size   int
	offset int
}

// NewArray creates an array type. An empty name yields an anonymous type,
// a nil element type stands for an unknown element type, size may be
// SizeUnknown.
func NewArray(name string, elementType Type, size int) (*ArrayType, error) {
	base, err := newTypeBase(name)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		size = SizeUnknown
	}
	return &ArrayType{typeBase: base, elType: elementType, size: size}, nil
}

// NewArrayRange creates an array type over an inclusive index range.
func NewArrayRange(name string, elementType Type, low, high int) (*ArrayType, error) {
	at, err := NewArray(name, elementType, high-low+1)
	if err != nil {
		return nil, err
	}
	at.offset = low
	return at, nil
}

// ElementType returns the element type, the dummy type if unknown.
func (a *ArrayType) ElementType() Type {
	if a.elType == nil {
		return Dummy()
	}
	return a.elType
}

// Size returns the declared element count, or SizeUnknown.
func (a *ArrayType) Size() int {
	return a.size
}

// Offset returns the lowest valid index.
func (a *ArrayType) Offset() int {
	return a.offset
}

func (a *ArrayType) IsStructured() bool {
	return true
}

// Description renders "@name(elType,offset,size)", with the element type
// fully expanded in deep mode.
func (a *ArrayType) Description(deep bool) string {
	return a.DescriptionWithName(a.Name(), deep)
}

func (a *ArrayType) DescriptionWithName(altName string, deep bool) string {
	el := dummyName
	if a.elType != nil {
		if deep {
			el = a.elType.Description(true)
		} else {
			el = a.elType.Name()
		}
	}
	return fmt.Sprintf("@%s(%s,%d,%d)", altName, el, a.offset, a.size)
}
