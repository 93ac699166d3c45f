package types

import (
	"strings"
)

// Field is one named component of a record type.
type Field struct {
	Name string
	Type Type
}

// RecordType describes records/structs: an ordered list of named
// components. The self-description uses the sigil '$'.
type RecordType struct {
	typeBase
	fields []Field
}

// NewRecord creates a record type from its components, kept in declaration
// order. An empty name yields an anonymous type.
func NewRecord(name string, components []Field) (*RecordType, error) {
	base, err := newTypeBase(name)
	if err != nil {
		return nil, err
	}
	return &RecordType{typeBase: base, fields: append([]Field(nil), components...)}, nil
}

func (r *RecordType) IsStructured() bool {
	return true
}

// ComponentNames returns the component names in declaration order.
func (r *RecordType) ComponentNames() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// ComponentType returns the type of the named component, or nil if there is
// no component with this name.
func (r *RecordType) ComponentType(name string) Type {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// Components returns the fields in declaration order.
func (r *RecordType) Components() []Field {
	return append([]Field(nil), r.fields...)
}

// Description renders "$name(comp1:type1;comp2:type2)", with component
// types fully expanded in deep mode.
func (r *RecordType) Description(deep bool) string {
	return r.DescriptionWithName(r.Name(), deep)
}

func (r *RecordType) DescriptionWithName(altName string, deep bool) string {
	var comps []string
	for _, f := range r.fields {
		ct := f.Type
		if ct == nil {
			ct = Dummy()
		}
		var s string
		if deep {
			s = ct.Description(true)
		} else {
			s = ct.Name()
		}
		comps = append(comps, f.Name+":"+s)
	}
	return "$" + altName + "(" + strings.Join(comps, ";") + ")"
}
