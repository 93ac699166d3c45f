package types

import (
	"math"
	"strings"
)

// NoCode marks an enumeration member whose integer code could not be
// determined. It propagates: members after a NoCode member default to
// NoCode as well unless they carry an explicit value.
const NoCode = int64(math.MinInt64)

// EnumItem is one member of an enumeration type. ValueText is the literal
// or constant expression defining the code, empty for generically coded
// members. Code holds the resolved integer code, NoCode until resolution.
type EnumItem struct {
	Name      string
	ValueText string
	Code      int64
}

// EnumType describes enumeration types: an ordered list of members, each
// with an optional defining expression. The self-description uses the sigil
// '#'; the shallow form is just the type name.
type EnumType struct {
	typeBase
	items []EnumItem
}

// NewEnum creates an enumeration type from its members in declaration
// order. Member codes stay unresolved (NoCode) until ResolveCodes assigns
// them.
func NewEnum(name string, items []EnumItem) (*EnumType, error) {
	base, err := newTypeBase(name)
	if err != nil {
		return nil, err
	}
	et := &EnumType{typeBase: base, items: append([]EnumItem(nil), items...)}
	for i := range et.items {
		et.items[i].Code = NoCode
	}
	return et, nil
}

// NewEnumNames creates an enumeration type over bare member names with
// strictly generic coding.
func NewEnumNames(name string, memberNames []string) (*EnumType, error) {
	items := make([]EnumItem, len(memberNames))
	for i, n := range memberNames {
		items[i] = EnumItem{Name: n}
	}
	return NewEnum(name, items)
}

func (e *EnumType) IsNumeric() bool {
	return true
}

// Items returns the members in declaration order.
func (e *EnumType) Items() []EnumItem {
	return append([]EnumItem(nil), e.items...)
}

// MemberCode returns the resolved code of the named member. NoCode plus
// false signals an unknown member or an unresolved code.
func (e *EnumType) MemberCode(name string) (int64, bool) {
	for _, it := range e.items {
		if it.Name == name {
			return it.Code, it.Code != NoCode
		}
	}
	return NoCode, false
}

// SetMemberCode stores a resolved code. Unknown members are ignored.
func (e *EnumType) SetMemberCode(name string, code int64) {
	for i := range e.items {
		if e.items[i].Name == name {
			e.items[i].Code = code
			return
		}
	}
}

// Description renders the shallow form as just the name; the deep form is
// "#name(a,b=5,c)".
func (e *EnumType) Description(deep bool) string {
	return e.DescriptionWithName(e.Name(), deep)
}

func (e *EnumType) DescriptionWithName(altName string, deep bool) string {
	if !deep {
		return altName
	}
	var specs []string
	for _, it := range e.items {
		if it.ValueText != "" {
			specs = append(specs, it.Name+"="+it.ValueText)
		} else {
			specs = append(specs, it.Name)
		}
	}
	return "#" + altName + "(" + strings.Join(specs, ",") + ")"
}
